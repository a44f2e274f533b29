package session

import (
	"sync"

	"dog-walk-service/models"

	"github.com/google/uuid"
)

// CookieName is the opaque session cookie set on login.
const CookieName = "dog_walk_session"

// Session is the identity snapshot held server-side for a logged-in user.
type Session struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// Store holds server-side sessions keyed by opaque token.
type Store interface {
	Create(s Session) string
	Get(token string) (Session, bool)
	Destroy(token string)
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Create(s Session) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = s
	m.mu.Unlock()
	return token
}

func (m *MemoryStore) Get(token string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	return s, ok
}

func (m *MemoryStore) Destroy(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
