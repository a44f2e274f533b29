package models

import "time"

// WalkRequestStatus represents all possible states of a walk request
type WalkRequestStatus string

const (
	RequestOpen      WalkRequestStatus = "open"
	RequestAccepted  WalkRequestStatus = "accepted"
	RequestCompleted WalkRequestStatus = "completed"
	RequestCancelled WalkRequestStatus = "cancelled"
)

// ApplicationStatus represents the states of a walker's application
type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "applied"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type WalkRequest struct {
	ID              uint              `json:"request_id" gorm:"primaryKey"`
	DogID           uint              `json:"dog_id" gorm:"not null"`
	Dog             Dog               `json:"dog,omitempty" gorm:"foreignKey:DogID"`
	RequestedTime   time.Time         `json:"requested_time" gorm:"not null"`
	DurationMinutes int               `json:"duration_minutes" gorm:"not null"`
	Location        string            `json:"location" gorm:"not null"`
	Status          WalkRequestStatus `json:"status" gorm:"not null;default:'open'"`
	Applications    []WalkApplication `json:"applications,omitempty" gorm:"foreignKey:RequestID"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// WalkApplication is a walker's bid on an open request.
// A walker may apply to a given request at most once.
type WalkApplication struct {
	ID        uint              `json:"application_id" gorm:"primaryKey"`
	RequestID uint              `json:"request_id" gorm:"not null;uniqueIndex:idx_request_walker"`
	Request   WalkRequest       `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	WalkerID  uint              `json:"walker_id" gorm:"not null;uniqueIndex:idx_request_walker"`
	Walker    User              `json:"walker,omitempty" gorm:"foreignKey:WalkerID"`
	Status    ApplicationStatus `json:"status" gorm:"not null;default:'applied'"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// WalkRating is immutable once created — there is no update or delete path.
type WalkRating struct {
	ID        uint         `json:"rating_id" gorm:"primaryKey"`
	WalkerID  uint         `json:"walker_id" gorm:"not null"`
	Walker    User         `json:"walker,omitempty" gorm:"foreignKey:WalkerID"`
	OwnerID   uint         `json:"owner_id" gorm:"not null"`
	RequestID *uint        `json:"request_id"`
	Request   *WalkRequest `json:"request,omitempty" gorm:"foreignKey:RequestID"`
	Rating    int          `json:"rating" gorm:"not null"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
}
