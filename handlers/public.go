package handlers

import (
	"net/http"
	"time"

	"dog-walk-service/errs"
	"dog-walk-service/models"
	"dog-walk-service/reputation"

	"github.com/gin-gonic/gin"
)

type DogRow struct {
	DogName       string         `json:"dog_name"`
	Size          models.DogSize `json:"size"`
	OwnerUsername string         `json:"owner_username"`
}

// ListDogs returns every dog with its owner's username (public)
func (h *Handler) ListDogs(c *gin.Context) {
	rows := []DogRow{}
	err := h.DB.Table("dogs").
		Select("dogs.name AS dog_name, dogs.size, users.username AS owner_username").
		Joins("JOIN users ON users.id = dogs.owner_id").
		Scan(&rows).Error
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch dogs", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

type OpenRequestRow struct {
	RequestID       uint      `json:"request_id"`
	DogName         string    `json:"dog_name"`
	RequestedTime   time.Time `json:"requested_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Location        string    `json:"location"`
	OwnerUsername   string    `json:"owner_username"`
}

// ListOpenRequests returns every open walk request with dog and owner names (public)
func (h *Handler) ListOpenRequests(c *gin.Context) {
	rows := []OpenRequestRow{}
	err := h.DB.Table("walk_requests").
		Select(`walk_requests.id AS request_id, dogs.name AS dog_name,
			walk_requests.requested_time, walk_requests.duration_minutes,
			walk_requests.location, users.username AS owner_username`).
		Joins("JOIN dogs ON dogs.id = walk_requests.dog_id").
		Joins("JOIN users ON users.id = dogs.owner_id").
		Where("walk_requests.status = ?", models.RequestOpen).
		Scan(&rows).Error
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch open walk requests", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// WalkerSummaries returns the per-walker reputation listing (public)
func (h *Handler) WalkerSummaries(c *gin.Context) {
	rows, err := reputation.Summaries(h.DB)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type UserRow struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
}

// ListUsers returns the user directory without credentials
func (h *Handler) ListUsers(c *gin.Context) {
	rows := []UserRow{}
	err := h.DB.Table("users").
		Select("id AS user_id, username, email, role").
		Scan(&rows).Error
	if err != nil {
		writeError(c, errs.Wrap(errs.Internal, "failed to fetch users", err))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetStateMachineInfo returns the walk request lifecycle for documentation
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	info := []gin.H{
		{"from": "open", "to": "accepted", "actor": "owner"},
		{"from": "open", "to": "cancelled", "actor": "owner"},
		{"from": "accepted", "to": "completed", "actor": "owner or system"},
		{"from": "accepted", "to": "cancelled", "actor": "owner"},
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []string{"completed", "cancelled"},
		"description":     "Walk Request Lifecycle State Machine",
	})
}
