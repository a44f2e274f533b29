package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleWalker UserRole = "walker"
)

type User struct {
	ID           uint      `json:"user_id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DogSize is the coarse size bucket shown to walkers
type DogSize string

const (
	SizeSmall  DogSize = "small"
	SizeMedium DogSize = "medium"
	SizeLarge  DogSize = "large"
)

type Dog struct {
	ID        uint      `json:"dog_id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null"`
	Owner     User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name      string    `json:"name" gorm:"not null"`
	Size      DogSize   `json:"size" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
