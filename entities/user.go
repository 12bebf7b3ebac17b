package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `gorm:"uniqueIndex" json:"email"`
	Password       string    `json:"-"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Role           string    `gorm:"default:USER" json:"role"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	Timestamp
}
