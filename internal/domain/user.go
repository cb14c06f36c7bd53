package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleCaregiver UserRole = "caregiver"
	UserRoleUser      UserRole = "user"
)

type User struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	Password          string    `json:"-"` // Hashed password
	Role              UserRole  `json:"role"`
	Status            string    `json:"status"` // Active, Inactive, Blocked
	Language          string    `json:"language" gorm:"default:en"`
	SpeechRate        int       `json:"speech_rate" gorm:"default:150"` // words per minute
	DetailLevel       string    `json:"detail_level" gorm:"default:normal"`
	ContinuousMode    bool      `json:"continuous_mode" gorm:"default:false"`
	EmergencyContacts []string  `json:"emergency_contacts" gorm:"serializer:json"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
