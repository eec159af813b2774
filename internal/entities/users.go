package entities

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

// Team is the tenancy boundary. Contacts and media lists belong to the
// creating user's team; users of the same team see each other's data.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:200" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Username     string   `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string   `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string   `gorm:"size:100" json:"-"`
	TokenHash    string   `gorm:"index;size:64" json:"-"` // SHA-256 of the API token
	Role         UserRole `gorm:"size:20;default:'member'" json:"role"`
	TeamID       uint     `gorm:"index" json:"team_id"`
	Team         Team     `gorm:"foreignKey:TeamID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}

func (User) TableName() string {
	return "users"
}
