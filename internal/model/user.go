package model

import (
	"time"
)

type UserRole string

const (
	RoleSLP   UserRole = "slp"
	RoleAdmin UserRole = "admin"
)

// User is a therapist account. Every caseload record hangs off the
// therapist that owns it.
// swagger:model User
type User struct {
	BaseModel
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"size:20;default:'slp'" json:"role"`
	Credentials string    `gorm:"size:50" json:"credentials"` // e.g. "CCC-SLP"
	Disabled    bool      `gorm:"default:false" json:"disabled"`
	LastLogin   time.Time `json:"lastLogin"`
	LastSeen    time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
