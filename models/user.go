package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ValidRole reports whether role is one of the supported user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// User represents a registered account. The password hash never leaves the
// server; the role is fixed at creation time.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;unique"`
	PasswordHash string    `json:"-" db:"password" gorm:"column:password;type:text;not null"`
	Role         string    `json:"role" db:"role" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
