// File: /models/user.go
package models

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID        string   `json:"id" gorm:"primaryKey;size:191"`
	Username  string   `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone     string   `json:"phone" gorm:"uniqueIndex;not null;size:32"`
	Password  string   `json:"-" gorm:"not null;size:255"`
	FirstName string   `json:"firstName" gorm:"size:100"`
	LastName  string   `json:"lastName" gorm:"size:100"`
	Avatar    *string  `json:"avatar" gorm:"size:500"`
	Role      UserRole `json:"role" gorm:"not null;default:'user';size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Posts []Post `json:"-" gorm:"foreignKey:UserID"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns a copy safe to hand to clients (password hash blanked).
func (u User) Public() User {
	u.Password = ""
	return u
}
