// File: /models/session.go
package models

import "time"

// Session binds an opaque token (delivered via cookie) to a user. An
// expired or missing row is indistinguishable from "never logged in".
type Session struct {
	Token     string    `json:"token" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
