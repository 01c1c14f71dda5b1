// File: /models/friend.go
package models

import "time"

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// Friend is a directed request row: UserID sent the request, FriendID
// received it. Once accepted the relation is treated as symmetric.
type Friend struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    string       `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_friends_user_friend"`
	FriendID  string       `json:"friend_id" gorm:"not null;size:191;uniqueIndex:uk_friends_user_friend"`
	Status    FriendStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User   User `json:"-" gorm:"foreignKey:UserID"`
	Friend User `json:"-" gorm:"foreignKey:FriendID"`
}

// FriendInfo is the list shape returned by GET /friends.
type FriendInfo struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar"`
}
