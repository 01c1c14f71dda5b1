// File: /models/post.go
package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Text      string    `json:"text" gorm:"not null;size:2000"`
	Image     *string   `json:"image" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  User       `json:"-" gorm:"foreignKey:UserID"`
	Likes []PostLike `json:"-" gorm:"foreignKey:PostID"`
}

type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_post_user"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_post_likes_post_user"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `json:"-" gorm:"foreignKey:PostID"`
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// PostWithMeta is the feed shape: the post plus its author's public fields
// and like state. LikesCount is always computed from post_likes rows at read
// time, never stored on the post row.
type PostWithMeta struct {
	Post
	Username   string  `json:"username"`
	UserAvatar *string `json:"user_avatar"`
	LikesCount int64   `json:"likes_count"`
	LikedByMe  bool    `json:"liked_by_me"`
}
