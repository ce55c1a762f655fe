package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a single entry in the reverse-chronological feed.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	// MediaURLs is never null: callers always see a sequence, possibly empty.
	MediaURLs []string `gorm:"serializer:json;not null" json:"media_urls"`
	// Hidden is owned by the external moderation service; this core only reads it.
	Hidden bool `gorm:"not null;default:false" json:"-"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// FeedPage is one page of the feed. NextCursor is the id of the last
// returned post and is absent on the final page.
type FeedPage struct {
	Items      []*Post `json:"items"`
	NextCursor *uint   `json:"next_cursor,omitempty"`
}

// PostDetail is the hydrated single-post view: the post with its full
// author, like count, and comments in creation order.
type PostDetail struct {
	Post
	Comments []*Comment `json:"comments"`
}
