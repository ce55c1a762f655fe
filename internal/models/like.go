package models

import "time"

// Like records that a user liked a post. The (PostID, UserID) pair is
// unique; the storage constraint, not application locking, collapses
// concurrent duplicate likes to a single row. Likes are hard-deleted
// on unlike, so no soft-delete column.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID" json:"-"`
}
