// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListAfter(ctx context.Context, cursorID uint, limit int) ([]*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostCounts(r.db.WithContext(ctx)).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListAfter returns up to limit posts strictly older than the cursor
// post, newest first. A zero cursor starts from the head of the feed.
// The anchor row is looked up unscoped so that a post deleted between
// two page fetches still anchors the continuation; a cursor id that
// never existed surfaces gorm.ErrRecordNotFound.
func (r *postRepository) ListAfter(ctx context.Context, cursorID uint, limit int) ([]*models.Post, error) {
	q := r.applyPostCounts(r.db.WithContext(ctx)).
		Preload("Author", authorProjection).
		Where("posts.hidden = ?", false)

	if cursorID != 0 {
		var anchor models.Post
		if err := r.db.WithContext(ctx).Unscoped().
			Select("id", "created_at").
			Take(&anchor, cursorID).Error; err != nil {
			return nil, err
		}
		// Keyset condition: ids break ties between equal timestamps so
		// pages stay disjoint and contiguous.
		q = q.Where("(posts.created_at, posts.id) < (?, ?)", anchor.CreatedAt, anchor.ID)
	}

	var posts []*models.Post
	err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// applyPostCounts adds subqueries to fetch comment and like counts in a single query.
func (r *postRepository) applyPostCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count")
}

// authorProjection restricts preloaded authors to the lightweight
// fields list views need.
func authorProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "email")
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING is atomic: two concurrent likes
	// from the same user collapse to one row without an error path.
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (post_id, user_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (post_id, user_id) DO NOTHING`,
		postID, userID,
	).Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	// Deleting a non-existent like is a no-op, not an error.
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{}).Error
}
