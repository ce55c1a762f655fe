// Package service contains the business logic orchestrating repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"

	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the feed page size when the client does not ask for one.
	DefaultPageSize = 20
	// MaxPageSize caps the per-request page size.
	MaxPageSize = 100

	maxCommentLen = 2000
)

// FeedService owns all reads and writes of the community feed. Every
// handler goes through it; nothing else touches the repositories.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
}

type CreatePostInput struct {
	AuthorID  uint
	Content   string
	MediaURLs []string
}

type ListPostsInput struct {
	Cursor uint
	Limit  int
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type AddCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// ListPosts returns one page of the feed, newest first. The cursor is
// the id of the last post of the previous page; zero means the head of
// the feed. The first default-sized page is served through the cache.
func (s *FeedService) ListPosts(ctx context.Context, in ListPostsInput) (*models.FeedPage, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if in.Cursor == 0 && limit == DefaultPageSize {
		var page models.FeedPage
		err := cache.Aside(ctx, cache.FeedFirstPage, &page, cache.FeedTTL, func() error {
			fresh, err := s.assemblePage(ctx, 0, limit)
			if err != nil {
				return err
			}
			page = *fresh
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	return s.assemblePage(ctx, in.Cursor, limit)
}

// assemblePage fetches one row past the requested size; the presence
// of that extra row is what tells us another page exists.
func (s *FeedService) assemblePage(ctx context.Context, cursor uint, limit int) (*models.FeedPage, error) {
	posts, err := s.postRepo.ListAfter(ctx, cursor, limit+1)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Cursor post not found")
		}
		return nil, err
	}

	page := &models.FeedPage{Items: posts}
	if page.Items == nil {
		page.Items = []*models.Post{}
	}
	if len(posts) > limit {
		page.Items = posts[:limit]
		next := page.Items[limit-1].ID
		page.NextCursor = &next
	}
	return page, nil
}

// CreatePost inserts a new post. Content is stored verbatim, empty
// string included; length and format checks belong to upstream
// collaborators. The author must resolve to a live user so a stale
// token cannot write orphaned rows.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Author not found")
		}
		return nil, err
	}

	mediaURLs := in.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}

	post := &models.Post{
		Content:   in.Content,
		AuthorID:  in.AuthorID,
		MediaURLs: mediaURLs,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	// A new post changes the first page.
	cache.InvalidateFeed(ctx)

	// Re-read so the response carries the author and zeroed counts.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetPost returns the hydrated detail view: the post with its counts
// plus all comments oldest first.
func (s *FeedService) GetPost(ctx context.Context, id uint) (*models.PostDetail, error) {
	var detail models.PostDetail
	err := cache.Aside(ctx, cache.PostKey(id), &detail, cache.PostTTL, func() error {
		post, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post not found")
			}
			return err
		}

		comments, err := s.commentRepo.ListByPost(ctx, id)
		if err != nil {
			return err
		}
		if comments == nil {
			comments = []*models.Comment{}
		}

		detail = models.PostDetail{Post: *post, Comments: comments}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// DeletePost removes the caller's post. A missing post and someone
// else's post are distinct failures so the handler can answer 404
// versus 403.
func (s *FeedService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		return err
	}

	if post.AuthorID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, in.PostID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (s *FeedService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post not found")
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// The cached detail view embeds comments, drop it.
	cache.InvalidatePost(ctx, in.PostID)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments oldest first. The post must exist.
func (s *FeedService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post not found")
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// Like records the user's like. Liking a post twice is a no-op, the
// storage uniqueness constraint absorbs the duplicate.
func (s *FeedService) Like(ctx context.Context, userID, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post not found")
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return err
	}
	// The cached detail embeds the like count.
	cache.InvalidatePost(ctx, postID)
	return nil
}

// Unlike removes the user's like. Removing a like that was never there
// is a no-op.
func (s *FeedService) Unlike(ctx context.Context, userID, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post not found")
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
