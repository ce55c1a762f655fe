package server

import (
	"strconv"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Request ceilings. The feed core stores content verbatim, so abuse
// guards live at the HTTP edge.
const (
	maxPostContentLen = 10000
	maxPostMediaURLs  = 10
)

// GetFeed handles GET /api/feed?cursor=...&limit=...
func (s *Server) GetFeed(c *fiber.Ctx) error {
	ctx := c.Context()

	cursor := 0
	if raw := c.Query("cursor"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid cursor"))
		}
		cursor = v
	}
	limit := c.QueryInt("limit", 0)

	page, err := s.feedService.ListPosts(ctx, service.ListPostsInput{
		Cursor: uint(cursor),
		Limit:  limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(page)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content   string   `json:"content"`
		MediaURLs []string `json:"media_urls,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if len(req.Content) > maxPostContentLen {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content too long (max 10000 characters)"))
	}
	if len(req.MediaURLs) > maxPostMediaURLs {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Too many media attachments (max 10)"))
	}

	post, err := s.feedService.CreatePost(ctx, service.CreatePostInput{
		AuthorID:  userID,
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.feedService.GetPost(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(detail)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.DeletePost(ctx, service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.Like(ctx, userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UnlikePost handles DELETE /api/posts/:id/like
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.feedService.Unlike(ctx, userID, postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
