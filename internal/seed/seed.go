// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	numComments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", numComments)

	numLikes, err := createLikes(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", numLikes)

	log.Println("🌱 Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE likes, comments, posts, users RESTART IDENTITY CASCADE").Error
}

func createUsers(db *gorm.DB, n int) ([]*models.User, error) {
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Bio:      gofakeit.Sentence(10),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []*models.User, n int) ([]*models.Post, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[r.Intn(len(users))]

		mediaURLs := []string{}
		for j := 0; j < r.Intn(3); j++ {
			mediaURLs = append(mediaURLs, fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()))
		}

		post := &models.Post{
			Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
			AuthorID:  author.ID,
			MediaURLs: mediaURLs,
		}

		// realistic created_at spread over the past 90 days
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)
		post.CreatedAt = time.Now().
			Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

		posts = append(posts, post)
	}
	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < r.Intn(5); i++ {
			author := users[r.Intn(len(users))]
			comment := &models.Comment{
				Content:   gofakeit.Sentence(r.Intn(15) + 3),
				AuthorID:  author.ID,
				PostID:    post.ID,
				CreatedAt: post.CreatedAt.Add(time.Duration(r.Intn(48)) * time.Hour),
			}
			comments = append(comments, comment)
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}
	if err := db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

func createLikes(db *gorm.DB, users []*models.User, posts []*models.Post) (int, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	total := 0
	for _, post := range posts {
		// pick a distinct subset of users per post, the unique index
		// forbids duplicate pairs
		perm := r.Perm(len(users))
		n := r.Intn(len(users)/2 + 1)
		for _, idx := range perm[:n] {
			res := db.Exec(
				`INSERT INTO likes (post_id, user_id, created_at)
				 VALUES (?, ?, NOW())
				 ON CONFLICT (post_id, user_id) DO NOTHING`,
				post.ID, users[idx].ID,
			)
			if res.Error != nil {
				return total, res.Error
			}
			total++
		}
	}
	return total, nil
}
