package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{Content: "first ripple", AuthorID: 1}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		postID        uint
		mockBehavior  func()
		expectedError bool
	}{
		{
			name:   "Success with Counts",
			postID: 1,
			mockBehavior: func() {
				// main query carries the count subqueries in its SELECT
				mock.ExpectQuery(regexp.QuoteMeta(`FROM "posts" WHERE "posts"."id" = $1 AND "posts"."deleted_at" IS NULL`)).
					WithArgs(1, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id", "likes_count", "comments_count"}).
						AddRow(1, "hello feed", 10, 3, 2))

				// preload author runs after the main query
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
					WithArgs(10).
					WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(10, "user10"))
			},
		},
		{
			name:   "Not Found",
			postID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM "posts" WHERE "posts"."id" = $1`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			post, err := repo.GetByID(ctx, tt.postID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "hello feed", post.Content)
				assert.Equal(t, 3, post.LikesCount)
				assert.Equal(t, 2, post.CommentsCount)
				assert.Equal(t, "user10", post.Author.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_ListAfter(t *testing.T) {
	ctx := context.Background()

	t.Run("First Page", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "posts" WHERE posts.hidden = $1`)).
			WithArgs(false, 3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id"}).
				AddRow(30, "newest", 1).
				AddRow(20, "middle", 2).
				AddRow(10, "oldest", 1))

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" WHERE "users"."id"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).
				AddRow(1, "alice").
				AddRow(2, "bob"))

		posts, err := repo.ListAfter(ctx, 0, 3)
		assert.NoError(t, err)
		assert.Len(t, posts, 3)
		assert.Equal(t, uint(30), posts[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("With Cursor", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		anchorTime := time.Now().Add(-time.Hour)

		// anchor lookup is unscoped so a soft-deleted cursor still resolves
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","created_at" FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(20, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(20, anchorTime))

		mock.ExpectQuery(regexp.QuoteMeta(`(posts.created_at, posts.id) < ($2, $3)`)).
			WithArgs(false, anchorTime, 20, 2).
			WillReturnRows(sqlmock.NewRows([]string{"id", "content", "author_id"}).
				AddRow(10, "older", 1))

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "users" WHERE "users"."id"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "alice"))

		posts, err := repo.ListAfter(ctx, 20, 2)
		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, uint(10), posts[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Cursor", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","created_at" FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(404, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		posts, err := repo.ListAfter(ctx, 404, 20)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.Nil(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE id = $1`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := repo.Exists(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE id = $1`)).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := repo.Exists(ctx, 99)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	// soft delete is an UPDATE on deleted_at
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Like(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("New Like", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(5, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Like(ctx, 2, 5)
		assert.NoError(t, err)
	})

	t.Run("Duplicate Like Is Silent", func(t *testing.T) {
		// ON CONFLICT DO NOTHING reports zero rows affected
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(5, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Like(ctx, 2, 5)
		assert.NoError(t, err)
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO likes`)).
			WithArgs(5, 2).
			WillReturnError(errors.New("connection reset"))

		err := repo.Like(ctx, 2, 5)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_Unlike(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Removes Like", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_id = $1 AND user_id = $2`)).
			WithArgs(5, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Unlike(ctx, 2, 5)
		assert.NoError(t, err)
	})

	t.Run("No Like Is Silent", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_id = $1 AND user_id = $2`)).
			WithArgs(5, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Unlike(ctx, 2, 5)
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

