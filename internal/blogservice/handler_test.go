package blogservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zentheriun/bloglist/internal/common"
	"github.com/zentheriun/bloglist/internal/userservice"
)

// setupTestUser inserts a user directly so blog tests do not depend on the
// user service.
func setupTestUser(t *testing.T, db *sql.DB, username string) *userservice.User {
	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	u := userservice.User{Username: username}
	err := db.QueryRow(query, username, "Test User", username+"@example.com", []byte("not-a-real-hash")).Scan(&u.ID)
	if err != nil {
		t.Fatalf("could not insert test user: %v", err)
	}

	return &u
}

func setupTestEnvironment(t *testing.T) (*BlogService, *sql.DB, *userservice.User) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	user := setupTestUser(t, db, "root")

	return NewBlogService(db, cache), db, user
}

func countBlogs(t *testing.T, db *sql.DB) int {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count); err != nil {
		t.Fatalf("could not count blogs: %v", err)
	}
	return count
}

func intptr(i int) *int {
	return &i
}

func strptr(s string) *string {
	return &s
}

func TestCreate(t *testing.T) {
	s, db, user := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		input       *CreateBlogInput
		expectedErr error
	}{
		{
			name:  "valid blog",
			input: &CreateBlogInput{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://example.com", Likes: intptr(5)},
		},
		{
			name:  "missing likes defaults to zero",
			input: &CreateBlogInput{Title: "Blog without likes", Author: "Test Author", URL: "http://example.com"},
		},
		{
			name:  "missing author is allowed",
			input: &CreateBlogInput{Title: "Anonymous blog", URL: "http://example.com"},
		},
		{
			name:        "missing title",
			input:       &CreateBlogInput{Author: "Test Author", URL: "http://example.com"},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name:        "missing url",
			input:       &CreateBlogInput{Title: "Blog without URL", Author: "Test Author"},
			expectedErr: common.ValidationError{Errors: map[string]string{"url": "must be provided"}},
		},
		{
			name:        "negative likes",
			input:       &CreateBlogInput{Title: "Disliked blog", URL: "http://example.com", Likes: intptr(-1)},
			expectedErr: common.ValidationError{Errors: map[string]string{"likes": "must not be negative"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := countBlogs(t, db)

			blog, err := s.Create(context.Background(), user, tc.input)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, blog)
				assert.Equal(t, before, countBlogs(t, db))
				return
			}

			assert.NoError(t, err)
			assert.NotZero(t, blog.ID)
			assert.Equal(t, tc.input.Title, blog.Title)
			assert.Equal(t, user.ID, blog.User.ID)
			if tc.input.Likes == nil {
				assert.Equal(t, 0, blog.Likes)
			} else {
				assert.Equal(t, *tc.input.Likes, blog.Likes)
			}
			assert.Equal(t, before+1, countBlogs(t, db))
		})
	}
}

func TestCreateUnknownOwner(t *testing.T) {
	s, _, user := setupTestEnvironment(t)

	ghost := userservice.User{ID: user.ID + 100, Username: "ghost"}
	input := &CreateBlogInput{Title: "Orphan blog", URL: "http://example.com"}

	_, err := s.Create(context.Background(), &ghost, input)
	assert.ErrorIs(t, err, ErrUserForeignKey)
}

func TestListRoundTrip(t *testing.T) {
	s, _, user := setupTestEnvironment(t)

	created, err := s.Create(context.Background(), user, &CreateBlogInput{
		Title:  "Go To Statement Considered Harmful",
		Author: "Edsger W. Dijkstra",
		URL:    "http://example.com",
		Likes:  intptr(5),
	})
	assert.NoError(t, err)

	blogs, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, blogs, 1)

	got := blogs[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Author, got.Author)
	assert.Equal(t, created.URL, got.URL)
	assert.Equal(t, created.Likes, got.Likes)
	assert.Equal(t, Owner{ID: user.ID, Username: "root"}, got.User)
}

func TestUpdate(t *testing.T) {
	s, _, user := setupTestEnvironment(t)

	created, err := s.Create(context.Background(), user, &CreateBlogInput{
		Title: "Blog 1",
		URL:   "http://example.com",
	})
	assert.NoError(t, err)

	t.Run("updates likes only", func(t *testing.T) {
		updated, err := s.Update(context.Background(), created.ID, &UpdateBlogInput{Likes: intptr(12)})
		assert.NoError(t, err)
		assert.Equal(t, 12, updated.Likes)
		assert.Equal(t, "Blog 1", updated.Title)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.Update(context.Background(), created.ID+100, &UpdateBlogInput{Likes: intptr(1)})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("empty title is rejected and nothing is written", func(t *testing.T) {
		_, err := s.Update(context.Background(), created.ID, &UpdateBlogInput{Title: strptr(""), Likes: intptr(99)})
		var validationErr common.ValidationError
		assert.ErrorAs(t, err, &validationErr)

		blog, err := s.Get(context.Background(), created.ID)
		assert.NoError(t, err)
		assert.Equal(t, 12, blog.Likes)
	})

	t.Run("negative likes are rejected", func(t *testing.T) {
		_, err := s.Update(context.Background(), created.ID, &UpdateBlogInput{Likes: intptr(-5)})
		var validationErr common.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})
}

func TestDelete(t *testing.T) {
	s, db, user := setupTestEnvironment(t)
	other := setupTestUser(t, db, "intruder")

	created, err := s.Create(context.Background(), user, &CreateBlogInput{
		Title: "Blog 1",
		URL:   "http://example.com",
	})
	assert.NoError(t, err)

	t.Run("another user is forbidden and the record survives", func(t *testing.T) {
		err := s.Delete(context.Background(), other, created.ID)
		assert.ErrorIs(t, err, ErrNotOwner)
		assert.Equal(t, 1, countBlogs(t, db))
	})

	t.Run("owner deletes", func(t *testing.T) {
		err := s.Delete(context.Background(), user, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, countBlogs(t, db))
	})

	t.Run("second delete of the same id is not found", func(t *testing.T) {
		err := s.Delete(context.Background(), user, created.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestStats(t *testing.T) {
	s, _, user := setupTestEnvironment(t)

	t.Run("empty collection", func(t *testing.T) {
		stats, err := s.Stats(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, stats.Blogs)
		assert.Equal(t, 0, stats.TotalLikes)
		assert.Nil(t, stats.Favorite)
	})

	t.Run("reflects writes", func(t *testing.T) {
		_, err := s.Create(context.Background(), user, &CreateBlogInput{Title: "Blog 1", Author: "A", URL: "http://1.com", Likes: intptr(5)})
		assert.NoError(t, err)
		_, err = s.Create(context.Background(), user, &CreateBlogInput{Title: "Blog 2", Author: "A", URL: "http://2.com", Likes: intptr(10)})
		assert.NoError(t, err)
		_, err = s.Create(context.Background(), user, &CreateBlogInput{Title: "Blog 3", Author: "B", URL: "http://3.com", Likes: intptr(3)})
		assert.NoError(t, err)

		stats, err := s.Stats(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 3, stats.Blogs)
		assert.Equal(t, 18, stats.TotalLikes)
		assert.Equal(t, "Blog 2", stats.Favorite.Title)
		assert.Equal(t, &AuthorBlogCount{Author: "A", Blogs: 2}, stats.MostBlogs)
		assert.Equal(t, &AuthorLikeCount{Author: "A", Likes: 15}, stats.MostLikes)
	})
}
