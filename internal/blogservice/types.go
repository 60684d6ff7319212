package blogservice

import (
	"database/sql"
	"time"

	"github.com/zentheriun/bloglist/internal/common"
)

// Owner is the denormalized public identity of the user that created a blog.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type Blog struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	User      Owner     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"-"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}

// CreateBlogInput models the creation payload explicitly: Likes is a pointer
// so an absent field defaults to zero instead of being guessed from a zero
// value.
type CreateBlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogInput carries the writable fields of a blog; nil means "leave
// unchanged". The owner is not writable.
type UpdateBlogInput struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}
