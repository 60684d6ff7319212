package userservice

import (
	"database/sql"
	"time"

	"github.com/zentheriun/bloglist/internal/common"
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m  *UserModel
	mb common.MessageProducer
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"-"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"-"`
	Version   int       `json:"-"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// BlogSummary is the shape of an owned blog in the users listing.
type BlogSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Likes int    `json:"likes"`
}

type UserWithBlogs struct {
	ID       int           `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Blogs    []BlogSummary `json:"blogs"`
}
