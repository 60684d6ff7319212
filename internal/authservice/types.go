package authservice

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zentheriun/bloglist/internal/userservice"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService issues and verifies session tokens. The signing secret and the
// token lifetime are injected at construction and never read from globals.
type AuthService struct {
	users  *userservice.UserService
	secret []byte
	ttl    time.Duration
}

type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
