package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/zentheriun/bloglist/internal/common"
	"github.com/zentheriun/bloglist/internal/userservice"
)

func NewAuthService(users *userservice.UserService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Login verifies the credentials against the user store and mints a signed
// session token. Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials so usernames cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			return nil, ErrInvalidCredentials
		case errors.As(err, &common.ValidationError{}):
			return nil, ErrInvalidCredentials
		default:
			return nil, err
		}
	}

	ok, err := user.Password.Compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := newToken(s.secret, user.ID, user.Username, s.ttl)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		Username:  user.Username,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate resolves an Authorization header value to a live user. The
// token subject is looked up again so a deleted user cannot keep using an
// otherwise valid token.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*userservice.User, error) {
	tokenString, ok := extractBearer(header)
	if !ok {
		return nil, ErrInvalidToken
	}

	c, err := parseToken(s.secret, tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, c.UserID)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			return nil, ErrInvalidToken
		case errors.As(err, &common.ValidationError{}):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}
