package userservice

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/zentheriun/bloglist/internal/common"
)

func NewUserService(db *sql.DB, mb common.MessageProducer) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
	}
}

// Register creates a new user account and publishes a user.created event for
// the welcome email.
func (s *UserService) Register(ctx context.Context, username, name, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Email:    email,
	}

	err := u.Password.Set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	data := struct {
		Email    string
		Username string
	}{
		Email:    u.Email,
		Username: u.Username,
	}

	eventData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, eventData, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// GetByUsername returns the user with its stored password hash so callers can
// verify credentials.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByUsername(ctx, username)
}

// GetByID resolves a user id against the store. It is used to make sure a
// token subject still exists.
func (s *UserService) GetByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getByID(ctx, id)
}

// List returns every user together with the blogs it owns.
func (s *UserService) List(ctx context.Context) ([]UserWithBlogs, error) {
	return s.m.getAllWithBlogs(ctx)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
