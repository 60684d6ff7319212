package userservice

import (
	"context"
	"database/sql"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Email,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.Version)
	if err != nil {
		switch {
		case err.Error() == "pq: duplicate key value violates unique constraint \"users_username_key\"":
			return ErrDuplicateUsername
		case err.Error() == "pq: duplicate key value violates unique constraint \"users_email_key\"":
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, email, password, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Password.hash, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, email, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// getAllWithBlogs returns every user together with the blogs it owns, in a
// single left-joined query so users without blogs still appear.
func (m *UserModel) getAllWithBlogs(ctx context.Context) ([]UserWithBlogs, error) {
	query := `
		SELECT u.id, u.username, u.name, b.id, b.title, b.url, b.likes
		FROM users u
		LEFT JOIN blogs b ON b.user_id = u.id
		ORDER BY u.id, b.id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserWithBlogs
	index := make(map[int]int)

	for rows.Next() {
		var (
			u       UserWithBlogs
			blogID  sql.NullInt64
			title   sql.NullString
			url     sql.NullString
			likes   sql.NullInt64
		)

		err := rows.Scan(&u.ID, &u.Username, &u.Name, &blogID, &title, &url, &likes)
		if err != nil {
			return nil, err
		}

		i, ok := index[u.ID]
		if !ok {
			u.Blogs = []BlogSummary{}
			users = append(users, u)
			i = len(users) - 1
			index[u.ID] = i
		}

		if blogID.Valid {
			users[i].Blogs = append(users[i].Blogs, BlogSummary{
				ID:    int(blogID.Int64),
				Title: title.String,
				URL:   url.String,
				Likes: int(likes.Int64),
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
