package blogservice

import (
	"context"
	"database/sql"

	"github.com/zentheriun/bloglist/internal/common"
	"github.com/zentheriun/bloglist/internal/userservice"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// List returns every blog with its owner's public identity. Results are
// cached until the next write.
func (s *BlogService) List(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogList); ok {
		return cached.([]Blog), nil
	}

	blogs, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogList, blogs)

	return blogs, nil
}

// Get returns a single blog by its ID.
func (s *BlogService) Get(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// Create validates the payload and persists a new blog owned by user. A
// missing likes field defaults to zero; title and url are required.
func (s *BlogService) Create(ctx context.Context, user *userservice.User, input *CreateBlogInput) (*Blog, error) {
	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}

	v := common.NewValidator()
	validateTitle(v, input.Title)
	validateURL(v, input.URL)
	validateLikes(v, likes)
	validateInt(v, user.ID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:  input.Title,
		Author: input.Author,
		URL:    input.URL,
		Likes:  likes,
		User:   Owner{ID: user.ID, Username: user.Username},
	}

	err := s.m.insert(ctx, &blog)
	if err != nil {
		return nil, err
	}

	s.invalidate()

	return &blog, nil
}

// Update applies the non-nil fields of input onto the stored blog. The whole
// update succeeds or none of it does.
func (s *BlogService) Update(ctx context.Context, id int, input *UpdateBlogInput) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		blog.Title = *input.Title
	}
	if input.Author != nil {
		blog.Author = *input.Author
	}
	if input.URL != nil {
		blog.URL = *input.URL
	}
	if input.Likes != nil {
		blog.Likes = *input.Likes
	}

	validateTitle(v, blog.Title)
	validateURL(v, blog.URL)
	validateLikes(v, blog.Likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.update(ctx, blog)
	if err != nil {
		return nil, err
	}

	s.invalidate()
	s.c.Delete(common.CacheKeyBlog(id))

	return blog, nil
}

// Delete removes a blog. Only the owner may delete it; a mismatch is
// ErrNotOwner, a missing blog is ErrRecordNotFound.
func (s *BlogService) Delete(ctx context.Context, user *userservice.User, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateInt(v, user.ID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.User.ID != user.ID {
		return ErrNotOwner
	}

	err = s.m.delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidate()
	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}

// Stats computes the aggregate statistics over a snapshot of the collection.
func (s *BlogService) Stats(ctx context.Context) (*Stats, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogStats); ok {
		return cached.(*Stats), nil
	}

	blogs, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(blogs)

	s.c.Set(common.CacheKeyBlogStats, stats)

	return stats, nil
}

func (s *BlogService) invalidate() {
	s.c.Delete(common.CacheKeyBlogList)
	s.c.Delete(common.CacheKeyBlogStats)
}
