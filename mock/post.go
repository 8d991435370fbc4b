package mock

import (
	"context"

	"github.com/mkrzemien/wixport"
)

var _ wixport.PostService = (*PostService)(nil)

// PostService is a mock implementation of wixport.PostService.
type PostService struct {
	CreatePostFn     func(ctx context.Context, post *wixport.Post) error
	FindPostByURLFn  func(ctx context.Context, url string) (*wixport.Post, error)
	FindPostsFn      func(ctx context.Context, filter wixport.PostFilter) ([]*wixport.Post, error)
	DeleteAllPostsFn func(ctx context.Context) error
}

func (s *PostService) CreatePost(ctx context.Context, post *wixport.Post) error {
	return s.CreatePostFn(ctx, post)
}

func (s *PostService) FindPostByURL(ctx context.Context, url string) (*wixport.Post, error) {
	return s.FindPostByURLFn(ctx, url)
}

func (s *PostService) FindPosts(ctx context.Context, filter wixport.PostFilter) ([]*wixport.Post, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) DeleteAllPosts(ctx context.Context) error {
	return s.DeleteAllPostsFn(ctx)
}
