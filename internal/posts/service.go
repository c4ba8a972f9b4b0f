package posts

import (
	"context"
	"errors"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Service wraps post business rules: validation plus the authorization guard.
type Service struct {
	repo  Repository
	guard *Guard
}

// NewService constructs a new Service.
func NewService(repo Repository, guard *Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// Create validates and persists a new post authored by the caller.
func (s *Service) Create(ctx context.Context, identity shared.Identity, req CreatePostRequest) (int64, error) {
	if req.Title == "" || req.Content == "" {
		return 0, shared.Validation("Title and content are required")
	}
	return s.repo.Create(ctx, req.Title, req.Content, identity.UserID)
}

// List returns the public, unfiltered post feed.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.repo.List(ctx)
}

// Get fetches a single post without permission checks.
func (s *Service) Get(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Blog post not found")
		}
		return nil, err
	}
	return post, nil
}

// GetVisible fetches a post after a view-permission check. The guard runs
// first, so callers without rights get a 403 that does not reveal existence.
func (s *Service) GetVisible(ctx context.Context, identity shared.Identity, id int64) (*Post, error) {
	if err := s.guard.RequireViewPermission(ctx, identity, id); err != nil {
		return nil, err
	}
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

// Update applies a partial update when the caller owns the post or is admin.
// The guard runs before field validation so unauthorized callers always see 403.
func (s *Service) Update(ctx context.Context, identity shared.Identity, id int64, patch Patch) error {
	if err := s.guard.RequireOwnerOrAdmin(ctx, identity, id); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return shared.Validation("No fields to update")
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Blog post not found")
		}
		return err
	}
	return nil
}

// Delete removes a post when the caller owns it or is admin.
func (s *Service) Delete(ctx context.Context, identity shared.Identity, id int64) error {
	if err := s.guard.RequireOwnerOrAdmin(ctx, identity, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Blog post not found")
		}
		return err
	}
	return nil
}

// Guard exposes the authorization guard for collaborating modules.
func (s *Service) Guard() *Guard {
	return s.guard
}
