package perms

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// PostGuard is the slice of the post authorization guard the registry needs.
type PostGuard interface {
	RequireOwnerOrAdmin(ctx context.Context, identity shared.Identity, postID int64) error
}

// Service wraps grant management. Every operation is gated on the caller
// owning the target post or being admin.
type Service struct {
	repo  Repository
	guard PostGuard
}

// NewService constructs a new Service.
func NewService(repo Repository, guard PostGuard) *Service {
	return &Service{repo: repo, guard: guard}
}

// Grant adds a view permission for userID on postID.
func (s *Service) Grant(ctx context.Context, identity shared.Identity, postID, userID int64) error {
	if err := s.guard.RequireOwnerOrAdmin(ctx, identity, postID); err != nil {
		return err
	}
	return s.repo.Insert(ctx, postID, userID)
}

// Revoke removes a view permission. Revoking a grant that does not exist
// succeeds silently.
func (s *Service) Revoke(ctx context.Context, identity shared.Identity, postID, userID int64) error {
	if err := s.guard.RequireOwnerOrAdmin(ctx, identity, postID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, postID, userID)
}

// ListForPost returns the grants on a post, usernames included.
func (s *Service) ListForPost(ctx context.Context, identity shared.Identity, postID int64) ([]Grant, error) {
	if err := s.guard.RequireOwnerOrAdmin(ctx, identity, postID); err != nil {
		return nil, err
	}
	return s.repo.ListForPost(ctx, postID)
}
