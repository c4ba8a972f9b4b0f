package posts

import (
	"context"
	"errors"

	"github.com/inkwell-blog/inkwell/internal/shared"
)

// GrantChecker reports whether a user holds an explicit view grant on a post.
// Satisfied by the permission registry's repository.
type GrantChecker interface {
	HasGrant(ctx context.Context, postID, userID int64) (bool, error)
}

// Guard holds the authorization decision procedures for posts. Ownership is
// always compared as user id against posts.author_id.
type Guard struct {
	repo   Repository
	grants GrantChecker
}

// NewGuard constructs a Guard.
func NewGuard(repo Repository, grants GrantChecker) *Guard {
	return &Guard{repo: repo, grants: grants}
}

// RequireOwnerOrAdmin permits admins and the post's author. A missing post is
// reported as forbidden to non-admins so the check never leaks existence.
func (g *Guard) RequireOwnerOrAdmin(ctx context.Context, identity shared.Identity, postID int64) error {
	if identity.IsAdmin() {
		return nil
	}
	authorID, err := g.repo.AuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		return err
	}
	if authorID != identity.UserID {
		return shared.ErrForbidden
	}
	return nil
}

// RequireViewPermission permits admins, the author, and holders of an explicit
// view grant.
func (g *Guard) RequireViewPermission(ctx context.Context, identity shared.Identity, postID int64) error {
	if identity.IsAdmin() {
		return nil
	}
	authorID, err := g.repo.AuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		return err
	}
	if authorID == identity.UserID {
		return nil
	}
	granted, err := g.grants.HasGrant(ctx, postID, identity.UserID)
	if err != nil {
		return err
	}
	if !granted {
		return shared.ErrForbidden
	}
	return nil
}
