package perms

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for view grants.
type Repository interface {
	Insert(ctx context.Context, postID, userID int64) error
	Remove(ctx context.Context, postID, userID int64) error
	ListForPost(ctx context.Context, postID int64) ([]Grant, error)
	HasGrant(ctx context.Context, postID, userID int64) (bool, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert records a grant. Inserting an existing pair is treated as success,
// the primary key keeps the pair unique.
func (r *PGRepository) Insert(ctx context.Context, postID, userID int64) error {
	const query = `INSERT INTO post_permissions (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())`
	_, err := r.pool.Exec(ctx, query, postID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}
	return nil
}

// Remove deletes a grant. Removing a grant that never existed is a no-op.
func (r *PGRepository) Remove(ctx context.Context, postID, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM post_permissions WHERE post_id = $1 AND user_id = $2`, postID, userID)
	return err
}

// ListForPost returns grants for a post with usernames expanded.
func (r *PGRepository) ListForPost(ctx context.Context, postID int64) ([]Grant, error) {
	const query = `SELECT pp.post_id, pp.user_id, u.username, pp.created_at
		FROM post_permissions pp
		JOIN users u ON u.id = pp.user_id
		WHERE pp.post_id = $1
		ORDER BY pp.user_id`
	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		if err := rows.Scan(&g.PostID, &g.UserID, &g.Username, &g.CreatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	return grants, rows.Err()
}

// HasGrant reports whether a (post, user) grant exists.
func (r *PGRepository) HasGrant(ctx context.Context, postID, userID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM post_permissions WHERE post_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, postID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ Repository = (*PGRepository)(nil)
