package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-blog/inkwell/internal/platform/db"
	"github.com/inkwell-blog/inkwell/internal/shared"
)

// Repository defines persistence operations for posts.
type Repository interface {
	Create(ctx context.Context, title, content string, authorID int64) (int64, error)
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, id int64) (*Post, error)
	AuthorID(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const selectPost = `SELECT p.id, p.title, p.content, p.author_id, u.username, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// Create persists a new post with a server-assigned timestamp.
func (r *PGRepository) Create(ctx context.Context, title, content string, authorID int64) (int64, error) {
	const query = `INSERT INTO posts (title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id`
	var id int64
	if err := r.pool.QueryRow(ctx, query, title, content, authorID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// List returns every post, unfiltered.
func (r *PGRepository) List(ctx context.Context) ([]Post, error) {
	rows, err := r.pool.Query(ctx, selectPost+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Author, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Get fetches a post by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Post, error) {
	var p Post
	err := r.pool.QueryRow(ctx, selectPost+` WHERE p.id = $1`, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.Author, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AuthorID fetches only the author of a post, for ownership checks.
func (r *PGRepository) AuthorID(ctx context.Context, id int64) (int64, error) {
	var authorID int64
	err := r.pool.QueryRow(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return authorID, nil
}

// Update applies a partial update. Each supplied field gets its own bind
// parameter; the statement is assembled from fixed fragments only.
func (r *PGRepository) Update(ctx context.Context, id int64, patch Patch) error {
	query := `UPDATE posts SET updated_at = NOW()`
	var args []any
	argPos := 1

	if patch.Title != nil {
		query += fmt.Sprintf(", title = $%d", argPos)
		args = append(args, *patch.Title)
		argPos++
	}
	if patch.Content != nil {
		query += fmt.Sprintf(", content = $%d", argPos)
		args = append(args, *patch.Content)
		argPos++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a post together with its view grants in one transaction.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM post_permissions WHERE post_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ Repository = (*PGRepository)(nil)
