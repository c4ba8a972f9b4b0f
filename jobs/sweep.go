package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Sweeper removes rows the request path leaves behind: session audit rows
// past their expiry, and view grants whose post is gone (post deletion removes
// grants transactionally, so strays here indicate rows predating that path).
type Sweeper struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSweeper constructs a Sweeper.
func NewSweeper(pool *pgxpool.Pool, logger *slog.Logger) *Sweeper {
	return &Sweeper{pool: pool, logger: logger}
}

// Handle processes TaskTypeMaintenanceSweep tasks.
func (s *Sweeper) Handle(ctx context.Context, t *asynq.Task) error {
	var sessions, grants atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
		if err != nil {
			return err
		}
		sessions.Store(tag.RowsAffected())
		return nil
	})
	g.Go(func() error {
		tag, err := s.pool.Exec(ctx, `DELETE FROM post_permissions pp
			WHERE NOT EXISTS (SELECT 1 FROM posts p WHERE p.id = pp.post_id)`)
		if err != nil {
			return err
		}
		grants.Store(tag.RowsAffected())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("maintenance sweep finished",
			slog.Int64("expired_sessions", sessions.Load()),
			slog.Int64("orphaned_grants", grants.Load()),
		)
	}
	return nil
}
