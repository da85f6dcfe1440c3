package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyagen/livechannels/internal/models"
)

// Postgres implements Store using PostgreSQL. List order is kept in the position column.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store from a DSN. Caller must call Close when done.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Ping checks connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// GetLiveConfigs returns all sources ordered by position.
func (p *Postgres) GetLiveConfigs(ctx context.Context) ([]models.LiveSource, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT key, name, url, COALESCE(user_agent, ''), disabled, channel_number
		 FROM live_sources ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("GetLiveConfigs: %w", err)
	}
	sources, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LiveSource, error) {
		var s models.LiveSource
		err := row.Scan(&s.Key, &s.Name, &s.URL, &s.UserAgent, &s.Disabled, &s.ChannelNumber)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("GetLiveConfigs: %w", err)
	}
	return sources, nil
}

// SetLiveConfigs replaces the whole list in one transaction.
func (p *Postgres) SetLiveConfigs(ctx context.Context, sources []models.LiveSource) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM live_sources`); err != nil {
		return fmt.Errorf("delete live_sources: %w", err)
	}
	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"live_sources"},
		[]string{"position", "key", "name", "url", "user_agent", "disabled", "channel_number"},
		pgx.CopyFromSlice(len(sources), func(i int) ([]any, error) {
			s := sources[i]
			var ua *string
			if s.UserAgent != "" {
				ua = &s.UserAgent
			}
			return []any{i, s.Key, s.Name, s.URL, ua, s.Disabled, s.ChannelNumber}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy live_sources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// SetChannelNumber updates the channel count of every row with key.
func (p *Postgres) SetChannelNumber(ctx context.Context, key string, n int) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE live_sources SET channel_number = $2, updated_at = NOW() WHERE key = $1`,
		key, n,
	)
	if err != nil {
		return fmt.Errorf("SetChannelNumber: %w", err)
	}
	return nil
}
