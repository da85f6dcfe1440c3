package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/voyagen/livechannels/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteChannels is a durable local channel cache backed by an SQLite file.
type SQLiteChannels struct {
	db *sqlx.DB
}

type channelRow struct {
	SourceKey  string `db:"source_key"`
	Channels   []byte `db:"channels"`
	UpdateTime int64  `db:"update_time"`
	ExpireTime int64  `db:"expire_time"`
}

// OpenSQLite opens or creates the cache database at path (":memory:" works for tests).
func OpenSQLite(path string) (*SQLiteChannels, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS live_channel_cache (
		source_key  TEXT PRIMARY KEY,
		channels    BLOB NOT NULL,
		update_time INTEGER NOT NULL,
		expire_time INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteChannels{db: db}, nil
}

// Close closes the database.
func (c *SQLiteChannels) Close() error {
	return c.db.Close()
}

// Get returns the entry for key, or nil when there is none.
func (c *SQLiteChannels) Get(ctx context.Context, key string) (*models.CachedChannels, error) {
	var row channelRow
	err := c.db.GetContext(ctx, &row,
		`SELECT source_key, channels, update_time, expire_time FROM live_channel_cache WHERE source_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite get %s: %w", key, err)
	}
	entry := &models.CachedChannels{UpdateTime: row.UpdateTime, ExpireTime: row.ExpireTime}
	if err := json.Unmarshal(row.Channels, &entry.Channels); err != nil {
		return nil, fmt.Errorf("sqlite unmarshal %s: %w", key, err)
	}
	return entry, nil
}

// Set replaces the entry for key.
func (c *SQLiteChannels) Set(ctx context.Context, key string, value *models.CachedChannels) error {
	data, err := json.Marshal(value.Channels)
	if err != nil {
		return fmt.Errorf("sqlite marshal %s: %w", key, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO live_channel_cache (source_key, channels, update_time, expire_time)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (source_key) DO UPDATE SET
		   channels = excluded.channels, update_time = excluded.update_time, expire_time = excluded.expire_time`,
		key, data, value.UpdateTime, value.ExpireTime,
	)
	if err != nil {
		return fmt.Errorf("sqlite set %s: %w", key, err)
	}
	return nil
}
