// Package storage persists blogs and posts in Postgres.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

// ErrNotInitialized is returned when a repository is used before Init.
var ErrNotInitialized = errors.New("storage: not initialized")

// psql builds queries with Postgres placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	mu sync.Mutex
	db *sql.DB
)

// Init opens the process-wide connection pool exactly once and verifies it.
// Later calls return the existing handle.
func Init(ctx context.Context, dsn string) (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if db != nil {
		return db, nil
	}

	opened, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := opened.PingContext(ctx); err != nil {
		_ = opened.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db = opened
	return db, nil
}

// Handle returns the initialized pool or ErrNotInitialized.
func Handle() (*sql.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		return nil, ErrNotInitialized
	}
	return db, nil
}

// Close tears the pool down; subsequent Handle calls fail until Init runs
// again.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		return nil
	}
	err := db.Close()
	db = nil
	return err
}
