package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// PostgresStore keeps documents in a single kv_blobs table with a version
// column used for optimistic concurrency.
type PostgresStore struct {
	db *sql.DB
}

const createBlobsTable = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key     TEXT PRIMARY KEY,
    doc     JSONB NOT NULL,
    version BIGINT NOT NULL DEFAULT 1
)`

// OpenPostgres connects with a lib/pq connection string and ensures the
// blob table exists.
func OpenPostgres(connString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(createBlobsTable); err != nil {
		return nil, fmt.Errorf("create kv_blobs: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM kv_blobs WHERE key = $1`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %q: %w", key, err)
	}
	return doc, nil
}

func (s *PostgresStore) Update(ctx context.Context, key string, fn func(cur []byte) ([]byte, error)) error {
	for i := 0; i < maxUpdateRetries; i++ {
		var (
			cur     []byte
			version int64
			exists  = true
		)
		err := s.db.QueryRowContext(ctx,
			`SELECT doc, version FROM kv_blobs WHERE key = $1`, key).
			Scan(&cur, &version)
		if errors.Is(err, sql.ErrNoRows) {
			cur, exists = nil, false
		} else if err != nil {
			return fmt.Errorf("postgres read %q: %w", key, err)
		}

		next, err := fn(cur)
		if err != nil {
			return err
		}

		var res sql.Result
		if exists {
			res, err = s.db.ExecContext(ctx,
				`UPDATE kv_blobs SET doc = $1, version = version + 1
				 WHERE key = $2 AND version = $3`,
				next, key, version)
		} else {
			res, err = s.db.ExecContext(ctx,
				`INSERT INTO kv_blobs (key, doc) VALUES ($1, $2)
				 ON CONFLICT (key) DO NOTHING`,
				key, next)
		}
		if err != nil {
			return fmt.Errorf("postgres write %q: %w", key, err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return nil
		}
		// version moved (or the row appeared) under us, retry
	}
	return ErrConflict
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
