// Package db provides PostgreSQL storage for usage quotas and the audit log.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/ats-ranker/internal/quota"
)

//go:embed schema.sql
var schemaSQL string

var (
	_ quota.Store   = (*DB)(nil)
	_ quota.Auditor = (*DB)(nil)
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// EnsureSchema creates the quota and audit tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Usage returns the count for key on day; a row from an earlier day counts as zero
func (db *DB) Usage(ctx context.Context, key, day string) (int, error) {
	var used int
	err := db.pool.QueryRow(ctx,
		`SELECT used FROM usage_quota WHERE caller_key = $1 AND day = $2`,
		key, day,
	).Scan(&used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read usage for %s: %w", key, err)
	}
	return used, nil
}

// Increment resets a stale row and adds one use in a single statement. The
// conditional upsert updates nothing once the limit is reached, so concurrent
// requests cannot overshoot it.
func (db *DB) Increment(ctx context.Context, key, day string, limit int) (int, bool, error) {
	if limit <= 0 {
		used, err := db.Usage(ctx, key, day)
		return used, false, err
	}

	var used int
	err := db.pool.QueryRow(ctx,
		`INSERT INTO usage_quota (caller_key, day, used, updated_at)
		 VALUES ($1, $2, 1, NOW())
		 ON CONFLICT (caller_key) DO UPDATE SET
		   used = CASE WHEN usage_quota.day = EXCLUDED.day THEN usage_quota.used + 1 ELSE 1 END,
		   day = EXCLUDED.day,
		   updated_at = NOW()
		 WHERE usage_quota.day <> EXCLUDED.day OR usage_quota.used < $3
		 RETURNING used`,
		key, day, limit,
	).Scan(&used)
	if err == nil {
		return used, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to increment usage for %s: %w", key, err)
	}

	used, err = db.Usage(ctx, key, day)
	return used, false, err
}

// Audit stores an audit entry with its detail as JSONB
func (db *DB) Audit(ctx context.Context, entry quota.AuditEntry) error {
	detail, err := json.Marshal(entry.Detail)
	if err != nil {
		return fmt.Errorf("failed to marshal audit detail: %w", err)
	}
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO audit_log (caller_key, action, detail, created_at)
		 VALUES ($1, $2, $3, $4)`,
		nullIfEmpty(entry.CallerKey), entry.Action, detail, at,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry %s: %w", entry.Action, err)
	}
	return nil
}

// AuditRecord is a stored audit entry
type AuditRecord struct {
	ID        int64           `json:"id"`
	CallerKey *string         `json:"caller_key"`
	Action    string          `json:"action"`
	Detail    json.RawMessage `json:"detail"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListAudit returns the most recent audit entries, newest first
func (db *DB) ListAudit(ctx context.Context, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, caller_key, action, detail, created_at
		 FROM audit_log ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var r AuditRecord
		if err := rows.Scan(&r.ID, &r.CallerKey, &r.Action, &r.Detail, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
