// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the journal database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	dbType = strings.ToLower(dbType)
	if dbType != TypeSQLite && dbType != TypePostgres {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	// One writer at a time; also keeps ":memory:" databases on a single connection
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

const schema = `
-- Approve/reject outcomes, confirmed or optimistic
CREATE TABLE IF NOT EXISTS action_outcome (
    id TEXT PRIMARY KEY,
    request_id BIGINT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('Approved', 'Rejected')),
    kind TEXT NOT NULL CHECK (kind IN ('confirmed', 'optimistic')),
    reason TEXT NOT NULL DEFAULT '',
    idempotency_key TEXT NOT NULL,
    recorded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    reconciled_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_action_outcome_request_id ON action_outcome(request_id);
CREATE INDEX IF NOT EXISTS idx_action_outcome_kind ON action_outcome(kind, reconciled_at);

-- Portal submissions from local bodies
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    reference TEXT NOT NULL UNIQUE,
    authority TEXT NOT NULL,
    location TEXT NOT NULL,
    population BIGINT NOT NULL,
    liters_required BIGINT NOT NULL,
    reason TEXT NOT NULL DEFAULT '',
    contact_info TEXT NOT NULL,
    delivered BOOLEAN NOT NULL,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_submission_submitted_at ON submission(submitted_at);
`
