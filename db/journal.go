// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/danielhkuo/tanker-portal/models"
)

// Journal keeps approve/reject outcomes and portal submissions. Optimistic
// outcomes stay open until a refresh shows the backend agreeing with them.
type Journal struct {
	db    *sql.DB
	clock clock.PassiveClock
}

func NewJournal(db *sql.DB, clk clock.PassiveClock) *Journal {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Journal{db: db, clock: clk}
}

// Record stores one action outcome. Confirmed outcomes are reconciled on
// arrival.
func (j *Journal) Record(ctx context.Context, o models.ActionOutcome) error {
	recordedAt := o.At
	if recordedAt.IsZero() {
		recordedAt = j.clock.Now()
	}
	recordedAt = recordedAt.UTC()

	var reconciledAt *time.Time
	if o.Confirmed() {
		reconciledAt = &recordedAt
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO action_outcome (id, request_id, status, kind, reason, idempotency_key, recorded_at, reconciled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.NewString(), o.RequestID, o.Status, o.Kind, o.Reason, o.IdempotencyKey, recordedAt, reconciledAt)
	if err != nil {
		return fmt.Errorf("failed to record outcome for request %d: %w", o.RequestID, err)
	}

	return nil
}

// Drift lists optimistic outcomes not yet reconciled, oldest first. Entries
// recorded in the same instant come back by request id.
func (j *Journal) Drift(ctx context.Context) ([]models.DriftEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, request_id, status, reason, idempotency_key, recorded_at
		FROM action_outcome
		WHERE kind = $1 AND reconciled_at IS NULL
		ORDER BY recorded_at, request_id, id
	`, models.OutcomeOptimistic)
	if err != nil {
		return nil, fmt.Errorf("failed to query drift: %w", err)
	}
	defer rows.Close()

	entries := []models.DriftEntry{}
	for rows.Next() {
		var e models.DriftEntry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Status, &e.Reason, &e.IdempotencyKey, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan drift entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read drift: %w", err)
	}

	return entries, nil
}

// Reconcile settles every open optimistic outcome whose status now matches
// what the backend reports for that request. It returns how many were
// settled.
func (j *Journal) Reconcile(ctx context.Context, statuses map[int64]string) (int, error) {
	open, err := j.Drift(ctx)
	if err != nil {
		return 0, err
	}

	var settle []string
	for _, e := range open {
		if s, ok := statuses[e.RequestID]; ok && s == e.Status {
			settle = append(settle, e.ID)
		}
	}
	if len(settle) == 0 {
		return 0, nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin reconcile: %w", err)
	}
	defer tx.Rollback()

	now := j.clock.Now().UTC()
	n := 0
	for _, id := range settle {
		res, err := tx.ExecContext(ctx, `
			UPDATE action_outcome SET reconciled_at = $1
			WHERE id = $2 AND reconciled_at IS NULL
		`, now, id)
		if err != nil {
			return 0, fmt.Errorf("failed to reconcile outcome %s: %w", id, err)
		}
		affected, _ := res.RowsAffected()
		n += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reconcile: %w", err)
	}

	return n, nil
}

// RecordSubmission logs a portal submission and whether the backend took it.
func (j *Journal) RecordSubmission(ctx context.Context, reference string, r models.NewTankerRequest, delivered bool) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO submission (id, reference, authority, location, population, liters_required, reason, contact_info, delivered, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, uuid.NewString(), reference, r.Authority, r.Location, r.Population, r.LitersRequired,
		r.Reason, r.ContactInfo, delivered, j.clock.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record submission %s: %w", reference, err)
	}

	return nil
}
