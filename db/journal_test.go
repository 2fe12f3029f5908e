// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/danielhkuo/tanker-portal/models"
)

func setupJournal(t *testing.T) (*Journal, *sql.DB, *clocktesting.FakeClock) {
	t.Helper()

	conn, err := Open(TypeSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, CreateSchema(conn))
	// Second run must be a no-op
	require.NoError(t, CreateSchema(conn))

	clk := clocktesting.NewFakeClock(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
	return NewJournal(conn, clk), conn, clk
}

func outcome(id int64, status, kind string, at time.Time) models.ActionOutcome {
	o := models.ActionOutcome{
		RequestID:      id,
		Status:         status,
		Kind:           kind,
		IdempotencyKey: "key-" + status,
		At:             at,
	}
	if kind == models.OutcomeOptimistic {
		o.Reason = "connection refused"
	}
	return o
}

func TestOpen_UnknownType(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestJournal_DriftListsOnlyOpenOptimistic(t *testing.T) {
	j, _, clk := setupJournal(t)
	ctx := context.Background()

	t0 := clk.Now()
	require.NoError(t, j.Record(ctx, outcome(1, models.StatusApproved, models.OutcomeConfirmed, t0)))
	require.NoError(t, j.Record(ctx, outcome(2, models.StatusRejected, models.OutcomeOptimistic, t0.Add(time.Second))))
	require.NoError(t, j.Record(ctx, outcome(3, models.StatusApproved, models.OutcomeOptimistic, t0.Add(2*time.Second))))

	drift, err := j.Drift(ctx)
	require.NoError(t, err)
	require.Len(t, drift, 2)

	assert.Equal(t, int64(2), drift[0].RequestID)
	assert.Equal(t, models.StatusRejected, drift[0].Status)
	assert.Equal(t, "connection refused", drift[0].Reason)
	assert.Equal(t, "key-Rejected", drift[0].IdempotencyKey)
	assert.NotEmpty(t, drift[0].ID)
	assert.True(t, drift[0].RecordedAt.Equal(t0.Add(time.Second)), "recorded_at=%v", drift[0].RecordedAt)

	assert.Equal(t, int64(3), drift[1].RequestID)
}

func TestJournal_DriftSameInstantOrderedByRequest(t *testing.T) {
	j, _, clk := setupJournal(t)
	ctx := context.Background()

	// Inserted out of request order, all in one instant
	for _, id := range []int64{9, 4, 7, 1} {
		require.NoError(t, j.Record(ctx, outcome(id, models.StatusApproved, models.OutcomeOptimistic, clk.Now())))
	}

	for i := 0; i < 5; i++ {
		drift, err := j.Drift(ctx)
		require.NoError(t, err)
		require.Len(t, drift, 4)

		ids := make([]int64, len(drift))
		for k, e := range drift {
			ids[k] = e.RequestID
		}
		assert.Equal(t, []int64{1, 4, 7, 9}, ids)
	}
}

func TestJournal_DriftEmpty(t *testing.T) {
	j, _, _ := setupJournal(t)

	drift, err := j.Drift(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, drift)
	assert.Empty(t, drift)
}

func TestJournal_Reconcile(t *testing.T) {
	j, conn, clk := setupJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, outcome(1, models.StatusApproved, models.OutcomeOptimistic, clk.Now())))
	require.NoError(t, j.Record(ctx, outcome(2, models.StatusRejected, models.OutcomeOptimistic, clk.Now())))
	require.NoError(t, j.Record(ctx, outcome(3, models.StatusApproved, models.OutcomeOptimistic, clk.Now())))

	clk.Step(time.Minute)
	n, err := j.Reconcile(ctx, map[int64]string{
		1: models.StatusApproved, // backend caught up
		2: models.StatusPending,  // backend never saw it
		// 3 absent from the backend list
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	drift, err := j.Drift(ctx)
	require.NoError(t, err)
	require.Len(t, drift, 2)
	assert.Equal(t, int64(2), drift[0].RequestID)
	assert.Equal(t, int64(3), drift[1].RequestID)

	var reconciledAt time.Time
	err = conn.QueryRow(`SELECT reconciled_at FROM action_outcome WHERE request_id = $1`, 1).Scan(&reconciledAt)
	require.NoError(t, err)
	assert.True(t, reconciledAt.Equal(clk.Now()), "reconciled_at=%v", reconciledAt)

	// Running again settles nothing new
	n, err = j.Reconcile(ctx, map[int64]string{1: models.StatusApproved})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestJournal_RecordSubmission(t *testing.T) {
	j, conn, _ := setupJournal(t)
	ctx := context.Background()

	req := models.NewTankerRequest{
		Authority:      "Gram Panchayat",
		Location:       "Shirur Village",
		Population:     4500,
		LitersRequired: 45000,
		Reason:         "Borewells dry",
		ContactInfo:    "sarpanch@example.org",
	}
	require.NoError(t, j.RecordSubmission(ctx, "TR-abc123", req, false))

	var (
		location  string
		liters    int64
		delivered bool
	)
	err := conn.QueryRow(`SELECT location, liters_required, delivered FROM submission WHERE reference = $1`, "TR-abc123").
		Scan(&location, &liters, &delivered)
	require.NoError(t, err)
	assert.Equal(t, "Shirur Village", location)
	assert.Equal(t, int64(45000), liters)
	assert.False(t, delivered)

	// References are unique
	assert.Error(t, j.RecordSubmission(ctx, "TR-abc123", req, true))
}
