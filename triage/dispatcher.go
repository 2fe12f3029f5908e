// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/danielhkuo/tanker-portal/idemkey"
	"github.com/danielhkuo/tanker-portal/metrics"
	"github.com/danielhkuo/tanker-portal/models"
)

// Toast messages, one per decision
const (
	ToastApproved = "✅ Dispatched! Notification sent to Driver's App!"
	ToastRejected = "❌ Request rejected."

	NotificationTitle = "New Dispatch! 🚛"
)

// DefaultNotifyTimeout bounds the fire-and-forget driver notification.
const DefaultNotifyTimeout = 10 * time.Second

// journalTimeout bounds the outcome write once the caller may be gone.
const journalTimeout = 5 * time.Second

// ActionBackend is the write side of the drought backend.
type ActionBackend interface {
	ApplyAction(ctx context.Context, id int64, status, idempotencyKey string) error
	SendMobileNotification(ctx context.Context, n models.MobileNotification) error
}

// Notifier shows user-visible feedback. *toast.Toast satisfies it.
type Notifier interface {
	Show(msg string)
}

// OutcomeRecorder keeps action outcomes for later reconciliation.
type OutcomeRecorder interface {
	Record(ctx context.Context, o models.ActionOutcome) error
}

// DispatchMessage is the driver notification text for an approved request.
func DispatchMessage(location string) string {
	return fmt.Sprintf("You have been assigned to %s. Start immediately!", location)
}

// Dispatcher applies approve/reject decisions. A backend failure never
// blocks the interface: the local status changes anyway and the outcome is
// reported as optimistic.
type Dispatcher struct {
	board    *Board
	backend  ActionBackend
	notifier Notifier
	journal  OutcomeRecorder
	clock    clock.PassiveClock
	keySalt  string

	notifyTimeout time.Duration
	notifyWG      sync.WaitGroup
}

type DispatcherConfig struct {
	Board    *Board
	Backend  ActionBackend
	Notifier Notifier
	// Journal may be nil.
	Journal       OutcomeRecorder
	Clock         clock.PassiveClock
	KeySalt       string
	NotifyTimeout time.Duration
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = DefaultNotifyTimeout
	}
	return &Dispatcher{
		board:         cfg.Board,
		backend:       cfg.Backend,
		notifier:      cfg.Notifier,
		journal:       cfg.Journal,
		clock:         cfg.Clock,
		keySalt:       cfg.KeySalt,
		notifyTimeout: cfg.NotifyTimeout,
	}
}

// ApplyAction sends status for id to the backend and updates the board.
// The returned error is only set when the action was refused locally
// (unknown id, bad status, not pending, already in flight); backend
// failures come back as an optimistic outcome instead.
func (d *Dispatcher) ApplyAction(ctx context.Context, id int64, status string) (models.ActionOutcome, error) {
	item, err := d.board.begin(id, status)
	if err != nil {
		return models.ActionOutcome{}, err
	}

	key := idemkey.ActionKey(id, status, d.keySalt)
	outcome := models.ActionOutcome{
		RequestID:      id,
		Status:         status,
		Kind:           models.OutcomeConfirmed,
		IdempotencyKey: key,
	}

	if err := d.backend.ApplyAction(ctx, id, status, key); err != nil {
		outcome.Kind = models.OutcomeOptimistic
		outcome.Reason = err.Error()
		slog.Warn("action not confirmed by backend, applying locally",
			"request_id", id, "status", status, "error", err)
	}

	d.board.finish(id, status)
	outcome.At = d.clock.Now()

	if status == models.StatusApproved {
		outcome.Toast = ToastApproved
		if outcome.Confirmed() {
			d.notifyDriver(ctx, id, item.Location)
		}
	} else {
		outcome.Toast = ToastRejected
	}
	d.notifier.Show(outcome.Toast)

	metrics.ActionOutcomes.WithLabelValues(status, outcome.Kind).Inc()
	slog.Info("action applied",
		"request_id", id, "status", status, "kind", outcome.Kind)

	if d.journal != nil {
		// The board has already changed; a caller hanging up must not lose the record.
		jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
		defer cancel()
		if err := d.journal.Record(jctx, outcome); err != nil {
			slog.Error("failed to journal action outcome", "request_id", id, "error", err)
		}
	}

	return outcome, nil
}

// notifyDriver fires one notification attempt in the background. Its
// result never reaches the caller.
func (d *Dispatcher) notifyDriver(ctx context.Context, id int64, location string) {
	n := models.MobileNotification{
		Title:   NotificationTitle,
		Message: DispatchMessage(location),
	}

	d.notifyWG.Add(1)
	go func() {
		defer d.notifyWG.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.notifyTimeout)
		defer cancel()

		if err := d.backend.SendMobileNotification(nctx, n); err != nil {
			metrics.NotificationFailures.Inc()
			slog.Warn("driver notification failed", "request_id", id, "error", err)
			return
		}
		slog.Info("driver notification sent", "request_id", id)
	}()
}

// Wait blocks until background notifications have finished.
func (d *Dispatcher) Wait() {
	d.notifyWG.Wait()
}
