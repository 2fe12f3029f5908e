// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import (
	"context"
	"log/slog"
	"time"

	"k8s.io/utils/clock"

	"github.com/danielhkuo/tanker-portal/models"
)

// Backend is everything the triage view needs from the drought backend.
type Backend interface {
	RequestSource
	ActionBackend
}

// Journal records outcomes and settles optimistic ones once the backend
// is seen to agree.
type Journal interface {
	OutcomeRecorder
	Reconcile(ctx context.Context, statuses map[int64]string) (int, error)
}

type ViewConfig struct {
	Backend  Backend
	Notifier Notifier
	// Journal may be nil.
	Journal       Journal
	Clock         clock.PassiveClock
	KeySalt       string
	NotifyTimeout time.Duration
}

// View is the allocation triage view: fetch, derive, aggregate, and the
// action workflow, around one Board.
type View struct {
	fetcher    *Fetcher
	board      *Board
	dispatcher *Dispatcher
	journal    Journal
	clock      clock.PassiveClock
}

func NewView(cfg ViewConfig) *View {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	board := NewBoard()

	// A nil Journal must stay a nil interface inside the dispatcher.
	var recorder OutcomeRecorder
	if cfg.Journal != nil {
		recorder = cfg.Journal
	}

	return &View{
		fetcher: NewFetcher(cfg.Backend),
		board:   board,
		dispatcher: NewDispatcher(DispatcherConfig{
			Board:         board,
			Backend:       cfg.Backend,
			Notifier:      cfg.Notifier,
			Journal:       recorder,
			Clock:         cfg.Clock,
			KeySalt:       cfg.KeySalt,
			NotifyTimeout: cfg.NotifyTimeout,
		}),
		journal: cfg.Journal,
		clock:   cfg.Clock,
	}
}

// Refresh fetches, maps and replaces the whole board.
func (v *View) Refresh(ctx context.Context) models.BoardResponse {
	reqs, source := v.fetcher.Fetch(ctx)
	v.board.Replace(ToViewModels(reqs), source, v.clock.Now())

	if source == models.SourceBackend && v.journal != nil {
		statuses := make(map[int64]string, len(reqs))
		for _, r := range reqs {
			statuses[r.ID] = r.Status
		}
		n, err := v.journal.Reconcile(ctx, statuses)
		if err != nil {
			slog.Error("failed to reconcile action journal", "error", err)
		} else if n > 0 {
			slog.Info("optimistic outcomes reconciled", "count", n)
		}
	}

	return v.board.Snapshot()
}

func (v *View) Snapshot() models.BoardResponse {
	return v.board.Snapshot()
}

func (v *View) Stats() models.AggregateStats {
	return v.board.Stats()
}

func (v *View) Get(id int64) (models.AllocationViewModel, bool) {
	return v.board.Get(id)
}

func (v *View) ApplyAction(ctx context.Context, id int64, status string) (models.ActionOutcome, error) {
	return v.dispatcher.ApplyAction(ctx, id, status)
}

// Close waits for in-flight driver notifications.
func (v *View) Close() {
	v.dispatcher.Wait()
}
