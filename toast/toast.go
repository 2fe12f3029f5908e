// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package toast is the single-slot, auto-dismissing notification shown after
// a triage action. Only the latest message is visible; showing a new one
// replaces the old one and restarts the dismiss timer.
package toast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/tanker-portal/metrics"
	"github.com/danielhkuo/tanker-portal/models"
	"github.com/danielhkuo/tanker-portal/scope"
)

// DefaultTTL is how long a message stays visible.
const DefaultTTL = 5 * time.Second

type Toast struct {
	scope *scope.Scope
	ttl   time.Duration

	mu      sync.Mutex
	gen     uint64
	message string
	shownAt time.Time
	timer   *scope.Timer
}

func New(s *scope.Scope, ttl time.Duration) *Toast {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Toast{scope: s, ttl: ttl}
}

// Show replaces the visible message with msg.
func (t *Toast) Show(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A stale timer that already fired checks gen and does nothing.
	t.timer.Stop()
	t.gen++
	gen := t.gen

	timer, err := t.scope.AfterFunc(t.ttl, func() { t.dismiss(gen) })
	if err != nil {
		slog.Warn("toast dropped", "message", msg, "error", err)
		t.message = ""
		t.timer = nil
		return
	}

	t.message = msg
	t.shownAt = t.scope.Now()
	t.timer = timer
	metrics.ToastShows.Inc()
}

func (t *Toast) dismiss(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return
	}
	t.message = ""
	t.timer = nil
}

// Current reports the visible message, if any.
func (t *Toast) Current() models.ToastState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.message == "" || t.scope.Closed() {
		return models.ToastState{}
	}
	shown := t.shownAt
	expires := shown.Add(t.ttl)
	return models.ToastState{
		Visible:   true,
		Message:   t.message,
		ShownAt:   &shown,
		ExpiresAt: &expires,
	}
}
