// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope

import (
	"context"
	"errors"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// ErrClosed is returned by AfterFunc once the scope has been closed.
var ErrClosed = errors.New("scope closed")

// Scope owns a set of one-shot timers and cancels all of them when its owner
// goes away. A callback scheduled through a Scope never runs after Close.
type Scope struct {
	clock clock.WithDelayedExecution

	mu     sync.Mutex
	timers map[*Timer]struct{}
	closed bool
	done   chan struct{}

	stopWatch func() bool
}

// Timer is a handle to a callback scheduled by a Scope.
type Timer struct {
	scope *Scope
	timer clock.Timer
}

// New creates a Scope that closes itself when ctx is done.
func New(ctx context.Context, clk clock.WithDelayedExecution) *Scope {
	s := &Scope{
		clock:  clk,
		timers: make(map[*Timer]struct{}),
		done:   make(chan struct{}),
	}
	s.stopWatch = context.AfterFunc(ctx, s.Close)
	return s
}

// Now reports the scope clock's current time.
func (s *Scope) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc schedules f to run once after d, unless the timer is stopped or
// the scope closes first.
func (s *Scope) AfterFunc(d time.Duration, f func()) (*Timer, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	t := &Timer{scope: s}
	s.timers[t] = struct{}{}
	s.mu.Unlock()

	// The clock is called without s.mu held; a fake clock may run callbacks
	// synchronously under its own lock.
	ct := s.clock.AfterFunc(d, func() {
		if s.release(t) {
			f()
		}
	})

	s.mu.Lock()
	t.timer = ct
	_, live := s.timers[t]
	s.mu.Unlock()
	if !live {
		// Stopped or closed while registering
		ct.Stop()
	}
	return t, nil
}

// release removes t and reports whether it was still live.
func (s *Scope) release(t *Timer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, live := s.timers[t]
	delete(s.timers, t)
	return live
}

// Pending reports the number of scheduled callbacks that have not fired.
func (s *Scope) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Close stops every pending timer. Safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	pending := make([]clock.Timer, 0, len(s.timers))
	for t := range s.timers {
		if t.timer != nil {
			pending = append(pending, t.timer)
		}
	}
	clear(s.timers)
	close(s.done)
	s.mu.Unlock()

	for _, ct := range pending {
		ct.Stop()
	}
	if s.stopWatch != nil {
		s.stopWatch()
	}
}

// Done is closed when the scope closes.
func (s *Scope) Done() <-chan struct{} {
	return s.done
}

// Closed reports whether Close has run.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Stop cancels the callback. It reports whether the callback was still
// pending, i.e. whether this call prevented it from running.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	s := t.scope
	s.mu.Lock()
	_, live := s.timers[t]
	delete(s.timers, t)
	ct := t.timer
	s.mu.Unlock()

	if live && ct != nil {
		ct.Stop()
	}
	return live
}
