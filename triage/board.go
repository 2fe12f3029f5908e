// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import (
	"errors"
	"sync"
	"time"

	"github.com/danielhkuo/tanker-portal/models"
)

var (
	ErrUnknownRequest = errors.New("unknown allocation request")
	ErrInvalidStatus  = errors.New("status must be Approved or Rejected")
	ErrAlreadyDecided = errors.New("request is no longer pending")
	ErrActionInFlight = errors.New("an action for this request is already in flight")
)

// Board holds the triage view's in-memory copy of the request list. The
// backend owns the durable record; a refresh replaces everything here.
type Board struct {
	mu          sync.RWMutex
	items       []models.AllocationViewModel
	stats       models.AggregateStats
	source      string
	refreshedAt time.Time

	// ids with an approve/reject command on the wire
	inflight map[int64]string
}

func NewBoard() *Board {
	return &Board{inflight: make(map[int64]string)}
}

// Replace swaps in a new list. Concurrent refreshes land in arrival order.
func (b *Board) Replace(items []models.AllocationViewModel, source string, at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = items
	b.stats = Aggregate(items)
	b.source = source
	b.refreshedAt = at
}

// Snapshot returns a copy safe to hand to a handler.
func (b *Board) Snapshot() models.BoardResponse {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := make([]models.AllocationViewModel, len(b.items))
	copy(items, b.items)
	return models.BoardResponse{
		Requests:    items,
		Stats:       b.stats,
		Source:      b.source,
		RefreshedAt: b.refreshedAt,
	}
}

func (b *Board) Stats() models.AggregateStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

func (b *Board) Get(id int64) (models.AllocationViewModel, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.items {
		if a.ID == id {
			return a, true
		}
	}
	return models.AllocationViewModel{}, false
}

// begin claims id for an action. Only Pending entries with no other action
// in flight may be claimed.
func (b *Board) begin(id int64, status string) (models.AllocationViewModel, error) {
	if !models.IsDecision(status) {
		return models.AllocationViewModel{}, ErrInvalidStatus
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var item models.AllocationViewModel
	found := false
	for _, a := range b.items {
		if a.ID == id {
			item, found = a, true
			break
		}
	}
	if !found {
		return item, ErrUnknownRequest
	}
	if _, busy := b.inflight[id]; busy {
		return item, ErrActionInFlight
	}
	if item.Status != models.StatusPending {
		return item, ErrAlreadyDecided
	}

	b.inflight[id] = status
	return item, nil
}

// finish applies status to every entry with id, releases the claim and
// recomputes the counters.
func (b *Board) finish(id int64, status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.inflight, id)
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i].Status = status
		}
	}
	b.stats = Aggregate(b.items)
}
