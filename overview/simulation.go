// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package overview

import (
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/tanker-portal/models"
	"github.com/danielhkuo/tanker-portal/scope"
)

// DefaultSimulationTTL is how long a crisis simulation runs before it stops
// on its own.
const DefaultSimulationTTL = 20 * time.Second

// Simulation is the dashboard's crisis drill switch.
type Simulation struct {
	scope *scope.Scope
	ttl   time.Duration

	mu        sync.Mutex
	gen       uint64
	active    bool
	startedAt time.Time
	timer     *scope.Timer
}

func NewSimulation(s *scope.Scope, ttl time.Duration) *Simulation {
	if ttl <= 0 {
		ttl = DefaultSimulationTTL
	}
	return &Simulation{scope: s, ttl: ttl}
}

// Start turns the simulation on. Starting while active restarts the
// auto-stop timer.
func (s *Simulation) Start() (models.SimulationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer.Stop()
	s.gen++
	gen := s.gen

	timer, err := s.scope.AfterFunc(s.ttl, func() { s.expire(gen) })
	if err != nil {
		s.active = false
		s.timer = nil
		return models.SimulationState{}, err
	}

	s.active = true
	s.startedAt = s.scope.Now()
	s.timer = timer
	slog.Info("crisis simulation started", "stops_at", s.startedAt.Add(s.ttl))

	return s.stateLocked(), nil
}

// Stop turns the simulation off. Stopping an inactive simulation is a no-op.
func (s *Simulation) Stop() models.SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		slog.Info("crisis simulation stopped")
	}
	s.timer.Stop()
	s.gen++
	s.active = false
	s.timer = nil
	return s.stateLocked()
}

func (s *Simulation) State() models.SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Simulation) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.active = false
	s.timer = nil
	slog.Info("crisis simulation ended")
}

func (s *Simulation) stateLocked() models.SimulationState {
	if !s.active || s.scope.Closed() {
		return models.SimulationState{}
	}
	started := s.startedAt
	stops := started.Add(s.ttl)
	return models.SimulationState{
		Active:    true,
		StartedAt: &started,
		StopsAt:   &stops,
	}
}
