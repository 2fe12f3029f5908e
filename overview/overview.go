// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package overview

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/tanker-portal/drought"
	"github.com/danielhkuo/tanker-portal/models"
)

// AlertWSI is the district average at which the WSI card turns critical.
const AlertWSI = 0.6

// StatsSource is the triage board's counters.
type StatsSource interface {
	Stats() models.AggregateStats
}

// DroughtLoader loads the drought map data.
type DroughtLoader interface {
	Load(ctx context.Context) models.DroughtResponse
}

// Cards builds the four dashboard headline cards. Fleet size and cost have
// no upstream source and keep their dashboard values.
func Cards(sum drought.Summary, stats models.AggregateStats, sim models.SimulationState) []models.OverviewCard {
	criticalTrend := fmt.Sprintf("%d pending triage", stats.Pending)
	if sim.Active {
		criticalTrend = "Crisis simulation active"
	}

	wsiTrend := "Stable"
	if sum.AverageWSI >= AlertWSI {
		wsiTrend = "Alert Level"
	}

	return []models.OverviewCard{
		{
			Name:     "Critical Villages",
			Stat:     fmt.Sprintf("%d", sum.CriticalFlags),
			Trend:    criticalTrend,
			Critical: sim.Active || sum.CriticalFlags > 0,
		},
		{Name: "Active Tankers", Stat: "45", Trend: "Optimal", Critical: false},
		{
			Name:     "Total WSI Avg",
			Stat:     fmt.Sprintf("%.2f", sum.AverageWSI),
			Trend:    wsiTrend,
			Critical: sum.AverageWSI >= AlertWSI,
		},
		{Name: "Est. Daily Cost", Stat: "₹1.2L", Trend: "-15% vs last month", Critical: false},
	}
}

// Service assembles the dashboard overview.
type Service struct {
	stats      StatsSource
	drought    DroughtLoader
	simulation *Simulation
}

func NewService(stats StatsSource, d DroughtLoader, sim *Simulation) *Service {
	return &Service{stats: stats, drought: d, simulation: sim}
}

func (s *Service) Simulation() *Simulation {
	return s.simulation
}

// Overview reads the triage counters and the drought summary concurrently.
func (s *Service) Overview(ctx context.Context) (models.OverviewResponse, error) {
	var (
		stats models.AggregateStats
		sum   drought.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats = s.stats.Stats()
		return nil
	})
	g.Go(func() error {
		sum = drought.Summarize(s.drought.Load(gctx))
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return models.OverviewResponse{}, fmt.Errorf("failed to build overview: %w", err)
	}

	sim := s.simulation.State()
	return models.OverviewResponse{
		Cards:      Cards(sum, stats, sim),
		Triage:     stats,
		Simulation: sim,
	}, nil
}
