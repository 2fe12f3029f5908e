// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package overview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tanker-portal/drought"
	"github.com/danielhkuo/tanker-portal/models"
)

type stubStats models.AggregateStats

func (s stubStats) Stats() models.AggregateStats { return models.AggregateStats(s) }

type stubDrought models.DroughtResponse

func (d stubDrought) Load(ctx context.Context) models.DroughtResponse {
	return models.DroughtResponse(d)
}

func TestCards(t *testing.T) {
	sum := drought.Summary{TotalAnalyzed: 6, CriticalFlags: 2, AverageWSI: 0.6633}
	stats := models.AggregateStats{TotalReady: 3, Pending: 2, CriticalCount: 1}

	cards := Cards(sum, stats, models.SimulationState{})
	require.Len(t, cards, 4)

	assert.Equal(t, "Critical Villages", cards[0].Name)
	assert.Equal(t, "2", cards[0].Stat)
	assert.Equal(t, "2 pending triage", cards[0].Trend)
	assert.True(t, cards[0].Critical)

	assert.Equal(t, "Active Tankers", cards[1].Name)
	assert.False(t, cards[1].Critical)

	assert.Equal(t, "0.66", cards[2].Stat)
	assert.Equal(t, "Alert Level", cards[2].Trend)
	assert.True(t, cards[2].Critical)

	assert.Equal(t, "Est. Daily Cost", cards[3].Name)
}

func TestCards_Calm(t *testing.T) {
	cards := Cards(drought.Summary{AverageWSI: 0.3}, models.AggregateStats{}, models.SimulationState{})

	assert.Equal(t, "0", cards[0].Stat)
	assert.False(t, cards[0].Critical)
	assert.Equal(t, "Stable", cards[2].Trend)
	assert.False(t, cards[2].Critical)
}

func TestCards_SimulationActive(t *testing.T) {
	cards := Cards(drought.Summary{}, models.AggregateStats{}, models.SimulationState{Active: true})

	assert.Equal(t, "Crisis simulation active", cards[0].Trend)
	assert.True(t, cards[0].Critical)
}

func TestOverview(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	_, err := sim.Start()
	require.NoError(t, err)

	svc := NewService(
		stubStats{TotalReady: 2, Pending: 2, CriticalCount: 2},
		stubDrought{Source: models.SourceFallback, Villages: drought.FallbackVillages()},
		sim,
	)

	resp, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.AggregateStats{TotalReady: 2, Pending: 2, CriticalCount: 2}, resp.Triage)
	assert.True(t, resp.Simulation.Active)
	require.Len(t, resp.Cards, 4)
	assert.Equal(t, "2", resp.Cards[0].Stat)
	assert.Equal(t, "0.63", resp.Cards[2].Stat)
}

func TestOverview_CancelledContext(t *testing.T) {
	sim, _, _ := newTestSimulation(t)
	svc := NewService(stubStats{}, stubDrought{}, sim)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Overview(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
