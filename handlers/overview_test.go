// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tanker-portal/models"
	"github.com/danielhkuo/tanker-portal/testutil"
)

func TestGetOverview(t *testing.T) {
	st := testutil.NewStack(t)
	st.View.Refresh(context.Background())
	h := NewOverviewHandler(st.Overview)

	w := httptest.NewRecorder()
	h.GetOverview(w, httptest.NewRequest("GET", "/api/overview", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.OverviewResponse
	testutil.AssertJSON(t, w, &resp)
	require.Len(t, resp.Cards, 4)
	assert.Equal(t, 2, resp.Triage.Pending)
	assert.False(t, resp.Simulation.Active)
	// No districts served, so the demo villages drive the map figures
	assert.Equal(t, "2", resp.Cards[0].Stat)
}

func TestSimulationLifecycle(t *testing.T) {
	st := testutil.NewStack(t)
	h := NewOverviewHandler(st.Overview)

	var state models.SimulationState

	w := httptest.NewRecorder()
	h.StartSimulation(w, httptest.NewRequest("POST", "/api/overview/simulation", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &state)
	assert.True(t, state.Active)
	require.NotNil(t, state.StopsAt)
	assert.Equal(t, st.Config.SimulationTTL, state.StopsAt.Sub(*state.StartedAt))

	w = httptest.NewRecorder()
	h.GetSimulation(w, httptest.NewRequest("GET", "/api/overview/simulation", nil))
	testutil.AssertJSON(t, w, &state)
	assert.True(t, state.Active)

	w = httptest.NewRecorder()
	h.StopSimulation(w, httptest.NewRequest("DELETE", "/api/overview/simulation", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	state = models.SimulationState{}
	testutil.AssertJSON(t, w, &state)
	assert.False(t, state.Active)
}

func TestStartSimulation_ShuttingDown(t *testing.T) {
	st := testutil.NewStack(t)
	st.Scope.Close()
	h := NewOverviewHandler(st.Overview)

	w := httptest.NewRecorder()
	h.StartSimulation(w, httptest.NewRequest("POST", "/api/overview/simulation", nil))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
}
