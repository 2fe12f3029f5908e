// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tanker-portal/middleware"
	"github.com/danielhkuo/tanker-portal/overview"
	"github.com/danielhkuo/tanker-portal/scope"
)

type OverviewHandler struct {
	service *overview.Service
}

func NewOverviewHandler(service *overview.Service) *OverviewHandler {
	return &OverviewHandler{service: service}
}

// GetOverview handles GET /api/overview
func (h *OverviewHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Overview(r.Context())
	if err != nil {
		slog.Error("failed to build overview", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Overview unavailable")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetSimulation handles GET /api/overview/simulation
func (h *OverviewHandler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.service.Simulation().State())
}

// StartSimulation handles POST /api/overview/simulation
func (h *OverviewHandler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Simulation().Start()
	if errors.Is(err, scope.ErrClosed) {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Server is shutting down")
		return
	}
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start simulation")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, state)
}

// StopSimulation handles DELETE /api/overview/simulation
func (h *OverviewHandler) StopSimulation(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.service.Simulation().Stop())
}
