// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/tanker-portal/db"
	"github.com/danielhkuo/tanker-portal/middleware"
	"github.com/danielhkuo/tanker-portal/models"
	"github.com/danielhkuo/tanker-portal/toast"
	"github.com/danielhkuo/tanker-portal/triage"
)

type TriageHandler struct {
	view    *triage.View
	toast   *toast.Toast
	journal *db.Journal
}

func NewTriageHandler(view *triage.View, t *toast.Toast, journal *db.Journal) *TriageHandler {
	return &TriageHandler{view: view, toast: t, journal: journal}
}

// ListRequests handles GET /api/triage/requests
func (h *TriageHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	board := h.view.Snapshot()

	switch r.URL.Query().Get("sort") {
	case "":
	case "priority":
		board.Requests = triage.SortByPriority(board.Requests)
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "sort must be empty or 'priority'")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, board)
}

// GetStats handles GET /api/triage/stats
func (h *TriageHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.view.Stats())
}

// Refresh handles POST /api/triage/refresh
func (h *TriageHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	board := h.view.Refresh(r.Context())
	slog.Info("triage board refreshed", "source", board.Source, "count", len(board.Requests))
	middleware.JSONResponse(w, http.StatusOK, board)
}

// Approve handles POST /api/triage/requests/{id}/approve
func (h *TriageHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, models.StatusApproved)
}

// Reject handles POST /api/triage/requests/{id}/reject
func (h *TriageHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.applyAction(w, r, models.StatusRejected)
}

func (h *TriageHandler) applyAction(w http.ResponseWriter, r *http.Request, status string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	outcome, err := h.view.ApplyAction(r.Context(), id, status)
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusOK, outcome)
	case errors.Is(err, triage.ErrUnknownRequest):
		middleware.ErrorResponse(w, http.StatusNotFound, "Allocation request not found")
	case errors.Is(err, triage.ErrInvalidStatus):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, triage.ErrAlreadyDecided), errors.Is(err, triage.ErrActionInFlight):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("failed to apply action", "request_id", id, "status", status, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to apply action")
	}
}

// GetToast handles GET /api/triage/toast
func (h *TriageHandler) GetToast(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.toast.Current())
}

// GetDrift handles GET /api/triage/drift
func (h *TriageHandler) GetDrift(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		middleware.JSONResponse(w, http.StatusOK, []models.DriftEntry{})
		return
	}

	entries, err := h.journal.Drift(r.Context())
	if err != nil {
		slog.Error("failed to read drift", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}
