// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/tanker-portal/cliparse"
	"github.com/danielhkuo/tanker-portal/db"
	"github.com/danielhkuo/tanker-portal/idemkey"
	"github.com/danielhkuo/tanker-portal/middleware"
	"github.com/danielhkuo/tanker-portal/models"
	"github.com/danielhkuo/tanker-portal/upstream"
)

// journalTimeout bounds the submission write once the client may be gone.
const journalTimeout = 5 * time.Second

type PortalHandler struct {
	client  *upstream.Client
	journal *db.Journal
	cfg     cliparse.Config
}

func NewPortalHandler(client *upstream.Client, journal *db.Journal, cfg cliparse.Config) *PortalHandler {
	return &PortalHandler{client: client, journal: journal, cfg: cfg}
}

// SubmitRequest handles POST /api/portal/requests
//
// The backend being down does not lose the form: the submission is journaled
// and answered 202 with delivered=false.
func (h *PortalHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req models.NewTankerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.Validate(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ref := idemkey.Reference(uuid.NewString(), h.cfg.ActionKeySalt)

	delivered := true
	if err := h.client.SubmitRequest(r.Context(), req); err != nil {
		delivered = false
		slog.Warn("tanker request not delivered to backend",
			"reference", ref, "location", req.Location, "error", err)
	}

	if h.journal != nil {
		jctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), journalTimeout)
		defer cancel()
		if err := h.journal.RecordSubmission(jctx, ref, req, delivered); err != nil {
			slog.Error("failed to journal submission", "reference", ref, "error", err)
		}
	}

	slog.Info("tanker request submitted",
		"reference", ref,
		"authority", req.Authority,
		"location", req.Location,
		"delivered", delivered,
		"remote", middleware.GetClientIP(r),
	)

	code := http.StatusCreated
	if !delivered {
		code = http.StatusAccepted
	}
	middleware.JSONResponse(w, code, models.SubmitRequestResponse{
		Reference: ref,
		Delivered: delivered,
	})
}
