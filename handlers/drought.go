// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/tanker-portal/drought"
	"github.com/danielhkuo/tanker-portal/middleware"
)

type DroughtHandler struct {
	service *drought.Service
}

func NewDroughtHandler(service *drought.Service) *DroughtHandler {
	return &DroughtHandler{service: service}
}

// GetDrought handles GET /api/drought
func (h *DroughtHandler) GetDrought(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.service.Load(r.Context()))
}

// ListAlerts handles GET /api/alerts?category=all|drought|warning
func (h *DroughtHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !drought.ValidCategory(category) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category must be all, drought or warning")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, drought.FilterAlerts(drought.Alerts(), category))
}
