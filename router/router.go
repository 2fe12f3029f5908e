// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/tanker-portal/cliparse"
	"github.com/danielhkuo/tanker-portal/db"
	"github.com/danielhkuo/tanker-portal/drought"
	"github.com/danielhkuo/tanker-portal/handlers"
	"github.com/danielhkuo/tanker-portal/middleware"
	"github.com/danielhkuo/tanker-portal/overview"
	"github.com/danielhkuo/tanker-portal/toast"
	"github.com/danielhkuo/tanker-portal/triage"
	"github.com/danielhkuo/tanker-portal/upstream"
)

// Deps is everything the routes are served from.
type Deps struct {
	Config   cliparse.Config
	View     *triage.View
	Toast    *toast.Toast
	Journal  *db.Journal
	Client   *upstream.Client
	Drought  *drought.Service
	Overview *overview.Service
}

// NewHandler is the router with CORS applied, ready for http.Server.
func NewHandler(deps Deps) http.Handler {
	return middleware.CORS(NewRouter(deps))
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	triageHandler := handlers.NewTriageHandler(deps.View, deps.Toast, deps.Journal)
	portalHandler := handlers.NewPortalHandler(deps.Client, deps.Journal, deps.Config)
	droughtHandler := handlers.NewDroughtHandler(deps.Drought)
	overviewHandler := handlers.NewOverviewHandler(deps.Overview)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Allocation triage
	mux.HandleFunc("GET /api/triage/requests", middleware.WithLogging(triageHandler.ListRequests))
	mux.HandleFunc("GET /api/triage/stats", middleware.WithLogging(triageHandler.GetStats))
	mux.HandleFunc("POST /api/triage/refresh", middleware.WithLogging(triageHandler.Refresh))
	mux.HandleFunc("POST /api/triage/requests/{id}/approve", middleware.WithLogging(triageHandler.Approve))
	mux.HandleFunc("POST /api/triage/requests/{id}/reject", middleware.WithLogging(triageHandler.Reject))
	mux.HandleFunc("GET /api/triage/toast", middleware.WithLogging(triageHandler.GetToast))
	mux.HandleFunc("GET /api/triage/drift", middleware.WithLogging(triageHandler.GetDrift))

	// Local body portal
	mux.HandleFunc("POST /api/portal/requests", middleware.WithLogging(portalHandler.SubmitRequest))

	// Drought map and alerts
	mux.HandleFunc("GET /api/drought", middleware.WithLogging(droughtHandler.GetDrought))
	mux.HandleFunc("GET /api/alerts", middleware.WithLogging(droughtHandler.ListAlerts))

	// Dashboard overview
	mux.HandleFunc("GET /api/overview", middleware.WithLogging(overviewHandler.GetOverview))
	mux.HandleFunc("GET /api/overview/simulation", middleware.WithLogging(overviewHandler.GetSimulation))
	mux.HandleFunc("POST /api/overview/simulation", middleware.WithLogging(overviewHandler.StartSimulation))
	mux.HandleFunc("DELETE /api/overview/simulation", middleware.WithLogging(overviewHandler.StopSimulation))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tanker-portal API v1"))
	})

	return mux
}
