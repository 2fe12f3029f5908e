// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the tanker portal API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints; NewHandler
adds CORS on top:

	server := http.Server{Handler: router.NewHandler(deps)}

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Allocation triage:

	GET  /api/triage/requests[?sort=priority] - Board with derived fields and stats
	GET  /api/triage/stats                    - total_ready, pending, critical_count
	POST /api/triage/refresh                  - Re-fetch from the backend
	POST /api/triage/requests/{id}/approve    - Approve (notifies the driver)
	POST /api/triage/requests/{id}/reject     - Reject
	GET  /api/triage/toast                    - Current toast, if any
	GET  /api/triage/drift                    - Optimistic outcomes not yet reconciled

Portal, map and alerts:

	POST /api/portal/requests  - Local body tanker request
	GET  /api/drought          - District or demo village stress data
	GET  /api/alerts           - Alert feed, ?category=all|drought|warning

Dashboard:

	GET    /api/overview            - Headline cards
	GET    /api/overview/simulation - Crisis simulation state
	POST   /api/overview/simulation - Start (or restart) the simulation
	DELETE /api/overview/simulation - Stop it

Every /api route is wrapped in middleware.WithLogging.
*/
package router
