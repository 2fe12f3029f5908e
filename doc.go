// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tanker portal server.

The tanker portal is the district administration's view onto the drought
backend: it triages water tanker allocation requests, dispatches drivers on
approval, and serves the drought map, alert feed and dashboard overview.

# Starting the Server

The server reads CLI flags, environment variables and an optional .env file:

	ACTION_KEY_SALT=... BACKEND_URL=http://localhost:8000 go run .

Or with flags:

	go run . -p 3318 -b http://localhost:8000 -action-salt dev-salt

# Configuration

Required settings:

  - ACTION_KEY_SALT (-action-salt): Secret for idempotency keys

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - BACKEND_URL (-b): Drought backend (default: http://localhost:8000)
  - DATABASE_URL (-d), DATABASE_TYPE (-t): Journal database (default: sqlite file)
  - UPSTREAM_TIMEOUT, TOAST_TTL, SIMULATION_TTL: Durations

# Architecture

  - triage: Fetch, derive, aggregate, approve/reject
  - upstream: Drought backend HTTP client
  - toast: Auto-dismissing action feedback
  - scope: Timers bound to the server's lifetime
  - drought, overview: Map, alerts, dashboard cards, crisis simulation
  - db: Action and submission journal
  - idemkey: Idempotency keys and submission references
  - handlers, router, middleware: HTTP surface
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
