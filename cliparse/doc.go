// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - BackendURL: Drought backend base URL (default: http://localhost:8000)
  - DatabaseURL: Journal database (default: file:tanker-portal.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - ActionKeySalt: Secret for idempotency keys and references (required)
  - UpstreamTimeout: Per-call backend timeout (default: 5s)
  - ToastTTL: Toast auto-dismiss interval (default: 5s)
  - SimulationTTL: Crisis simulation auto-stop (default: 20s)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	BACKEND_URL      → -b
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	ACTION_KEY_SALT  → -action-salt
	UPSTREAM_TIMEOUT → -timeout
	TOAST_TTL        → -toast-ttl
	SIMULATION_TTL   → -simulation-ttl

CLI flags take precedence over environment variables. main loads an
optional .env file first; variables already set in the environment win.

# Validation

ParseFlags returns an error for a missing ACTION_KEY_SALT, a port outside
1-65535, a backend URL that is not absolute http(s), an unknown database
type, or a duration that does not parse or is not positive.
*/
package cliparse
