// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the portal's journal database.

# Connection

Open accepts "sqlite" (modernc.org/sqlite, the default) or "postgres"
(lib/pq) and pings before returning:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

# Schema Creation

CreateSchema initializes all required tables. Safe to call multiple times -
uses IF NOT EXISTS for all tables and indexes.

# Tables

  - action_outcome: every approve/reject decision, confirmed or optimistic
  - submission: portal requests from local bodies and whether the backend accepted them

# Journal

The drought backend owns allocation requests; the portal only journals what
it did to them. An optimistic outcome (backend unreachable, local status
changed anyway) stays in Drift until a refresh from the backend reports the
same status, at which point Reconcile stamps reconciled_at.
*/
package db
