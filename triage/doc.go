// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package triage implements the tanker allocation triage view.

The view keeps an in-memory board of allocation requests fetched from the
drought backend. Each request is decorated with derived fields before it is
shown:

  - recommended_tankers: ceil(liters_required / 10000), one tanker per 10,000 L
  - priority_rank: "P1" when priority_score > 0.8, otherwise "P2"
  - driver: a placeholder until a driver is assigned

Aggregate counters (total_ready, pending, critical_count) are recomputed from
the full list after every change and never adjusted incrementally.

# Fetching

A fetch failure or an empty response swaps in a fixed two-record demo
dataset. The board then reports source "fallback" instead of "backend".

# Decisions

Approve and reject go through a Dispatcher. Only Pending requests with no
other action in flight are accepted. A backend failure does not block the
decision: the board still changes and the outcome is reported as
"optimistic". A confirmed approval also fires one driver notification in the
background; its result is logged and otherwise ignored.

Outcomes are journaled. On each refresh from the live backend the journal is
reconciled against the statuses the backend reports.
*/
package triage
