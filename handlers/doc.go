// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tanker portal API.

# Handler Types

Each handler is a struct holding the components it serves from:

  - TriageHandler: allocation board, approve/reject, toast, journal drift
  - PortalHandler: tanker requests filed by local bodies
  - DroughtHandler: drought map data and the alert feed
  - OverviewHandler: dashboard cards and the crisis simulation

	triageHandler := handlers.NewTriageHandler(view, toast, journal)

# Decisions

Approve and reject map triage errors onto status codes:

	unknown id                 → 404
	non-integer id             → 400
	not Pending / in flight    → 409
	otherwise                  → 200 with the ActionOutcome

A 200 does not mean the backend agreed: check outcome.kind, which is
"confirmed" or "optimistic".

# Portal Submissions

The form is validated with struct tags on models.NewTankerRequest. A
submission the backend accepted answers 201; one it did not answers 202 with
delivered=false. Both get a reference and a journal row.
*/
package handlers
