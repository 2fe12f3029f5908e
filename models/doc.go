// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the portal API.

# Domain Types

Records exchanged with the upstream drought backend:

  - AllocationRequest: raw tanker allocation request
  - District: one row of the district drought dataset
  - DroughtData: envelope of GET /drought/data
  - MobileNotification: driver app push body (title, message)

Local view types:

  - AllocationViewModel: AllocationRequest plus recommended_tankers, priority_rank, driver
  - AggregateStats: total_ready, pending, critical_count
  - ActionOutcome: confirmed or optimistic result of an approve/reject
  - DriftEntry: optimistic outcome awaiting reconciliation
  - ToastState, SimulationState: ephemeral UI state

# Request Types

  - NewTankerRequest: authority, location, population, liters_required, reason, contact_info

# Response Types

  - BoardResponse: requests, stats, source, refreshed_at
  - SubmitRequestResponse: reference, delivered
  - DroughtResponse: districts or fallback villages plus counters
  - OverviewResponse: cards, triage stats, simulation
  - ErrorResponse: error, message

# Constants

Allocation status values:

	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusInTransit = "In Transit"
	StatusDelivered = "Delivered"

Outcome kinds:

	OutcomeConfirmed  = "confirmed"
	OutcomeOptimistic = "optimistic"

# Validation

Validate wraps go-playground/validator with the custom "allocstatus" tag:

	if err := models.Validate(req); err != nil {
		// reject
	}
*/
package models
