// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package upstream is the HTTP client for the drought backend.

The backend is an external collaborator; this package only knows its
contracts:

	GET  /api/v1/requests                          → ListRequests
	POST /api/v1/requests/{id}/action?status={s}   → ApplyAction
	POST /api/v1/mobile/notifications              → SendMobileNotification
	GET  /drought/data                             → DroughtData
	POST /requests                                 → SubmitRequest

# Errors

Every call fails with one of:

  - a wrapped transport error (connection refused, timeout, ...)
  - *StatusError for a non-2xx answer
  - *SchemaError for a body that does not decode or fails validation
  - ErrEmpty for a collection with no records

Bodies are decoded into pointer-typed wire structs and validated with
go-playground/validator, so a missing field fails the read instead of
mapping to a zero value.

The client never retries. Degradation policy (fallback datasets, optimistic
updates) belongs to the callers in package triage and handlers.
*/
package upstream
