// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package idemkey derives deterministic keys for portal commands.

# Action Keys

ActionKey is an HMAC-SHA256 of the request id and target status, encoded as
unpadded URL-safe base64:

	key := idemkey.ActionKey(101, "Approved", cfg.ActionKeySalt)
	req.Header.Set("Idempotency-Key", key)

Approving the same request twice yields the same key. Approving and then
rejecting yields different keys.

# Submission References

Reference turns a random seed into a short base62 reference prefixed with
"TR-", used to acknowledge local-body tanker request submissions:

	ref := idemkey.Reference(uuid.NewString(), cfg.ActionKeySalt)
*/
package idemkey
