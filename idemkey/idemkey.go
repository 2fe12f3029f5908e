// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package idemkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
)

// ActionKey derives the Idempotency-Key sent with an approve/reject command.
// The same request id and target status always produce the same key, so a
// double press reaches the backend as one logical command.
func ActionKey(requestID int64, status, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strconv.FormatInt(requestID, 10)))
	h.Write([]byte{0})
	h.Write([]byte(status))
	sum := h.Sum(nil)
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// Reference creates a short, deterministic reference for a portal submission.
// seed is normally a fresh UUID; the result is safe to read out over the phone.
func Reference(seed, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(seed))
	sum := h.Sum(nil)

	// Take first 8 bytes for a shorter reference
	return "TR-" + base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
