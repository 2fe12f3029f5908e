// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import "github.com/danielhkuo/tanker-portal/models"

// FallbackRequests is the fixed demo dataset used whenever the backend read
// fails or comes back empty. Each call returns a fresh slice.
func FallbackRequests() []models.AllocationRequest {
	return []models.AllocationRequest{
		{
			ID:             101,
			Authority:      "Gram Panchayat",
			Location:       "Shirur Village",
			Population:     4500,
			LitersRequired: 45000,
			PriorityScore:  0.92,
			AIVerification: models.VerificationGenuine,
			Status:         models.StatusPending,
		},
		{
			ID:             102,
			Authority:      "Nagar Parishad",
			Location:       "Bhavani Peth Center",
			Population:     12000,
			LitersRequired: 12000,
			PriorityScore:  0.85,
			AIVerification: models.VerificationGenuine,
			Status:         models.StatusPending,
		},
	}
}
