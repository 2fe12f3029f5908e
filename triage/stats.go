// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import "github.com/danielhkuo/tanker-portal/models"

// Aggregate recomputes the summary counters from scratch in one pass.
func Aggregate(list []models.AllocationViewModel) models.AggregateStats {
	stats := models.AggregateStats{TotalReady: len(list)}
	for _, a := range list {
		if a.Status == models.StatusPending {
			stats.Pending++
		}
		if IsCritical(a.PriorityScore) {
			stats.CriticalCount++
		}
	}
	return stats
}
