// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import (
	"sort"

	"github.com/danielhkuo/tanker-portal/models"
)

const (
	// TankerCapacityLiters is the volume one tanker delivers.
	TankerCapacityLiters = 10000

	// CriticalScore is the exclusive lower bound for P1 and for the
	// critical counter.
	CriticalScore = 0.8

	RankP1 = "P1"
	RankP2 = "P2"

	DriverPending = "Driver assigned on approval"
)

// RecommendedTankers is ceil(liters / 10000) in integer arithmetic.
// Zero liters needs zero tankers.
func RecommendedTankers(liters int64) int64 {
	if liters <= 0 {
		return 0
	}
	return (liters + TankerCapacityLiters - 1) / TankerCapacityLiters
}

// PriorityRank buckets a priority score. Exactly 0.8 is P2.
func PriorityRank(score float64) string {
	if IsCritical(score) {
		return RankP1
	}
	return RankP2
}

func IsCritical(score float64) bool {
	return score > CriticalScore
}

func ToViewModel(r models.AllocationRequest) models.AllocationViewModel {
	return models.AllocationViewModel{
		AllocationRequest:  r,
		RecommendedTankers: RecommendedTankers(r.LitersRequired),
		PriorityRank:       PriorityRank(r.PriorityScore),
		Driver:             DriverPending,
	}
}

// ToViewModels maps element-wise. Backend order is kept as is; the rank is
// a label, not a sort key.
func ToViewModels(reqs []models.AllocationRequest) []models.AllocationViewModel {
	out := make([]models.AllocationViewModel, len(reqs))
	for i, r := range reqs {
		out[i] = ToViewModel(r)
	}
	return out
}

// SortByPriority returns a copy ordered by priority score, highest first,
// with ties broken by ascending id. The input is not modified.
func SortByPriority(list []models.AllocationViewModel) []models.AllocationViewModel {
	out := make([]models.AllocationViewModel, len(list))
	copy(out, list)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		return a.ID < b.ID
	})
	return out
}
