// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/tanker-portal/metrics"
	"github.com/danielhkuo/tanker-portal/models"
)

// RequestSource is the read side of the drought backend.
type RequestSource interface {
	ListRequests(ctx context.Context) ([]models.AllocationRequest, error)
}

// Fetcher reads allocation requests and degrades to the demo dataset on any
// failure. It never retries.
type Fetcher struct {
	source RequestSource
}

func NewFetcher(source RequestSource) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch returns the requests and the label of where they came from.
func (f *Fetcher) Fetch(ctx context.Context) ([]models.AllocationRequest, string) {
	reqs, err := f.source.ListRequests(ctx)
	if err == nil && len(reqs) > 0 {
		return reqs, models.SourceBackend
	}

	if err != nil {
		slog.Warn("request fetch failed, using fallback dataset", "error", err)
	} else {
		slog.Warn("request fetch returned no records, using fallback dataset")
	}
	metrics.FetchFallbacks.WithLabelValues("requests").Inc()
	return FallbackRequests(), models.SourceFallback
}
