// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package drought

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/tanker-portal/metrics"
	"github.com/danielhkuo/tanker-portal/models"
)

// Water stress classes
const (
	StatusCritical   = "Critical"
	StatusHighStress = "High Stress"
	StatusModerate   = "Moderate"
	StatusLowStress  = "Low Stress"
)

// CriticalWSI is the lowest index counted as a critical flag.
const CriticalWSI = 0.8

// Classify maps a water stress index onto its status label.
func Classify(wsi float64) string {
	switch {
	case wsi >= CriticalWSI:
		return StatusCritical
	case wsi >= 0.6:
		return StatusHighStress
	case wsi >= 0.4:
		return StatusModerate
	default:
		return StatusLowStress
	}
}

// MarkerColor is the map marker colour for a water stress index.
func MarkerColor(wsi float64) string {
	switch {
	case wsi >= CriticalWSI:
		return "#ef4444"
	case wsi >= 0.6:
		return "#f59e0b"
	case wsi >= 0.4:
		return "#eab308"
	default:
		return "#10b981"
	}
}

// FallbackVillages is the demo map shown when the backend has no data.
func FallbackVillages() []models.Village {
	vs := []models.Village{
		{ID: 1, Name: "Khandala", Lat: 18.0287, Lng: 74.0089, WSI: 0.85, Pop: 4500},
		{ID: 2, Name: "Bhavani Peth", Lat: 18.2501, Lng: 74.1500, WSI: 0.65, Pop: 3200},
		{ID: 3, Name: "Wai", Lat: 17.9500, Lng: 73.8800, WSI: 0.40, Pop: 8500},
		{ID: 4, Name: "Panchgani", Lat: 17.9221, Lng: 73.8058, WSI: 0.25, Pop: 6000},
		{ID: 5, Name: "Shirwal", Lat: 18.1333, Lng: 73.9833, WSI: 0.72, Pop: 5100},
		{ID: 6, Name: "Lonand", Lat: 18.0500, Lng: 74.2000, WSI: 0.91, Pop: 7200},
	}
	for i := range vs {
		vs[i].Status = Classify(vs[i].WSI)
		vs[i].Color = MarkerColor(vs[i].WSI)
	}
	return vs
}

// Summary is the headline drought figures for the overview.
type Summary struct {
	Source        string
	TotalAnalyzed int
	CriticalFlags int
	AverageWSI    float64
}

// Summarize recomputes the totals from r's rows.
func Summarize(r models.DroughtResponse) Summary {
	s := Summary{Source: r.Source}

	var total float64
	add := func(wsi float64) {
		s.TotalAnalyzed++
		total += wsi
		if wsi >= CriticalWSI {
			s.CriticalFlags++
		}
	}
	for _, d := range r.Districts {
		add(d.WSI)
	}
	for _, v := range r.Villages {
		add(v.WSI)
	}

	if s.TotalAnalyzed > 0 {
		s.AverageWSI = total / float64(s.TotalAnalyzed)
	}
	return s
}

// Source is the backend's drought dataset endpoint.
type Source interface {
	DroughtData(ctx context.Context) (models.DroughtData, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Load reads district data from the backend, falling back to the demo
// villages on any failure or an empty dataset. Totals are always computed
// here rather than trusted from the backend.
func (s *Service) Load(ctx context.Context) models.DroughtResponse {
	data, err := s.source.DroughtData(ctx)
	if err == nil && len(data.Data.Districts) > 0 {
		districts := make([]models.District, len(data.Data.Districts))
		copy(districts, data.Data.Districts)
		for i := range districts {
			if districts[i].Status == "" {
				districts[i].Status = Classify(districts[i].WSI)
			}
		}
		return withTotals(models.DroughtResponse{
			Source:    models.SourceBackend,
			Districts: districts,
		})
	}

	if err != nil {
		slog.Warn("drought data fetch failed, using fallback villages", "error", err)
	} else {
		slog.Warn("drought data returned no districts, using fallback villages")
	}
	metrics.FetchFallbacks.WithLabelValues("drought").Inc()

	return withTotals(models.DroughtResponse{
		Source:   models.SourceFallback,
		Villages: FallbackVillages(),
	})
}

func withTotals(r models.DroughtResponse) models.DroughtResponse {
	s := Summarize(r)
	r.TotalAnalyzed = s.TotalAnalyzed
	r.CriticalFlags = s.CriticalFlags
	return r
}
