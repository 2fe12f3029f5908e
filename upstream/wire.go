// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import "github.com/danielhkuo/tanker-portal/models"

// Wire shapes use pointers so a missing field is distinguishable from a zero
// value; "required" then fails on absence instead of silently mapping to 0.

type wireRequest struct {
	ID             *int64   `json:"id" validate:"required,gte=0"`
	Authority      *string  `json:"authority" validate:"required"`
	Location       *string  `json:"location" validate:"required,min=1"`
	Population     *int64   `json:"population" validate:"required,gte=0"`
	LitersRequired *int64   `json:"liters_required" validate:"required,gte=0"`
	PriorityScore  *float64 `json:"priority_score" validate:"required,gte=0,lte=1"`
	AIVerification *string  `json:"ai_verification" validate:"required,oneof=genuine suspicious"`
	Status         *string  `json:"status" validate:"required,allocstatus"`
}

func (w wireRequest) toModel() models.AllocationRequest {
	return models.AllocationRequest{
		ID:             *w.ID,
		Authority:      *w.Authority,
		Location:       *w.Location,
		Population:     *w.Population,
		LitersRequired: *w.LitersRequired,
		PriorityScore:  *w.PriorityScore,
		AIVerification: *w.AIVerification,
		Status:         *w.Status,
	}
}

type wireDistrict struct {
	ID                *int64   `json:"id" validate:"required"`
	District          *string  `json:"district" validate:"required,min=1"`
	RainfallDeparture *float64 `json:"rainfall_departure" validate:"required"`
	WSI               *float64 `json:"wsi" validate:"required,gte=0,lte=1"`
	Status            *string  `json:"status" validate:"required"`
	Population        *int64   `json:"population" validate:"required,gte=0"`
}

type wireDrought struct {
	Status *string `json:"status" validate:"required"`
	Data   *struct {
		Districts []wireDistrict `json:"districts" validate:"dive"`
	} `json:"data" validate:"required"`
}

func (w wireDrought) toModel() models.DroughtData {
	var out models.DroughtData
	out.Status = *w.Status
	out.Data.Districts = make([]models.District, 0, len(w.Data.Districts))
	for _, d := range w.Data.Districts {
		out.Data.Districts = append(out.Data.Districts, models.District{
			ID:                *d.ID,
			District:          *d.District,
			RainfallDeparture: *d.RainfallDeparture,
			WSI:               *d.WSI,
			Status:            *d.Status,
			Population:        *d.Population,
		})
	}
	return out
}
