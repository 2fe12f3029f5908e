package models

import "time"

// Allocation request status constants
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusInTransit = "In Transit"
	StatusDelivered = "Delivered"
)

// AI verification flags computed by the backend
const (
	VerificationGenuine    = "genuine"
	VerificationSuspicious = "suspicious"
)

// Action outcome kinds
const (
	OutcomeConfirmed  = "confirmed"
	OutcomeOptimistic = "optimistic"
)

// Data source labels for the triage board
const (
	SourceBackend  = "backend"
	SourceFallback = "fallback"
)

// Domain types

// AllocationRequest is the raw record served by GET /api/v1/requests.
type AllocationRequest struct {
	ID             int64   `json:"id"`
	Authority      string  `json:"authority"`
	Location       string  `json:"location"`
	Population     int64   `json:"population"`
	LitersRequired int64   `json:"liters_required"`
	PriorityScore  float64 `json:"priority_score"`
	AIVerification string  `json:"ai_verification"`
	Status         string  `json:"status"`
}

// AllocationViewModel is an AllocationRequest plus the locally derived fields.
type AllocationViewModel struct {
	AllocationRequest
	RecommendedTankers int64  `json:"recommended_tankers"`
	PriorityRank       string `json:"priority_rank"`
	Driver             string `json:"driver"`
}

type AggregateStats struct {
	TotalReady    int `json:"total_ready"`
	Pending       int `json:"pending"`
	CriticalCount int `json:"critical_count"`
}

// ActionOutcome tells the caller whether a status change was confirmed by
// the backend or only applied locally.
type ActionOutcome struct {
	RequestID      int64     `json:"request_id"`
	Status         string    `json:"status"`
	Kind           string    `json:"kind"`
	Reason         string    `json:"reason,omitempty"`
	IdempotencyKey string    `json:"idempotency_key"`
	Toast          string    `json:"toast"`
	At             time.Time `json:"at"`
}

func (o ActionOutcome) Confirmed() bool { return o.Kind == OutcomeConfirmed }

// DriftEntry is an optimistic outcome the backend has not yet been seen to agree with.
type DriftEntry struct {
	ID             string    `json:"id"`
	RequestID      int64     `json:"request_id"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason"`
	IdempotencyKey string    `json:"idempotency_key"`
	RecordedAt     time.Time `json:"recorded_at"`
}

type MobileNotification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type ToastState struct {
	Visible   bool       `json:"visible"`
	Message   string     `json:"message,omitempty"`
	ShownAt   *time.Time `json:"shown_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// District is one row of the backend's drought dataset.
type District struct {
	ID                int64   `json:"id"`
	District          string  `json:"district"`
	RainfallDeparture float64 `json:"rainfall_departure"`
	WSI               float64 `json:"wsi"`
	Status            string  `json:"status"`
	Population        int64   `json:"population"`
}

type DroughtData struct {
	Status string `json:"status"`
	Data   struct {
		Districts []District `json:"districts"`
	} `json:"data"`
}

type Village struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	WSI    float64 `json:"wsi"`
	Status string  `json:"status"`
	Pop    int64   `json:"pop"`
	Color  string  `json:"color"`
}

type Alert struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Time     string `json:"time"`
	Status   string `json:"status"`
}

type OverviewCard struct {
	Name     string `json:"name"`
	Stat     string `json:"stat"`
	Trend    string `json:"trend"`
	Critical bool   `json:"critical"`
}

type SimulationState struct {
	Active    bool       `json:"active"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	StopsAt   *time.Time `json:"stops_at,omitempty"`
}

// Request types

// NewTankerRequest is the local-body portal form.
type NewTankerRequest struct {
	Authority      string `json:"authority" validate:"required,max=200"`
	Location       string `json:"location" validate:"required,max=200"`
	Population     int64  `json:"population" validate:"gte=1"`
	LitersRequired int64  `json:"liters_required" validate:"gte=1"`
	Reason         string `json:"reason" validate:"max=2000"`
	ContactInfo    string `json:"contact_info" validate:"required,max=200"`
}

// Response types

type BoardResponse struct {
	Requests    []AllocationViewModel `json:"requests"`
	Stats       AggregateStats        `json:"stats"`
	Source      string                `json:"source"`
	RefreshedAt time.Time             `json:"refreshed_at"`
}

type SubmitRequestResponse struct {
	Reference string `json:"reference"`
	Delivered bool   `json:"delivered"`
}

type DroughtResponse struct {
	Source        string     `json:"source"`
	Districts     []District `json:"districts,omitempty"`
	Villages      []Village  `json:"villages,omitempty"`
	TotalAnalyzed int        `json:"total_analyzed"`
	CriticalFlags int        `json:"critical_flags"`
}

type OverviewResponse struct {
	Cards      []OverviewCard  `json:"cards"`
	Triage     AggregateStats  `json:"triage"`
	Simulation SimulationState `json:"simulation"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
