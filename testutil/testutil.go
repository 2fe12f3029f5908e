// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"k8s.io/utils/clock"

	"github.com/danielhkuo/tanker-portal/cliparse"
	"github.com/danielhkuo/tanker-portal/db"
	"github.com/danielhkuo/tanker-portal/drought"
	"github.com/danielhkuo/tanker-portal/models"
	"github.com/danielhkuo/tanker-portal/overview"
	"github.com/danielhkuo/tanker-portal/scope"
	"github.com/danielhkuo/tanker-portal/toast"
	"github.com/danielhkuo/tanker-portal/triage"
	"github.com/danielhkuo/tanker-portal/upstream"
)

// SetupTestDB creates a fresh in-memory journal database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		BackendURL:      "http://localhost:8000",
		DatabaseURL:     ":memory:",
		DatabaseType:    db.TypeSQLite,
		ActionKeySalt:   "test-action-salt",
		UpstreamTimeout: 2 * time.Second,
		ToastTTL:        5 * time.Second,
		SimulationTTL:   20 * time.Second,
	}
}

// SampleRequests is a small backend dataset: two pending, one delivered
func SampleRequests() []models.AllocationRequest {
	return []models.AllocationRequest{
		{ID: 1, Authority: "Gram Panchayat", Location: "Khandala", Population: 4500,
			LitersRequired: 30000, PriorityScore: 0.91, AIVerification: models.VerificationGenuine, Status: models.StatusPending},
		{ID: 2, Authority: "Nagar Parishad", Location: "Wai", Population: 8500,
			LitersRequired: 10000, PriorityScore: 0.62, AIVerification: models.VerificationSuspicious, Status: models.StatusPending},
		{ID: 3, Authority: "Gram Panchayat", Location: "Lonand", Population: 7200,
			LitersRequired: 10001, PriorityScore: 0.4, AIVerification: models.VerificationGenuine, Status: models.StatusDelivered},
	}
}

// ActionCall is one POST .../{id}/action seen by the fake backend
type ActionCall struct {
	ID             int64
	Status         string
	IdempotencyKey string
}

// FakeBackend plays the drought backend. Fail* fields make the matching
// endpoint answer 500.
type FakeBackend struct {
	Server *httptest.Server

	mu            sync.Mutex
	requests      []models.AllocationRequest
	districts     []models.District
	FailList      bool
	FailActions   bool
	FailNotify    bool
	FailSubmit    bool
	FailDrought   bool
	actions       []ActionCall
	notifications []models.MobileNotification
	submissions   []models.NewTankerRequest
}

// NewFakeBackend starts a fake backend serving SampleRequests
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{requests: SampleRequests()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+upstream.PathRequests, f.listRequests)
	mux.HandleFunc("POST "+upstream.PathRequests+"/{id}/action", f.applyAction)
	mux.HandleFunc("POST "+upstream.PathNotifications, f.notify)
	mux.HandleFunc("POST "+upstream.PathSubmit, f.submit)
	mux.HandleFunc("GET "+upstream.PathDroughtData, f.droughtData)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakeBackend) URL() string { return f.Server.URL }

// SetRequests replaces the served request list
func (f *FakeBackend) SetRequests(reqs []models.AllocationRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = reqs
}

// SetDistricts replaces the served drought districts
func (f *FakeBackend) SetDistricts(ds []models.District) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.districts = ds
}

// SetFailures toggles failure modes under the lock
func (f *FakeBackend) SetFailures(fn func(f *FakeBackend)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *FakeBackend) Actions() []ActionCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ActionCall(nil), f.actions...)
}

func (f *FakeBackend) Notifications() []models.MobileNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MobileNotification(nil), f.notifications...)
}

func (f *FakeBackend) Submissions() []models.NewTankerRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.NewTankerRequest(nil), f.submissions...)
}

func (f *FakeBackend) listRequests(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	fail, reqs := f.FailList, f.requests
	f.mu.Unlock()

	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if reqs == nil {
		reqs = []models.AllocationRequest{}
	}
	writeJSON(w, reqs)
}

func (f *FakeBackend) applyAction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	status := r.URL.Query().Get("status")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, ActionCall{ID: id, Status: status, IdempotencyKey: r.Header.Get("Idempotency-Key")})
	if f.FailActions {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].Status = status
		}
	}
	writeJSON(w, map[string]string{"message": "Status updated"})
}

func (f *FakeBackend) notify(w http.ResponseWriter, r *http.Request) {
	var n models.MobileNotification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	if f.FailNotify {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "sent"})
}

func (f *FakeBackend) submit(w http.ResponseWriter, r *http.Request) {
	var req models.NewTankerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailSubmit {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	f.submissions = append(f.submissions, req)
	writeJSON(w, map[string]string{"status": "received"})
}

func (f *FakeBackend) droughtData(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	fail, ds := f.FailDrought, f.districts
	f.mu.Unlock()

	if fail {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ds == nil {
		ds = []models.District{}
	}
	writeJSON(w, map[string]any{
		"status": "success",
		"data": map[string]any{
			"districts":      ds,
			"total_analyzed": len(ds),
		},
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Stack is a fully wired portal against a FakeBackend, on the real clock
type Stack struct {
	Config     cliparse.Config
	Backend    *FakeBackend
	DB         *sql.DB
	Journal    *db.Journal
	Client     *upstream.Client
	Scope      *scope.Scope
	Toast      *toast.Toast
	View       *triage.View
	Drought    *drought.Service
	Simulation *overview.Simulation
	Overview   *overview.Service
}

// NewStack wires every component the router needs. Nothing is fetched yet.
func NewStack(t *testing.T) *Stack {
	t.Helper()

	cfg := GetTestConfig()
	backend := NewFakeBackend(t)
	cfg.BackendURL = backend.URL()

	conn := SetupTestDB(t)
	journal := db.NewJournal(conn, clock.RealClock{})
	client := upstream.NewClient(cfg.BackendURL, cfg.UpstreamTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	s := scope.New(ctx, clock.RealClock{})

	tst := toast.New(s, cfg.ToastTTL)
	view := triage.NewView(triage.ViewConfig{
		Backend:       client,
		Notifier:      tst,
		Journal:       journal,
		KeySalt:       cfg.ActionKeySalt,
		NotifyTimeout: cfg.UpstreamTimeout,
	})
	droughtSvc := drought.NewService(client)
	sim := overview.NewSimulation(s, cfg.SimulationTTL)

	t.Cleanup(func() {
		view.Close()
		cancel()
	})

	return &Stack{
		Config:     cfg,
		Backend:    backend,
		DB:         conn,
		Journal:    journal,
		Client:     client,
		Scope:      s,
		Toast:      tst,
		View:       view,
		Drought:    droughtSvc,
		Simulation: sim,
		Overview:   overview.NewService(view, droughtSvc, sim),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
