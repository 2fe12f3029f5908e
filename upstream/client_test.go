// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tanker-portal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second)
}

const validRequests = `[
	{"id": 7, "authority": "Gram Panchayat", "location": "Wai", "population": 8500,
	 "liters_required": 25000, "priority_score": 0.81, "ai_verification": "genuine", "status": "Pending"},
	{"id": 8, "authority": "Nagar Parishad", "location": "Lonand", "population": 7200,
	 "liters_required": 0, "priority_score": 0, "ai_verification": "suspicious", "status": "In Transit"}
]`

func TestListRequests(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathRequests, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, validRequests)
	})

	reqs, err := client.ListRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	assert.Equal(t, int64(7), reqs[0].ID)
	assert.Equal(t, "Wai", reqs[0].Location)
	assert.Equal(t, int64(25000), reqs[0].LitersRequired)
	assert.InDelta(t, 0.81, reqs[0].PriorityScore, 1e-9)

	// Explicit zeros are valid values, not missing fields
	assert.Equal(t, int64(0), reqs[1].LitersRequired)
	assert.Equal(t, models.StatusInTransit, reqs[1].Status)
}

func TestListRequests_Errors(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		body   string
		target any
		isErr  error
	}{
		{"empty array", http.StatusOK, `[]`, nil, ErrEmpty},
		{"non-JSON body", http.StatusOK, `<html>oops</html>`, new(*SchemaError), nil},
		{"object instead of array", http.StatusOK, `{"detail": "x"}`, new(*SchemaError), nil},
		{"missing liters", http.StatusOK,
			`[{"id": 1, "authority": "a", "location": "b", "population": 1, "priority_score": 0.5, "ai_verification": "genuine", "status": "Pending"}]`,
			new(*SchemaError), nil},
		{"score out of range", http.StatusOK,
			`[{"id": 1, "authority": "a", "location": "b", "population": 1, "liters_required": 1, "priority_score": 1.5, "ai_verification": "genuine", "status": "Pending"}]`,
			new(*SchemaError), nil},
		{"unknown status", http.StatusOK,
			`[{"id": 1, "authority": "a", "location": "b", "population": 1, "liters_required": 1, "priority_score": 0.5, "ai_verification": "genuine", "status": "Lost"}]`,
			new(*SchemaError), nil},
		{"unknown verification", http.StatusOK,
			`[{"id": 1, "authority": "a", "location": "b", "population": 1, "liters_required": 1, "priority_score": 0.5, "ai_verification": "maybe", "status": "Pending"}]`,
			new(*SchemaError), nil},
		{"server error", http.StatusInternalServerError, `boom`, new(*StatusError), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				io.WriteString(w, tt.body)
			})

			reqs, err := client.ListRequests(context.Background())
			require.Error(t, err)
			assert.Nil(t, reqs)

			if tt.isErr != nil {
				assert.ErrorIs(t, err, tt.isErr)
			}
			if tt.target != nil {
				assert.ErrorAs(t, err, tt.target)
			}
		})
	}
}

func TestListRequests_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second)
	_, err := client.ListRequests(context.Background())
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se), "transport failure must not look like a status error")
}

func TestApplyAction(t *testing.T) {
	var gotPath, gotStatus, gotKey, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		gotKey = r.Header.Get("Idempotency-Key")
		w.WriteHeader(http.StatusOK)
	})

	err := client.ApplyAction(context.Background(), 101, models.StatusInTransit, "key-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/requests/101/action", gotPath)
	assert.Equal(t, "In Transit", gotStatus)
	assert.Equal(t, "key-1", gotKey)
}

func TestApplyAction_Non2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.ApplyAction(context.Background(), 5, models.StatusApproved, "")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestSendMobileNotification(t *testing.T) {
	var got models.MobileNotification
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathNotifications, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		// Body is ignored by the client
		io.WriteString(w, `not json at all`)
	})

	err := client.SendMobileNotification(context.Background(), models.MobileNotification{
		Title:   "New Dispatch!",
		Message: "You have been assigned to Wai. Start immediately!",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Dispatch!", got.Title)
	assert.Contains(t, got.Message, "Wai")
}

func TestSubmitRequest(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSubmit, r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.SubmitRequest(context.Background(), models.NewTankerRequest{
		Authority:      "Gram Panchayat",
		Location:       "Khandala",
		Population:     4500,
		LitersRequired: 30000,
		Reason:         "Borewell dry",
		ContactInfo:    "Official Nodal Officer",
	})
	require.NoError(t, err)

	for _, key := range []string{"authority", "location", "population", "liters_required", "reason", "contact_info"} {
		assert.Contains(t, got, key)
	}
}

func TestDroughtData(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, PathDroughtData, r.URL.Path)
			io.WriteString(w, `{"status": "success", "data": {"districts": [
				{"id": 1, "district": "Satara", "rainfall_departure": -60, "wsi": 0.66, "status": "High Stress", "population": 11000}
			], "total_analyzed": 1, "critical_flags": 0}}`)
		})

		data, err := client.DroughtData(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "success", data.Status)
		require.Len(t, data.Data.Districts, 1)
		assert.Equal(t, "Satara", data.Data.Districts[0].District)
	})

	t.Run("missing data envelope", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"status": "success"}`)
		})

		_, err := client.DroughtData(context.Background())
		var se *SchemaError
		assert.ErrorAs(t, err, &se)
	})

	t.Run("no districts", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"status": "success", "data": {"districts": []}}`)
		})

		_, err := client.DroughtData(context.Background())
		assert.ErrorIs(t, err, ErrEmpty)
	})
}
