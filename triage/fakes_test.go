// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package triage

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/tanker-portal/models"
)

type actionCall struct {
	ID     int64
	Status string
	Key    string
}

// fakeBackend is an in-process stand-in for the drought backend.
type fakeBackend struct {
	mu sync.Mutex

	requests  []models.AllocationRequest
	listErr   error
	actionErr error
	notifyErr error

	// when set, ApplyAction for gateID blocks until it is closed
	actionGate chan struct{}
	gateID     int64

	// when set, SendMobileNotification waits for ctx to end
	notifyHang     bool
	notifyDeadline time.Time

	actions       []actionCall
	notifications []models.MobileNotification
}

func (f *fakeBackend) ListRequests(ctx context.Context) ([]models.AllocationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.AllocationRequest, len(f.requests))
	copy(out, f.requests)
	return out, nil
}

func (f *fakeBackend) ApplyAction(ctx context.Context, id int64, status, key string) error {
	f.mu.Lock()
	var gate chan struct{}
	if id == f.gateID {
		gate = f.actionGate
	}
	f.actions = append(f.actions, actionCall{ID: id, Status: status, Key: key})
	err := f.actionErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeBackend) SendMobileNotification(ctx context.Context, n models.MobileNotification) error {
	f.mu.Lock()
	f.notifications = append(f.notifications, n)
	f.notifyDeadline, _ = ctx.Deadline()
	hang, err := f.notifyHang, f.notifyErr
	f.mu.Unlock()

	if hang {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (f *fakeBackend) actionCalls() []actionCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]actionCall(nil), f.actions...)
}

func (f *fakeBackend) notificationCalls() []models.MobileNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MobileNotification(nil), f.notifications...)
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *fakeNotifier) shown() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fakeJournal struct {
	mu         sync.Mutex
	outcomes   []models.ActionOutcome
	reconciled []map[int64]string
}

func (j *fakeJournal) Record(ctx context.Context, o models.ActionOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.outcomes = append(j.outcomes, o)
	return nil
}

func (j *fakeJournal) Reconcile(ctx context.Context, statuses map[int64]string) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.reconciled = append(j.reconciled, statuses)
	return 0, nil
}

func sampleRequests() []models.AllocationRequest {
	return []models.AllocationRequest{
		{ID: 1, Authority: "Gram Panchayat", Location: "Khandala", Population: 4500,
			LitersRequired: 30000, PriorityScore: 0.91, AIVerification: models.VerificationGenuine, Status: models.StatusPending},
		{ID: 2, Authority: "Nagar Parishad", Location: "Wai", Population: 8500,
			LitersRequired: 10000, PriorityScore: 0.8, AIVerification: models.VerificationSuspicious, Status: models.StatusPending},
		{ID: 3, Authority: "Gram Panchayat", Location: "Lonand", Population: 7200,
			LitersRequired: 10001, PriorityScore: 0.4, AIVerification: models.VerificationGenuine, Status: models.StatusDelivered},
	}
}
