// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scope

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testclock "k8s.io/utils/clock/testing"
)

func TestAfterFunc_Fires(t *testing.T) {
	clk := testclock.NewFakeClock(time.Now())
	s := New(context.Background(), clk)
	defer s.Close()

	var fired atomic.Int32
	_, err := s.AfterFunc(5*time.Second, func() { fired.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, 1, s.Pending())

	clk.Step(4 * time.Second)
	assert.Equal(t, int32(0), fired.Load())

	clk.Step(time.Second)
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 0, s.Pending())
}

func TestTimer_Stop(t *testing.T) {
	clk := testclock.NewFakeClock(time.Now())
	s := New(context.Background(), clk)
	defer s.Close()

	var fired atomic.Int32
	tm, err := s.AfterFunc(time.Second, func() { fired.Add(1) })
	require.NoError(t, err)

	assert.True(t, tm.Stop(), "first Stop should cancel a pending timer")
	assert.False(t, tm.Stop(), "second Stop has nothing to cancel")

	clk.Step(2 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestTimer_StopNil(t *testing.T) {
	var tm *Timer
	assert.False(t, tm.Stop())
}

func TestClose_CancelsPending(t *testing.T) {
	clk := testclock.NewFakeClock(time.Now())
	s := New(context.Background(), clk)

	var fired atomic.Int32
	for i := 0; i < 3; i++ {
		_, err := s.AfterFunc(time.Duration(i+1)*time.Second, func() { fired.Add(1) })
		require.NoError(t, err)
	}

	s.Close()
	s.Close() // idempotent

	clk.Step(10 * time.Second)
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, int32(0), fired.Load())
	assert.True(t, s.Closed())
	assert.Equal(t, 0, s.Pending())

	_, err := s.AfterFunc(time.Second, func() {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestContextCancelClosesScope(t *testing.T) {
	clk := testclock.NewFakeClock(time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	s := New(ctx, clk)

	var fired atomic.Int32
	_, err := s.AfterFunc(time.Second, func() { fired.Add(1) })
	require.NoError(t, err)

	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scope did not close after context cancellation")
	}

	clk.Step(2 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
