package github

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapai/showcase/internal/models"
)

func countingFetch(calls *atomic.Int32) FetchFunc {
	return func(ctx context.Context, handle string) (*models.GitHubProfile, error) {
		calls.Add(1)
		return &models.GitHubProfile{Username: handle}, nil
	}
}

func TestDebouncerDeliversAfterQuietPeriod(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10*time.Millisecond, countingFetch(&calls))

	ch := d.Schedule(context.Background(), "user-1", "octocat")

	select {
	case res := <-ch:
		require.NoError(t, res.Err)
		assert.False(t, res.Superseded)
		require.NotNil(t, res.Profile)
		assert.Equal(t, "octocat", res.Profile.Username)
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerSupersedesPendingTask(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, countingFetch(&calls))

	first := d.Schedule(context.Background(), "user-1", "octoca")
	second := d.Schedule(context.Background(), "user-1", "octocat")

	select {
	case res := <-first:
		assert.True(t, res.Superseded)
		assert.Nil(t, res.Profile)
	case <-time.After(time.Second):
		t.Fatal("superseded result not delivered")
	}

	select {
	case res := <-second:
		require.NoError(t, res.Err)
		require.NotNil(t, res.Profile)
		assert.Equal(t, "octocat", res.Profile.Username)
	case <-time.After(time.Second):
		t.Fatal("final result not delivered")
	}

	// Only the surviving schedule reached the fetcher.
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerIndependentKeys(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(10*time.Millisecond, countingFetch(&calls))

	chA := d.Schedule(context.Background(), "user-a", "alice")
	chB := d.Schedule(context.Background(), "user-b", "bob")

	resA := <-chA
	resB := <-chB

	assert.False(t, resA.Superseded)
	assert.False(t, resB.Superseded)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(50*time.Millisecond, countingFetch(&calls))

	ch := d.Schedule(context.Background(), "user-1", "octocat")
	d.Cancel("user-1")

	select {
	case res := <-ch:
		assert.True(t, res.Superseded)
	case <-time.After(time.Second):
		t.Fatal("cancelled result not delivered")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
