package github

import (
	"context"
	"sync"
	"time"

	"github.com/snapai/showcase/internal/models"
)

// DefaultQuietPeriod is how long an input must stay stable before a
// scheduled profile fetch actually fires.
const DefaultQuietPeriod = 500 * time.Millisecond

// FetchFunc performs the underlying profile lookup once the quiet period
// elapses.
type FetchFunc func(ctx context.Context, handle string) (*models.GitHubProfile, error)

// Result is the outcome of a scheduled fetch. Exactly one Result is delivered
// per Schedule call: either the fetch outcome or Superseded when a newer
// schedule for the same key replaced it before firing.
type Result struct {
	Profile    *models.GitHubProfile
	Err        error
	Superseded bool
}

type task struct {
	timer *time.Timer
	ch    chan Result
}

// Debouncer coalesces rapid schedule calls for the same key into a single
// fetch after a quiet period. A fetch that already started when a newer
// schedule arrives is not cancelled; it completes and delivers to its own
// caller, which may discard the result.
type Debouncer struct {
	mu      sync.Mutex
	quiet   time.Duration
	fetch   FetchFunc
	pending map[string]*task
}

func NewDebouncer(quiet time.Duration, fetch FetchFunc) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{
		quiet:   quiet,
		fetch:   fetch,
		pending: make(map[string]*task),
	}
}

// Schedule queues a fetch for handle after the quiet period. Scheduling again
// under the same key before the period elapses supersedes the previous task;
// its channel receives a Result with Superseded set.
func (d *Debouncer) Schedule(ctx context.Context, key, handle string) <-chan Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		// Stop returns false when the timer already fired, in which case the
		// in-flight fetch delivers to its own channel.
		if prev.timer.Stop() {
			prev.ch <- Result{Superseded: true}
		}
	}

	t := &task{ch: make(chan Result, 1)}
	t.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		if d.pending[key] == t {
			delete(d.pending, key)
		}
		d.mu.Unlock()

		profile, err := d.fetch(ctx, handle)
		t.ch <- Result{Profile: profile, Err: err}
	})
	d.pending[key] = t

	return t.ch
}

// Cancel drops any pending task for key without fetching.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		if prev.timer.Stop() {
			prev.ch <- Result{Superseded: true}
		}
		delete(d.pending, key)
	}
}
