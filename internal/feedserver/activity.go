package feedserver

import (
	"context"
	"sync"
	"time"

	"github.com/racingicemen/photogroove/internal/filters"
)

// activityFeed holds the current activity string and lets long-poll
// handlers wait for the next one. Publish closes the changed channel to
// wake every waiter at once.
type activityFeed struct {
	mu      sync.Mutex
	seq     uint64
	text    string
	changed chan struct{}
}

func newActivityFeed(initial string) *activityFeed {
	return &activityFeed{
		seq:     1,
		text:    initial,
		changed: make(chan struct{}),
	}
}

// Publish replaces the activity string and wakes waiters.
func (f *activityFeed) Publish(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.text = text
	close(f.changed)
	f.changed = make(chan struct{})
}

// Current returns the latest message.
func (f *activityFeed) Current() filters.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return filters.Activity{Seq: f.seq, Text: f.text}
}

// Wait blocks until a message newer than since exists, the wait budget
// expires, or ctx is cancelled; it always answers with the current
// message at that point.
func (f *activityFeed) Wait(ctx context.Context, since uint64, budget time.Duration) filters.Activity {
	f.mu.Lock()
	if f.seq > since {
		act := filters.Activity{Seq: f.seq, Text: f.text}
		f.mu.Unlock()
		return act
	}
	changed := f.changed
	f.mu.Unlock()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case <-changed:
	case <-timer.C:
	case <-ctx.Done():
	}
	return f.Current()
}
