package clock

import (
	"sync"
	"time"
)

const DateLayout = "2006-01-02"

// Clock supplies the current instant and the location calendar dates are anchored in.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type realClock struct {
	loc *time.Location
}

// New returns a wall clock reporting time in loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return realClock{loc: loc}
}

func (c realClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c realClock) Location() *time.Location { return c.loc }

// Fixed is a manually driven clock used by tests and replays.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fixed) Location() *time.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now.Location()
}

func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
