package shift

import (
	"math"
	"time"
)

// Catalog resolves shift types into concrete windows on a given date.
type Catalog struct {
	defs   map[Type]Definition
	policy Policy
	loc    *time.Location
}

func NewCatalog(policy Policy, loc *time.Location, defs ...Definition) *Catalog {
	if loc == nil {
		loc = time.UTC
	}
	if len(defs) == 0 {
		defs = DefaultDefinitions(15 * time.Minute)
	}
	c := &Catalog{
		defs:   make(map[Type]Definition, len(defs)),
		policy: policy,
		loc:    loc,
	}
	for _, d := range defs {
		c.defs[d.Type] = d
	}
	return c
}

func (c *Catalog) Location() *time.Location { return c.loc }

func (c *Catalog) Definition(t Type) (Definition, error) {
	d, ok := c.defs[t]
	if !ok {
		return Definition{}, ErrUnknownShiftType
	}
	return d, nil
}

// Window anchors shift t on the calendar day of date. Only the year, month
// and day of date are used, so UTC-midnight dates from storage are safe.
func (c *Catalog) Window(t Type, date time.Time) (Window, error) {
	d, err := c.Definition(t)
	if err != nil {
		return Window{}, err
	}
	y, m, day := date.Date()
	return Window{
		Type:           t,
		Date:           time.Date(y, m, day, 0, 0, 0, 0, c.loc),
		Start:          d.Start.On(y, m, day, c.loc),
		End:            d.End.On(y, m, day, c.loc),
		earlyExitGrace: d.EarlyExitGrace,
		policy:         c.policy,
	}, nil
}

// Window is a shift pinned to absolute instants.
type Window struct {
	Type  Type
	Date  time.Time
	Start time.Time
	End   time.Time

	earlyExitGrace time.Duration
	policy         Policy
}

// OpensAt is the earliest accepted clock-in.
func (w Window) OpensAt() time.Time {
	return w.Start.Add(-w.policy.EarlyArrivalMargin)
}

// ClosesAt is the latest accepted clock-out.
func (w Window) ClosesAt() time.Time {
	return w.End.Add(w.policy.ClockOutGrace)
}

func (w Window) IsTooEarly(now time.Time) bool {
	return now.Before(w.OpensAt())
}

func (w Window) IsClosed(now time.Time) bool {
	return now.After(w.ClosesAt())
}

// Lateness reports whether now is past the late margin and, if so, the
// whole minutes elapsed since the scheduled start.
func (w Window) Lateness(now time.Time) (bool, int) {
	if !now.After(w.Start.Add(w.policy.LateMargin)) {
		return false, 0
	}
	return true, wholeMinutes(now.Sub(w.Start))
}

// EarlyDeparture reports whether leaving at now is an early exit and, if
// so, the whole minutes short of the scheduled end.
func (w Window) EarlyDeparture(now time.Time) (bool, int) {
	if !now.Before(w.End.Add(-w.earlyExitGrace)) {
		return false, 0
	}
	return true, wholeMinutes(w.End.Sub(now))
}

func wholeMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes()))
}
