package shift

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeMorning Type = "morning"
	TypeEvening Type = "evening"
	TypeOffice  Type = "office"
)

var AllTypes = []Type{TypeMorning, TypeEvening, TypeOffice}

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeMorning, TypeEvening, TypeOffice:
		return Type(s), nil
	}
	return "", ErrUnknownShiftType
}

// Assignable reports whether supervisors place staff on this shift by hand.
// Office shifts are generated.
func (t Type) Assignable() bool {
	return t == TypeMorning || t == TypeEvening
}

// TimeOfDay is a wall-clock time. Hour 24 is midnight of the next day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// On places the wall-clock time on the given calendar day in loc. The
// instant follows the local clock, so daylight-saving days keep 06:00 at
// 06:00.
func (t TimeOfDay) On(y int, m time.Month, day int, loc *time.Location) time.Time {
	return time.Date(y, m, day, t.Hour, t.Minute, 0, 0, loc)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Definition is a named shift window on the wall clock of the shift date.
type Definition struct {
	Type           Type
	Start          TimeOfDay
	End            TimeOfDay
	EarlyExitGrace time.Duration
}

// Policy holds the margins shared by every shift.
type Policy struct {
	LateMargin         time.Duration
	EarlyArrivalMargin time.Duration
	ClockOutGrace      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		LateMargin:         15 * time.Minute,
		EarlyArrivalMargin: 30 * time.Minute,
		ClockOutGrace:      60 * time.Minute,
	}
}

// DefaultDefinitions returns the morning, evening and office windows.
// The evening shift ends on the next calendar day's midnight, so its
// clock-out cap lands at 01:00.
func DefaultDefinitions(earlyExitGrace time.Duration) []Definition {
	return []Definition{
		{Type: TypeMorning, Start: TimeOfDay{Hour: 6}, End: TimeOfDay{Hour: 15}, EarlyExitGrace: earlyExitGrace},
		{Type: TypeEvening, Start: TimeOfDay{Hour: 15}, End: TimeOfDay{Hour: 24}},
		{Type: TypeOffice, Start: TimeOfDay{Hour: 9}, End: TimeOfDay{Hour: 17}, EarlyExitGrace: earlyExitGrace},
	}
}
