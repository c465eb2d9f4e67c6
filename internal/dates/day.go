// Package dates holds the two day representations used by the timeline.
//
// LocalDay is the calendar day as the user sees it on the board: grid
// positions, snapping and the "today" marker all work in LocalDay.
// StorageDay is the persisted form, pinned to 12:00 UTC so a save/reload
// cycle through any timezone lands on the same calendar date.
//
// The two types never convert implicitly. Use LocalDay.Storage and
// StorageDay.Local; both keep the civil date (year, month, day) unchanged.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the textual form of a day used by flags, import files and output.
const Layout = "2006-01-02"

// storageHour is the fixed UTC hour used for persisted days.
const storageHour = 12

var ErrInvalidRange = errors.New("range start is after range end")

// LocalDay is a calendar day in the user's zone. The zero value is not a
// valid day; use IsZero to detect it.
type LocalDay struct {
	// civil is midnight UTC of the calendar date. It is only an encoding of
	// (year, month, day) and never leaves this package as an instant.
	civil time.Time
}

// NewLocalDay builds a LocalDay from its civil components. Out-of-range
// components are normalized the way time.Date normalizes them.
func NewLocalDay(year int, month time.Month, day int) LocalDay {
	return LocalDay{civil: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// LocalDayOf returns the calendar day of t in t's own location, discarding
// the time of day. Wall-clock times from the UI are expected in the user's
// zone (time.Local), so callers pass them through unchanged.
func LocalDayOf(t time.Time) LocalDay {
	y, m, d := t.Date()
	return NewLocalDay(y, m, d)
}

// Today returns the LocalDay of now in the local zone.
func Today(now time.Time) LocalDay {
	return LocalDayOf(now.Local())
}

// ParseLocalDay parses a YYYY-MM-DD string.
func ParseLocalDay(s string) (LocalDay, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return LocalDay{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return LocalDayOf(t), nil
}

func (d LocalDay) IsZero() bool { return d.civil.IsZero() }

func (d LocalDay) Date() (int, time.Month, int) { return d.civil.Date() }

// In returns midnight of the day in loc.
func (d LocalDay) In(loc *time.Location) time.Time {
	y, m, dd := d.civil.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, loc)
}

func (d LocalDay) AddDays(n int) LocalDay {
	return LocalDay{civil: d.civil.AddDate(0, 0, n)}
}

// DaysUntil returns the whole-day difference other - d.
func (d LocalDay) DaysUntil(other LocalDay) int {
	return int(other.civil.Sub(d.civil).Hours() / 24)
}

func (d LocalDay) Before(other LocalDay) bool { return d.civil.Before(other.civil) }
func (d LocalDay) After(other LocalDay) bool  { return d.civil.After(other.civil) }
func (d LocalDay) Equal(other LocalDay) bool  { return d.civil.Equal(other.civil) }

// Compare returns -1, 0 or +1.
func (d LocalDay) Compare(other LocalDay) int { return d.civil.Compare(other.civil) }

// Storage converts to the persisted representation of the same calendar date.
func (d LocalDay) Storage() StorageDay {
	y, m, dd := d.civil.Date()
	return StorageDay{t: time.Date(y, m, dd, storageHour, 0, 0, 0, time.UTC)}
}

func (d LocalDay) String() string {
	if d.IsZero() {
		return ""
	}
	return d.civil.Format(Layout)
}

// StorageDay is a calendar day pinned to 12:00 UTC.
type StorageDay struct {
	t time.Time
}

// StorageDayOf reads the calendar date of a persisted instant. Persisted
// values are UTC noon, so the UTC date is the intended date.
func StorageDayOf(t time.Time) StorageDay {
	y, m, d := t.UTC().Date()
	return StorageDay{t: time.Date(y, m, d, storageHour, 0, 0, 0, time.UTC)}
}

// ParseStorageDay accepts either RFC3339 (as written by Time) or YYYY-MM-DD.
func ParseStorageDay(s string) (StorageDay, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StorageDayOf(t), nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return StorageDay{}, fmt.Errorf("invalid stored day %q: %w", s, err)
	}
	return StorageDayOf(t), nil
}

func (s StorageDay) IsZero() bool { return s.t.IsZero() }

// Time returns the persisted instant (12:00 UTC).
func (s StorageDay) Time() time.Time { return s.t }

// Local converts to the interactive representation of the same calendar date.
func (s StorageDay) Local() LocalDay {
	y, m, d := s.t.Date()
	return NewLocalDay(y, m, d)
}

func (s StorageDay) Equal(other StorageDay) bool { return s.t.Equal(other.t) }

// String is the RFC3339 form written to storage.
func (s StorageDay) String() string {
	if s.IsZero() {
		return ""
	}
	return s.t.Format(time.RFC3339)
}

// Range is an inclusive window of calendar days. From <= To always holds
// for ranges built with NewRange.
type Range struct {
	From LocalDay
	To   LocalDay
}

func NewRange(from, to LocalDay) (Range, error) {
	if from.IsZero() || to.IsZero() {
		return Range{}, fmt.Errorf("range bounds are required")
	}
	if from.After(to) {
		return Range{}, fmt.Errorf("%s > %s: %w", from, to, ErrInvalidRange)
	}
	return Range{From: from, To: to}, nil
}

// Contains reports whether d is within the range, bounds included.
func (r Range) Contains(d LocalDay) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// Days is the number of calendar days covered, bounds included.
func (r Range) Days() int {
	return r.From.DaysUntil(r.To) + 1
}

func (r Range) String() string {
	return r.From.String() + ".." + r.To.String()
}
