package timeline

import (
	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
)

// TaskSpan is the part of a task the range validator looks at.
type TaskSpan struct {
	ID    string
	Start dates.LocalDay
	End   dates.LocalDay
}

func SpansOf(tasks []*domain.Task) []TaskSpan {
	out := make([]TaskSpan, 0, len(tasks))
	for _, t := range tasks {
		start, end := t.Span()
		out = append(out, TaskSpan{ID: t.ID, Start: start, End: end})
	}
	return out
}

// RangeCheck is the validator's verdict on a proposed window.
type RangeCheck struct {
	Proposed dates.Range
	// Accepted is true when no task leaves the proposed window; the caller
	// may apply it right away.
	Accepted bool
	// Conflicts lists the tasks that would fall partly or fully outside.
	Conflicts []string
}

func (c RangeCheck) ConflictCount() int { return len(c.Conflicts) }

// ValidateRangeChange checks every span against the proposed window. It
// never applies anything; a rejected check is the caller's cue to ask.
func ValidateRangeChange(proposed dates.Range, spans []TaskSpan) RangeCheck {
	check := RangeCheck{Proposed: proposed}
	for _, s := range spans {
		if !proposed.Contains(s.Start) || !proposed.Contains(s.End) {
			check.Conflicts = append(check.Conflicts, s.ID)
		}
	}
	check.Accepted = len(check.Conflicts) == 0
	return check
}
