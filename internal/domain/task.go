package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
)

// Task is the scheduling record for an event item or a manual task.
type Task struct {
	ID      string
	EventID string
	Kind    TaskKind
	Name    string

	Start dates.StorageDay
	End   dates.StorageDay // inclusive

	CompletedAt *time.Time

	// Catalog-bound tasks.
	ItemID        string
	CatalogItemID string

	// Manual tasks live directly in a category.
	CategoryID   string
	DurationDays int
	Order        int

	CrewMemberID     *string
	SyncStatus       SyncStatus
	InvitationStatus InvitationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Task) IsCompleted() bool { return t.CompletedAt != nil }

// Span returns the task's days in the interactive representation.
func (t *Task) Span() (dates.LocalDay, dates.LocalDay) {
	return t.Start.Local(), t.End.Local()
}

// Days is the inclusive length of the task in days.
func (t *Task) Days() int {
	start, end := t.Span()
	return start.DaysUntil(end) + 1
}

// Validate checks the day-granularity invariant end >= start.
func (t *Task) Validate() error {
	if t.Start.IsZero() || t.End.IsZero() {
		return fmt.Errorf("task %q: start and end dates are required", t.Name)
	}
	start, end := t.Span()
	if end.Before(start) {
		return fmt.Errorf("task %q: end %s is before start %s", t.Name, end, start)
	}
	if t.Kind == TaskCatalog && t.ItemID == "" {
		return fmt.Errorf("task %q: catalog task requires an event item", t.Name)
	}
	if t.Kind == TaskManual && t.CategoryID == "" {
		return fmt.Errorf("task %q: manual task requires a category", t.Name)
	}
	return nil
}
