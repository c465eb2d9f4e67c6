package timeline

import (
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
)

// ComputeStatus derives a task's status from now and its inclusive span.
// Completion wins over dates. The result is never stored; callers pass
// time.Now() at render time.
func ComputeStatus(start, end dates.LocalDay, completed bool, now time.Time) domain.TaskStatus {
	if completed {
		return domain.TaskCompleted
	}
	today := dates.Today(now)
	switch {
	case today.Before(start):
		return domain.TaskPending
	case !today.After(end):
		return domain.TaskInProcess
	default:
		return domain.TaskDelayed
	}
}

// TaskStatus is ComputeStatus applied to a stored task.
func TaskStatus(t *domain.Task, now time.Time) domain.TaskStatus {
	start, end := t.Span()
	return ComputeStatus(start, end, t.IsCompleted(), now)
}
