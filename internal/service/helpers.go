package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/repository"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

var (
	// ErrRangeConflict is returned when a range change would leave tasks
	// outside the window and nobody confirmed it.
	ErrRangeConflict = errors.New("tasks fall outside the proposed range")
	// ErrOutsideRange is returned when task dates leave the event window.
	ErrOutsideRange = errors.New("dates fall outside the event range")
	// ErrAlreadyScheduled is returned when an event item already has a task.
	ErrAlreadyScheduled = errors.New("item already has a task")
)

// RangeConflictError wraps ErrRangeConflict with the rejected check.
func RangeConflictError(check timeline.RangeCheck) error {
	return fmt.Errorf("%d task(s) outside %s: %w", check.ConflictCount(), check.Proposed, ErrRangeConflict)
}

// txRepos are the repositories bound to one transaction.
type txRepos struct {
	events  repository.EventRepo
	catalog repository.CatalogRepo
	items   repository.EventItemRepo
	tasks   repository.TaskRepo
	crew    repository.CrewRepo
}

func reposFor(tx db.DBTX) txRepos {
	return txRepos{
		events:  repository.NewSQLiteEventRepo(tx),
		catalog: repository.NewSQLiteCatalogRepo(tx),
		items:   repository.NewSQLiteEventItemRepo(tx),
		tasks:   repository.NewSQLiteTaskRepo(tx),
		crew:    repository.NewSQLiteCrewRepo(tx),
	}
}

// observe reports one use case. Call it deferred with a named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

// checkSpan enforces end >= start and that both days lie in the event window.
func checkSpan(ev *domain.Event, start, end dates.StorageDay) error {
	s, e := start.Local(), end.Local()
	if e.Before(s) {
		return fmt.Errorf("end %s is before start %s", e, s)
	}
	if !ev.Range.Contains(s) || !ev.Range.Contains(e) {
		return fmt.Errorf("%s..%s not within %s: %w", s, e, ev.Range, ErrOutsideRange)
	}
	return nil
}
