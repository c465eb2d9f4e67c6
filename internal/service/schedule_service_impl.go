package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/alexanderramin/eventboard/internal/repository"
	"github.com/google/uuid"
)

type scheduleService struct {
	events   repository.EventRepo
	catalog  repository.CatalogRepo
	items    repository.EventItemRepo
	tasks    repository.TaskRepo
	crew     repository.CrewRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewScheduleService(
	events repository.EventRepo,
	catalog repository.CatalogRepo,
	items repository.EventItemRepo,
	tasks repository.TaskRepo,
	crew repository.CrewRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		events:   events,
		catalog:  catalog,
		items:    items,
		tasks:    tasks,
		crew:     crew,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *scheduleService) ListTasks(ctx context.Context, eventID string) ([]*domain.Task, error) {
	return s.tasks.ListByEvent(ctx, eventID)
}

func (s *scheduleService) UpdateTask(ctx context.Context, taskID string, start, end dates.StorageDay) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID, "start": start.Local().String(), "end": end.Local().String()}
	defer func() { observe(ctx, s.observer, "update-task", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		task, err := r.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		ev, err := r.events.GetByID(ctx, task.EventID)
		if err != nil {
			return err
		}
		if err := checkSpan(ev, start, end); err != nil {
			return fmt.Errorf("task %s: %w", taskID, err)
		}
		return r.tasks.UpdateDates(ctx, taskID, start, end)
	})
}

func (s *scheduleService) CreateTask(ctx context.Context, itemID, catalogItemID, itemName string, start dates.StorageDay) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"item_id": itemID, "start": start.Local().String()}
	defer func() { observe(ctx, s.observer, "create-task", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		item, err := r.items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if catalogItemID != "" && item.CatalogItemID != catalogItemID {
			return fmt.Errorf("item %s is assigned from %s, not %s", itemID, item.CatalogItemID, catalogItemID)
		}
		if _, err := r.tasks.GetByItem(ctx, itemID); err == nil {
			return fmt.Errorf("item %s: %w", itemID, ErrAlreadyScheduled)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		ev, err := r.events.GetByID(ctx, item.EventID)
		if err != nil {
			return err
		}
		if err := checkSpan(ev, start, start); err != nil {
			return err
		}

		now := time.Now().UTC()
		task := &domain.Task{
			ID:            uuid.New().String(),
			EventID:       item.EventID,
			Kind:          domain.TaskCatalog,
			Name:          cmp.Or(itemName, item.Name),
			Start:         start,
			End:           start,
			ItemID:        item.ID,
			CatalogItemID: item.CatalogItemID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		fields["task_id"] = task.ID
		return r.tasks.Create(ctx, task)
	})
}

// DeleteTask empties the slot. The event item stays assigned.
func (s *scheduleService) DeleteTask(ctx context.Context, taskID string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "delete-task", startedAt, map[string]any{"task_id": taskID}, err) }()

	return s.tasks.Delete(ctx, taskID)
}

func (s *scheduleService) ToggleComplete(ctx context.Context, taskID string, completed bool) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID, "completed": completed}
	defer func() { observe(ctx, s.observer, "toggle-complete", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		task, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if completed {
			if task.CompletedAt == nil {
				task.CompletedAt = &now
			}
		} else {
			task.CompletedAt = nil
		}
		task.UpdatedAt = now
		return tasks.Update(ctx, task)
	})
}

func (s *scheduleService) CreateManualTask(ctx context.Context, eventID, categoryID, name string, start dates.StorageDay, durationDays int) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": eventID, "category_id": categoryID, "days": durationDays}
	defer func() { observe(ctx, s.observer, "create-manual-task", startedAt, fields, err) }()

	if name == "" {
		return nil, fmt.Errorf("manual task name is required")
	}
	if durationDays < 1 {
		return nil, fmt.Errorf("duration must be at least one day, got %d", durationDays)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		cat, err := r.catalog.GetCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if !cat.AcceptsTasks {
			return fmt.Errorf("category %q does not accept tasks", cat.Name)
		}
		ev, err := r.events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		end := start.Local().AddDays(durationDays - 1).Storage()
		if err := checkSpan(ev, start, end); err != nil {
			return err
		}
		existing, err := r.tasks.ListByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		order := 0
		for _, t := range existing {
			if t.Kind == domain.TaskManual && t.CategoryID == categoryID && t.Order >= order {
				order = t.Order + 1
			}
		}

		now := time.Now().UTC()
		task = &domain.Task{
			ID:           uuid.New().String(),
			EventID:      eventID,
			Kind:         domain.TaskManual,
			Name:         name,
			Start:        start,
			End:          end,
			CategoryID:   categoryID,
			DurationDays: durationDays,
			Order:        order,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		fields["task_id"] = task.ID
		return r.tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// PatchManualTask applies the manual-task side channel. DurationDays alone
// moves the end; End alone recomputes the duration.
func (s *scheduleService) PatchManualTask(ctx context.Context, taskID string, patch gesture.ManualTaskPatch) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID}
	defer func() { observe(ctx, s.observer, "patch-manual-task", startedAt, fields, err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		task, err := r.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.Kind != domain.TaskManual {
			return fmt.Errorf("task %s is not a manual task", taskID)
		}
		if patch.Start != nil {
			task.Start = *patch.Start
		}
		switch {
		case patch.End != nil:
			task.End = *patch.End
			task.DurationDays = task.Days()
		case patch.DurationDays != nil:
			if *patch.DurationDays < 1 {
				return fmt.Errorf("duration must be at least one day, got %d", *patch.DurationDays)
			}
			task.DurationDays = *patch.DurationDays
			task.End = task.Start.Local().AddDays(task.DurationDays - 1).Storage()
		default:
			task.DurationDays = task.Days()
		}
		if patch.DurationDays != nil && task.DurationDays != *patch.DurationDays {
			return fmt.Errorf("duration %d does not match %s..%s", *patch.DurationDays, task.Start.Local(), task.End.Local())
		}
		fields["days"] = task.DurationDays

		ev, err := r.events.GetByID(ctx, task.EventID)
		if err != nil {
			return err
		}
		if err := checkSpan(ev, task.Start, task.End); err != nil {
			return err
		}
		task.UpdatedAt = time.Now().UTC()
		return r.tasks.Update(ctx, task)
	})
}

func (s *scheduleService) LoadBoard(ctx context.Context, eventID string) (*Board, error) {
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}
	sections, err := s.catalog.ListSections(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	catalogItems, err := s.catalog.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	crew, err := s.crew.List(ctx)
	if err != nil {
		return nil, err
	}
	return buildBoard(ev, sections, cats, catalogItems, items, tasks, crew), nil
}
