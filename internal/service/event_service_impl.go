package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/repository"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/google/uuid"
)

type eventService struct {
	events   repository.EventRepo
	catalog  repository.CatalogRepo
	items    repository.EventItemRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewEventService(
	events repository.EventRepo,
	catalog repository.CatalogRepo,
	items repository.EventItemRepo,
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) EventService {
	return &eventService{
		events:   events,
		catalog:  catalog,
		items:    items,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"short_id": e.ShortID}
	defer func() { observe(ctx, s.observer, "create-event", startedAt, fields, err) }()

	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("event name is required")
	}
	if e.Range.From.IsZero() || e.Range.To.IsZero() {
		return fmt.Errorf("event range is required")
	}
	if e.ShortID != "" {
		e.ShortID = strings.ToUpper(e.ShortID)
		if err := e.ValidateShortID(); err != nil {
			return err
		}
	}
	for _, st := range e.ActiveStages {
		if !domain.ValidStages[string(st)] {
			return fmt.Errorf("invalid stage %q", st)
		}
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	fields["event_id"] = e.ID
	return s.events.Create(ctx, e)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) Resolve(ctx context.Context, ref string) (*domain.Event, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("event reference is required")
	}
	e, err := s.events.GetByShortID(ctx, ref)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	e, err = s.events.GetByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", ref, err)
	}
	return e, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) SetActive(ctx context.Context, eventID string, sectionIDs []string, stages []domain.Stage) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": eventID, "sections": len(sectionIDs), "stages": len(stages)}
	defer func() { observe(ctx, s.observer, "set-active", startedAt, fields, err) }()

	for _, st := range stages {
		if !domain.ValidStages[string(st)] {
			return fmt.Errorf("invalid stage %q", st)
		}
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		ev, err := r.events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		for _, id := range sectionIDs {
			if _, err := r.catalog.GetSection(ctx, id); err != nil {
				return fmt.Errorf("section %s: %w", id, err)
			}
		}
		ev.ActiveSectionIDs = sectionIDs
		ev.ActiveStages = stages
		ev.UpdatedAt = time.Now().UTC()
		return r.events.Update(ctx, ev)
	})
}

func (s *eventService) AssignItem(ctx context.Context, eventID, catalogItemID string) (item *domain.EventItem, err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": eventID, "catalog_item_id": catalogItemID}
	defer func() { observe(ctx, s.observer, "assign-item", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.events.GetByID(ctx, eventID); err != nil {
			return err
		}
		ci, err := r.catalog.GetItem(ctx, catalogItemID)
		if err != nil {
			return err
		}
		item = &domain.EventItem{
			ID:            uuid.New().String(),
			EventID:       eventID,
			CatalogItemID: ci.ID,
			Name:          ci.Name,
		}
		return r.items.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	fields["item_id"] = item.ID
	return item, nil
}

// UnassignItem removes the event item together with its task.
func (s *eventService) UnassignItem(ctx context.Context, itemID string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "unassign-item", startedAt, map[string]any{"item_id": itemID}, err) }()

	return s.items.Delete(ctx, itemID)
}

func (s *eventService) ProposeRange(ctx context.Context, eventID string, proposed dates.Range) (check timeline.RangeCheck, err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": eventID, "proposed": proposed.String()}
	defer func() { observe(ctx, s.observer, "propose-range", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.events.GetByID(ctx, eventID); err != nil {
			return err
		}
		tasks, err := r.tasks.ListByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		check = timeline.ValidateRangeChange(proposed, timeline.SpansOf(tasks))
		fields["conflicts"] = check.ConflictCount()
		if !check.Accepted {
			return nil
		}
		return r.events.UpdateRange(ctx, eventID, proposed)
	})
	return check, err
}

func (s *eventService) ConfirmRange(ctx context.Context, eventID string, proposed dates.Range) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": eventID, "proposed": proposed.String()}
	defer func() { observe(ctx, s.observer, "confirm-range", startedAt, fields, err) }()

	return s.events.UpdateRange(ctx, eventID, proposed)
}
