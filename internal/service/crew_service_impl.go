package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/repository"
	"github.com/google/uuid"
)

type crewService struct {
	crew     repository.CrewRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCrewService(crew repository.CrewRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CrewService {
	return &crewService{
		crew:     crew,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *crewService) Add(ctx context.Context, m *domain.CrewMember) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "add-crew", startedAt, map[string]any{"name": m.Name}, err) }()

	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("crew member name is required")
	}
	if !strings.Contains(m.Email, "@") {
		return fmt.Errorf("crew member %q: invalid email %q", m.Name, m.Email)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return s.crew.Create(ctx, m)
}

func (s *crewService) List(ctx context.Context) ([]*domain.CrewMember, error) {
	return s.crew.List(ctx)
}

// Assign puts a crew member on a task. The assignment starts as a draft
// with a pending invitation until Publish sends it.
func (s *crewService) Assign(ctx context.Context, taskID, crewMemberID string) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID, "crew_member_id": crewMemberID}
	defer func() { observe(ctx, s.observer, "assign-crew", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.crew.GetByID(ctx, crewMemberID); err != nil {
			return err
		}
		task, err = r.tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		id := crewMemberID
		task.CrewMemberID = &id
		task.SyncStatus = domain.SyncDraft
		task.InvitationStatus = domain.InvitationPending
		task.UpdatedAt = time.Now().UTC()
		return r.tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *crewService) Unassign(ctx context.Context, taskID string) (task *domain.Task, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "unassign-crew", startedAt, map[string]any{"task_id": taskID}, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		task, err = tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		task.CrewMemberID = nil
		task.SyncStatus = domain.SyncNone
		task.InvitationStatus = domain.InvitationNone
		task.UpdatedAt = time.Now().UTC()
		return tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *crewService) Publish(ctx context.Context, eventID string) (count int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"event_id": eventID}
	defer func() { observe(ctx, s.observer, "publish-crew", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		list, err := tasks.ListByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, t := range list {
			if t.CrewMemberID == nil || t.SyncStatus != domain.SyncDraft {
				continue
			}
			t.SyncStatus = domain.SyncInvited
			if t.InvitationStatus == domain.InvitationNone {
				t.InvitationStatus = domain.InvitationPending
			}
			t.UpdatedAt = now
			if err := tasks.Update(ctx, t); err != nil {
				return fmt.Errorf("publishing task %s: %w", t.ID, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["published"] = count
	return count, nil
}

func (s *crewService) RecordResponse(ctx context.Context, taskID string, status domain.InvitationStatus) (task *domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"task_id": taskID, "status": string(status)}
	defer func() { observe(ctx, s.observer, "record-response", startedAt, fields, err) }()

	if status != domain.InvitationAccepted && status != domain.InvitationDeclined {
		return nil, fmt.Errorf("invalid invitation response %q: must be accepted or declined", status)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tasks := repository.NewSQLiteTaskRepo(tx)
		task, err = tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task.CrewMemberID == nil {
			return fmt.Errorf("task %s has no crew assigned", taskID)
		}
		task.InvitationStatus = status
		task.UpdatedAt = time.Now().UTC()
		return tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
