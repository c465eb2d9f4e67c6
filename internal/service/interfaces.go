package service

import (
	"context"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/alexanderramin/eventboard/internal/importer"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// Resolve accepts a short ID (case-insensitive) or a full ID.
	Resolve(ctx context.Context, ref string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	SetActive(ctx context.Context, eventID string, sectionIDs []string, stages []domain.Stage) error

	AssignItem(ctx context.Context, eventID, catalogItemID string) (*domain.EventItem, error)
	UnassignItem(ctx context.Context, itemID string) error

	// ProposeRange applies proposed only when no task would fall outside
	// it. Otherwise the check comes back unapplied for the caller to confirm.
	ProposeRange(ctx context.Context, eventID string, proposed dates.Range) (timeline.RangeCheck, error)
	// ConfirmRange applies proposed unconditionally.
	ConfirmRange(ctx context.Context, eventID string, proposed dates.Range) error
}

// ScheduleService persists task changes made on the board.
type ScheduleService interface {
	gesture.TaskActions
	gesture.ManualTaskPatcher

	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, eventID string) ([]*domain.Task, error)
	CreateManualTask(ctx context.Context, eventID, categoryID, name string, start dates.StorageDay, durationDays int) (*domain.Task, error)
	LoadBoard(ctx context.Context, eventID string) (*Board, error)
}

type CrewService interface {
	gesture.CrewSync

	Add(ctx context.Context, m *domain.CrewMember) error
	List(ctx context.Context) ([]*domain.CrewMember, error)
	// Publish marks every crew-assigned draft task of the event as invited
	// and returns how many changed.
	Publish(ctx context.Context, eventID string) (int, error)
	RecordResponse(ctx context.Context, taskID string, status domain.InvitationStatus) (*domain.Task, error)
}

// ImportResult holds the outcome of an event import.
type ImportResult struct {
	Event         *domain.Event
	SectionCount  int
	CategoryCount int
	ItemCount     int
	TaskCount     int
	CrewCount     int
}

type ImportService interface {
	ImportEvent(ctx context.Context, filePath string) (*ImportResult, error)
	ImportEventFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
