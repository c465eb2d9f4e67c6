// Package gesture implements direct manipulation of the timeline: moving
// and resizing single task bars, dragging a whole category as one rigid
// group, and clicking empty day cells. Every gesture ends in an Update that
// is applied to local state first and then sent to TaskActions; a failed
// call rolls the bar back to its last committed span.
//
// All types here are owned by the UI goroutine. Persistence calls may run
// elsewhere, but their results must be handed back through Resolve on the
// UI goroutine.
package gesture

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
)

var (
	// ErrBusy is returned when a gesture starts on a bar whose previous
	// update has not resolved yet.
	ErrBusy = errors.New("task update still pending")
	// ErrClaimed is returned when a single-bar gesture starts on a task
	// that belongs to an active bulk drag.
	ErrClaimed = errors.New("task is part of an active bulk drag")
	// ErrGestureActive is returned when a second gesture starts before the
	// first one ended.
	ErrGestureActive = errors.New("another gesture is in progress")
	// ErrNoGesture is returned when ending a gesture that never started.
	ErrNoGesture = errors.New("no gesture in progress")
)

// TaskActions persists the results of gestures. Implementations may block;
// a returned error means nothing was persisted.
type TaskActions interface {
	UpdateTask(ctx context.Context, taskID string, start, end dates.StorageDay) error
	CreateTask(ctx context.Context, itemID, catalogItemID, itemName string, start dates.StorageDay) error
	DeleteTask(ctx context.Context, taskID string) error
	ToggleComplete(ctx context.Context, taskID string, completed bool) error
}

// ManualTaskPatch carries the manual-task fields that live outside the
// catalog task update path. Nil fields are left unchanged.
type ManualTaskPatch struct {
	Start        *dates.StorageDay
	End          *dates.StorageDay
	DurationDays *int
}

// ManualTaskPatcher is the optional side channel for manual tasks.
type ManualTaskPatcher interface {
	PatchManualTask(ctx context.Context, taskID string, patch ManualTaskPatch) error
}

// CrewSync is the external crew assignment collaborator. It owns the
// crew, sync and invitation fields; the board only displays them.
type CrewSync interface {
	Assign(ctx context.Context, taskID, crewMemberID string) (*domain.Task, error)
	Unassign(ctx context.Context, taskID string) (*domain.Task, error)
}

// ItemUpdateFunc receives the task as changed by a collaborator so the
// owner can refresh its state without a reload.
type ItemUpdateFunc func(t *domain.Task)

type UpdateKind string

const (
	KindMove     UpdateKind = "move"
	KindResize   UpdateKind = "resize"
	KindBulkMove UpdateKind = "bulk_move"
	KindToggle   UpdateKind = "toggle_complete"
	KindDelete   UpdateKind = "delete"
	KindCreate   UpdateKind = "create"
)

// Update is one pending persistence call produced by a gesture.
type Update struct {
	Kind   UpdateKind
	TaskID string
	// Seq ties the update to the bar state that produced it; responses for
	// an older Seq are stale.
	Seq uint64

	Start dates.StorageDay
	End   dates.StorageDay

	Completed bool

	// Manual is set when a resize of a manual task goes through
	// ManualTaskPatcher instead of UpdateTask.
	Manual *ManualTaskPatch

	// Create fields.
	ItemID        string
	CatalogItemID string
	ItemName      string
}

// TaskUpdateError names the task whose update failed.
type TaskUpdateError struct {
	TaskID string
	Kind   UpdateKind
	Err    error
}

func (e *TaskUpdateError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.TaskID, e.Err)
}

func (e *TaskUpdateError) Unwrap() error { return e.Err }

// Run sends u to its collaborator. It touches no local state; the caller
// hands the result to Resolve. patcher may be nil.
func Run(ctx context.Context, actions TaskActions, patcher ManualTaskPatcher, u Update) error {
	var err error
	switch u.Kind {
	case KindMove, KindResize, KindBulkMove:
		// The manual patch carries the new span too, so dates and duration
		// land in one call.
		if u.Manual != nil && patcher != nil {
			err = patcher.PatchManualTask(ctx, u.TaskID, *u.Manual)
		} else {
			err = actions.UpdateTask(ctx, u.TaskID, u.Start, u.End)
		}
	case KindToggle:
		err = actions.ToggleComplete(ctx, u.TaskID, u.Completed)
	case KindDelete:
		err = actions.DeleteTask(ctx, u.TaskID)
	case KindCreate:
		err = actions.CreateTask(ctx, u.ItemID, u.CatalogItemID, u.ItemName, u.Start)
	default:
		err = fmt.Errorf("unknown update kind %q", u.Kind)
	}
	if err != nil {
		id := u.TaskID
		if u.Kind == KindCreate {
			id = u.ItemID
		}
		return &TaskUpdateError{TaskID: id, Kind: u.Kind, Err: err}
	}
	return nil
}

// AssignCrew delegates to the crew collaborator and pushes the changed
// task to onUpdate. An empty crewMemberID removes the assignment.
func AssignCrew(ctx context.Context, sync CrewSync, onUpdate ItemUpdateFunc, taskID, crewMemberID string) error {
	var (
		t   *domain.Task
		err error
	)
	if crewMemberID == "" {
		t, err = sync.Unassign(ctx, taskID)
	} else {
		t, err = sync.Assign(ctx, taskID, crewMemberID)
	}
	if err != nil {
		return fmt.Errorf("crew assignment for %s: %w", taskID, err)
	}
	if onUpdate != nil && t != nil {
		onUpdate(t)
	}
	return nil
}
