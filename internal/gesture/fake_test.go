package gesture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend unavailable")

type updateCall struct {
	TaskID string
	Start  string
	End    string
}

// recordingActions records every call and fails the task IDs in failOn.
type recordingActions struct {
	updates []updateCall
	creates []string
	deletes []string
	toggles map[string]bool
	patches map[string]ManualTaskPatch
	failOn  map[string]bool
}

func newRecordingActions() *recordingActions {
	return &recordingActions{
		toggles: make(map[string]bool),
		patches: make(map[string]ManualTaskPatch),
		failOn:  make(map[string]bool),
	}
}

func (r *recordingActions) UpdateTask(_ context.Context, taskID string, start, end dates.StorageDay) error {
	r.updates = append(r.updates, updateCall{TaskID: taskID, Start: start.Local().String(), End: end.Local().String()})
	if r.failOn[taskID] {
		return errBackend
	}
	return nil
}

func (r *recordingActions) CreateTask(_ context.Context, itemID, _, _ string, start dates.StorageDay) error {
	r.creates = append(r.creates, itemID+"@"+start.Local().String())
	if r.failOn[itemID] {
		return errBackend
	}
	return nil
}

func (r *recordingActions) DeleteTask(_ context.Context, taskID string) error {
	r.deletes = append(r.deletes, taskID)
	if r.failOn[taskID] {
		return errBackend
	}
	return nil
}

func (r *recordingActions) ToggleComplete(_ context.Context, taskID string, completed bool) error {
	r.toggles[taskID] = completed
	if r.failOn[taskID] {
		return errBackend
	}
	return nil
}

func (r *recordingActions) PatchManualTask(_ context.Context, taskID string, patch ManualTaskPatch) error {
	r.patches[taskID] = patch
	if r.failOn[taskID] {
		return errBackend
	}
	return nil
}

func jan(d int) dates.LocalDay { return dates.NewLocalDay(2024, time.January, d) }

func janGrid(t *testing.T) timeline.Grid {
	t.Helper()
	r, err := dates.NewRange(jan(1), jan(10))
	require.NoError(t, err)
	return timeline.NewGrid(r, 60)
}

func newTask(id string, start, end int) *domain.Task {
	return &domain.Task{
		ID:      id,
		Name:    id,
		Kind:    domain.TaskCatalog,
		ItemID:  "item-" + id,
		Start:   jan(start).Storage(),
		End:     jan(end).Storage(),
		EventID: "ev",
	}
}
