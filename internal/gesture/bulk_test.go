package gesture

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bulkFixture is one category holding two scheduled tasks and one
// unscheduled item, plus a second category with its own task.
func bulkFixture(t *testing.T, tasks map[string][2]int) (*Board, []timeline.Row) {
	t.Helper()
	in := timeline.BuildInput{
		Sections: []timeline.SectionTree{{
			Section: domain.Section{ID: "s"},
			Categories: []timeline.CategoryTree{
				{
					Category: domain.Category{ID: "cat", SectionID: "s", Stage: domain.StageProduction, AcceptsTasks: true},
					Items: []domain.CatalogItem{
						{ID: "ci-a", Order: 1}, {ID: "ci-b", Order: 2}, {ID: "ci-idle", Order: 3},
					},
				},
				{
					Category: domain.Category{ID: "other", SectionID: "s", Stage: domain.StageProduction, Order: 1, AcceptsTasks: true},
					Items:    []domain.CatalogItem{{ID: "ci-c"}},
				},
			},
		}},
		Items: map[string]*domain.EventItem{
			"ci-a":    {ID: "item-a", CatalogItemID: "ci-a", Name: "A"},
			"ci-b":    {ID: "item-b", CatalogItemID: "ci-b", Name: "B"},
			"ci-idle": {ID: "item-idle", CatalogItemID: "ci-idle", Name: "Idle"},
			"ci-c":    {ID: "item-c", CatalogItemID: "ci-c", Name: "C"},
		},
		Tasks: map[string]*domain.Task{},
	}
	var all []*domain.Task
	for _, key := range []string{"a", "b", "c"} {
		span, ok := tasks[key]
		if !ok {
			continue
		}
		tk := newTask(key, span[0], span[1])
		in.Tasks["ci-"+key] = tk
		all = append(all, tk)
	}
	rows := timeline.BuildRows(in)
	return NewBoard(janGrid(t), DefaultThresholds, all), rows
}

func TestBulkDrag_DropAppliesUniformOffset(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}, "c": {1, 1}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.Move(2*60 + 10)
	assert.Equal(t, 2, board.Bar("a").BulkOffset())
	assert.Equal(t, 2, board.Bar("b").BulkOffset())
	assert.Equal(t, 0, board.Bar("c").BulkOffset(), "other category does not follow")
	assert.Equal(t, 120.0, board.Bar("a").X(), "visual offset only")
	assert.True(t, board.Bar("a").Span().Start.Equal(jan(1)), "stored dates untouched while dragging")

	updates, result := bulk.Drop()
	require.False(t, result.Rejected)
	require.Len(t, updates, 2)
	bulk.Execute(ctx, actions, updates, result)

	assert.Equal(t, []updateCall{
		{TaskID: "a", Start: "2024-01-03", End: "2024-01-04"},
		{TaskID: "b", Start: "2024-01-05", End: "2024-01-06"},
	}, actions.updates)
	assert.Equal(t, []string{"a", "b"}, result.Succeeded)
	assert.NoError(t, result.Err())
	assert.Equal(t, 0, board.Bar("a").BulkOffset())
	assert.Equal(t, 120.0, board.Bar("a").X())
	assert.False(t, bulk.Active())
}

func TestBulkDrag_PartialFailureIsReported(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	actions.failOn["b"] = true
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.MoveDays(1)
	updates, result := bulk.Drop()
	bulk.Execute(ctx, actions, updates, result)

	assert.Equal(t, []string{"a"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "b", result.Failed[0].TaskID)
	assert.True(t, errors.Is(result.Err(), errBackend))

	assert.True(t, board.Bar("a").Span().Start.Equal(jan(2)), "successful task is not rolled back")
	assert.True(t, board.Bar("b").Span().Start.Equal(jan(3)), "failed task reverts")
	assert.Equal(t, PhaseRolledBack, board.Bar("b").Phase())
}

func TestBulkDrag_OutOfRangeRejectsWholeDrop(t *testing.T) {
	actions := newRecordingActions()
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {8, 9}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.MoveDays(2)
	updates, result := bulk.Drop()
	assert.Empty(t, updates)
	assert.True(t, result.Rejected)
	assert.Equal(t, []string{"b"}, result.OutOfRange)
	assert.Empty(t, actions.updates)
	assert.True(t, board.Bar("a").Span().Start.Equal(jan(1)))
	assert.Equal(t, PhaseCommitted, board.Bar("a").Phase())
}

func TestBulkDrag_CancelIssuesNothing(t *testing.T) {
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.MoveDays(3)
	bulk.Cancel()
	assert.False(t, bulk.Active())
	assert.Equal(t, 0, board.Bar("a").BulkOffset())

	updates, result := bulk.Drop()
	assert.Empty(t, updates)
	assert.Zero(t, result.OffsetDays)
}

func TestBulkDrag_ClaimsTasksExclusively(t *testing.T) {
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}, "c": {5, 5}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	assert.ErrorIs(t, board.Bar("a").BeginDrag(), ErrClaimed)
	assert.NoError(t, board.Bar("c").BeginDrag(), "tasks outside the segment stay free")
	assert.ErrorIs(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:other")), ErrGestureActive)

	bulk.Cancel()
	assert.NoError(t, board.Bar("a").BeginDrag())
}

func TestBulkDrag_BusyTaskBlocksBegin(t *testing.T) {
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bar := board.Bar("b")
	require.NoError(t, bar.BeginDrag())
	_, ok := bar.EndDrag(bar.X() + 60)
	require.True(t, ok)

	err := board.Bulk().Begin(rows, timeline.IndexOf(rows, "category:cat"))
	assert.ErrorIs(t, err, ErrBusy)
}

func TestBulkDrag_ClaimBlocksToggleAndDelete(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.MoveDays(2)
	_, err := board.Bar("b").ToggleComplete()
	assert.ErrorIs(t, err, ErrClaimed)
	_, err = board.Bar("b").Delete()
	assert.ErrorIs(t, err, ErrClaimed)
	assert.False(t, board.Bar("b").Updating())

	updates, result := bulk.Drop()
	require.Len(t, updates, 2)
	bulk.Execute(ctx, actions, updates, result)
	assert.Equal(t, []string{"a", "b"}, result.Succeeded)
	assert.NoError(t, result.Err())
}

func TestBulkDrag_GrabbedBarBlocksBegin(t *testing.T) {
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bar := board.Bar("a")
	require.NoError(t, bar.BeginDrag())

	err := board.Bulk().Begin(rows, timeline.IndexOf(rows, "category:cat"))
	assert.ErrorIs(t, err, ErrGestureActive)
	assert.False(t, board.Bulk().Active())

	// Once the single drag ends the group can be grabbed.
	_, ok := bar.EndDrag(bar.X())
	require.False(t, ok)
	assert.NoError(t, board.Bulk().Begin(rows, timeline.IndexOf(rows, "category:cat")))
}

func TestBulkDrag_ClaimedAfterGrabDiscardsSingleDrop(t *testing.T) {
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bar := board.Bar("a")
	require.NoError(t, board.Bulk().Begin(rows, timeline.IndexOf(rows, "category:cat")))

	// The claim arrived while the bar was held.
	bar.gesture = gestureDrag
	bar.originX = bar.X()
	_, ok := bar.EndDrag(bar.X() + 120)
	assert.False(t, ok)
	assert.False(t, bar.Updating())
	assert.True(t, bar.Span().Start.Equal(jan(1)))
}

func TestBulkDrag_PendingBarIsReportedNotDropped(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.MoveDays(1)
	board.Bar("b").phase = PhasePending

	updates, result := bulk.Drop()
	require.Len(t, updates, 1)
	bulk.Execute(ctx, actions, updates, result)

	assert.Equal(t, []string{"a"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "b", result.Failed[0].TaskID)
	assert.Equal(t, KindBulkMove, result.Failed[0].Kind)
	assert.ErrorIs(t, result.Err(), ErrBusy)
}

func TestBulkDrag_BeginOnNonHeader(t *testing.T) {
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}})
	err := board.Bulk().Begin(rows, timeline.IndexOf(rows, "task:item-a"))
	assert.ErrorIs(t, err, ErrNoGesture)
}

func TestBulkDragStore_Subscribe(t *testing.T) {
	store := NewBulkDragStore()
	var seen []int
	unsubscribe := store.Subscribe(func(s *BulkDragState) {
		if s == nil {
			seen = append(seen, -1)
			return
		}
		seen = append(seen, s.OffsetDays)
	})

	require.NoError(t, store.Begin(timeline.Segment{HeaderID: "category:x", TaskIDs: []string{"t"}}))
	store.SetOffset(2)
	store.SetOffset(2)
	store.End()
	unsubscribe()
	store.SetOffset(5)

	assert.Equal(t, []int{0, 2, -1}, seen)
}

func TestBoard_ClickCellCreatesTask(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}})

	idle := rows[timeline.IndexOf(rows, "task:item-idle")]
	u, ok := board.ClickCell(idle, 3*60+20)
	require.True(t, ok)
	assert.Equal(t, KindCreate, u.Kind)
	require.NoError(t, Run(ctx, actions, nil, u))
	assert.Equal(t, []string{"item-idle@2024-01-04"}, actions.creates)

	_, ok = board.ClickCell(rows[timeline.IndexOf(rows, "task:item-a")], 0)
	assert.False(t, ok, "scheduled rows are not clickable")
	_, ok = board.ClickCell(idle, 11*60)
	assert.False(t, ok, "outside window")
	_, ok = board.ClickCell(rows[timeline.IndexOf(rows, "add-task:cat")], 0)
	assert.False(t, ok)
}

func TestBoard_SyncAndDeleteResolve(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	board, _ := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	require.NotNil(t, board.Bar("a"))
	require.NotNil(t, board.Bar("b"))

	u, err := board.Bar("a").Delete()
	require.NoError(t, err)
	board.Resolve(u, Run(ctx, actions, nil, u))
	assert.Nil(t, board.Bar("a"))

	board.Sync([]*domain.Task{newTask("b", 5, 6), newTask("z", 1, 1)})
	assert.Nil(t, board.Bar("a"), "deleted tasks stay gone")
	require.NotNil(t, board.Bar("z"))
	assert.True(t, board.Bar("b").Span().Start.Equal(jan(5)))
}

func TestAssignCrew_PushesUpdate(t *testing.T) {
	ctx := context.Background()
	crew := &fakeCrew{}
	var pushed *domain.Task
	require.NoError(t, AssignCrew(ctx, crew, func(tk *domain.Task) { pushed = tk }, "a", "crew-1"))
	require.NotNil(t, pushed)
	assert.Equal(t, "crew-1", *pushed.CrewMemberID)

	require.NoError(t, AssignCrew(ctx, crew, func(tk *domain.Task) { pushed = tk }, "a", ""))
	assert.Nil(t, pushed.CrewMemberID)

	crew.err = errBackend
	assert.ErrorIs(t, AssignCrew(ctx, crew, nil, "a", "crew-2"), errBackend)
}

type fakeCrew struct{ err error }

func (f *fakeCrew) Assign(_ context.Context, taskID, crewMemberID string) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Task{ID: taskID, CrewMemberID: &crewMemberID, SyncStatus: domain.SyncDraft}, nil
}

func (f *fakeCrew) Unassign(_ context.Context, taskID string) (*domain.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Task{ID: taskID}, nil
}

func TestBulkDrag_RunAllThenApply(t *testing.T) {
	ctx := context.Background()
	actions := newRecordingActions()
	actions.failOn["a"] = true
	board, rows := bulkFixture(t, map[string][2]int{"a": {1, 2}, "b": {3, 4}})
	bulk := board.Bulk()

	require.NoError(t, bulk.Begin(rows, timeline.IndexOf(rows, "category:cat")))
	bulk.MoveDays(1)
	updates, result := bulk.Drop()

	errs := RunAll(ctx, actions, updates)
	require.Len(t, errs, 2)
	assert.True(t, board.Bar("a").Updating(), "bars stay pending until applied")

	bulk.Apply(updates, errs, result)
	assert.Equal(t, []string{"b"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, PhaseRolledBack, board.Bar("a").Phase())
	assert.True(t, board.Bar("b").Span().Start.Equal(jan(4)))
}
