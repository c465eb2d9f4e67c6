package gesture

import (
	"context"
	"errors"

	"github.com/alexanderramin/eventboard/internal/timeline"
)

// BulkDragState exists only while a category is being dragged.
type BulkDragState struct {
	SegmentID  string
	TaskIDs    []string
	OffsetDays int

	claimed map[string]bool
}

func (s *BulkDragState) Claims(taskID string) bool { return s.claimed[taskID] }

// BulkDragStore is the one place the current bulk drag lives. Bars in the
// dragged segment subscribe to it instead of receiving the offset through
// every layer of rendering.
type BulkDragStore struct {
	state  *BulkDragState
	subs   map[int]func(*BulkDragState)
	nextID int
}

func NewBulkDragStore() *BulkDragStore {
	return &BulkDragStore{subs: make(map[int]func(*BulkDragState))}
}

// Subscribe registers fn for every state change. fn receives nil when the
// drag ends. The returned func unsubscribes.
func (s *BulkDragStore) Subscribe(fn func(*BulkDragState)) func() {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Current returns the active drag, or nil.
func (s *BulkDragStore) Current() *BulkDragState { return s.state }

// Begin claims the segment's tasks exclusively until End.
func (s *BulkDragStore) Begin(seg timeline.Segment) error {
	if s.state != nil {
		return ErrGestureActive
	}
	claimed := make(map[string]bool, len(seg.TaskIDs))
	for _, id := range seg.TaskIDs {
		claimed[id] = true
	}
	s.state = &BulkDragState{
		SegmentID: seg.HeaderID,
		TaskIDs:   append([]string(nil), seg.TaskIDs...),
		claimed:   claimed,
	}
	s.broadcast()
	return nil
}

func (s *BulkDragStore) SetOffset(days int) {
	if s.state == nil || s.state.OffsetDays == days {
		return
	}
	s.state.OffsetDays = days
	s.broadcast()
}

// End releases the claim and returns the final state.
func (s *BulkDragStore) End() *BulkDragState {
	final := s.state
	s.state = nil
	s.broadcast()
	return final
}

func (s *BulkDragStore) broadcast() {
	for _, fn := range s.subs {
		fn(s.state)
	}
}

// BulkResult reports a bulk drop. Tasks are persisted one call each and a
// failure is not rolled back on the others; Failed tells the caller what to
// reconcile.
type BulkResult struct {
	SegmentID  string
	OffsetDays int
	Succeeded  []string
	Failed     []*TaskUpdateError
	// Rejected is set when the offset would move any task outside the
	// window. Nothing is issued in that case.
	Rejected   bool
	OutOfRange []string
}

// Err joins the per-task failures, or returns nil.
func (r *BulkResult) Err() error {
	if r == nil || len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// BulkDrag moves every scheduled task under a category or stage header by
// the same number of days.
type BulkDrag struct {
	board *Board
	store *BulkDragStore
}

func (c *BulkDrag) Active() bool { return c.store.Current() != nil }

// Begin starts a drag from the header row at index.
func (c *BulkDrag) Begin(rows []timeline.Row, index int) error {
	seg, ok := timeline.SegmentAt(rows, index)
	if !ok {
		return ErrNoGesture
	}
	for _, id := range seg.TaskIDs {
		bar := c.board.Bar(id)
		switch {
		case bar == nil:
		case bar.Updating():
			return ErrBusy
		case bar.Gesturing():
			return ErrGestureActive
		}
	}
	return c.store.Begin(seg)
}

// Move sets the group offset from the pointer displacement in pixels,
// rounded to whole days.
func (c *BulkDrag) Move(dx float64) {
	c.store.SetOffset(c.board.grid.DaysFromWidth(dx))
}

// MoveDays sets the group offset directly.
func (c *BulkDrag) MoveDays(days int) { c.store.SetOffset(days) }

// Cancel discards the drag; nothing is issued.
func (c *BulkDrag) Cancel() { c.store.End() }

// Drop ends the drag and applies the offset optimistically to every bar in
// the segment. The returned updates still have to be run and resolved; see
// Execute. If any task would leave the window the whole drop is rejected.
func (c *BulkDrag) Drop() ([]Update, *BulkResult) {
	state := c.store.End()
	if state == nil {
		return nil, &BulkResult{}
	}
	result := &BulkResult{SegmentID: state.SegmentID, OffsetDays: state.OffsetDays}
	if state.OffsetDays == 0 {
		return nil, result
	}

	r := c.board.grid.Range
	for _, id := range state.TaskIDs {
		bar := c.board.Bar(id)
		if bar == nil {
			continue
		}
		next := bar.Span().shift(state.OffsetDays)
		if !timeline.IsInRange(next.Start, r) || !timeline.IsInRange(next.End, r) {
			result.OutOfRange = append(result.OutOfRange, id)
		}
	}
	if len(result.OutOfRange) > 0 {
		result.Rejected = true
		return nil, result
	}

	var updates []Update
	for _, id := range state.TaskIDs {
		bar := c.board.Bar(id)
		if bar == nil {
			continue
		}
		u, ok := bar.ShiftBy(state.OffsetDays)
		if !ok {
			// Reported so the group move is never silently partial.
			result.Failed = append(result.Failed, &TaskUpdateError{TaskID: id, Kind: KindBulkMove, Err: ErrBusy})
			continue
		}
		updates = append(updates, u)
	}
	return updates, result
}

// Execute runs updates one call per task, resolves each bar and records
// the outcome in result.
func (c *BulkDrag) Execute(ctx context.Context, actions TaskActions, updates []Update, result *BulkResult) {
	c.Apply(updates, RunAll(ctx, actions, updates), result)
}

// RunAll issues updates one call per task and returns one error slot per
// update. It touches no bar, so it may run off the UI goroutine.
func RunAll(ctx context.Context, actions TaskActions, updates []Update) []error {
	errs := make([]error, len(updates))
	for i, u := range updates {
		errs[i] = Run(ctx, actions, nil, u)
	}
	return errs
}

// Apply resolves each bar with its outcome from RunAll and records it in
// result.
func (c *BulkDrag) Apply(updates []Update, errs []error, result *BulkResult) {
	for i, u := range updates {
		var err error
		if i < len(errs) {
			err = errs[i]
		}
		c.board.Resolve(u, err)
		if err != nil {
			var tue *TaskUpdateError
			if !errors.As(err, &tue) {
				tue = &TaskUpdateError{TaskID: u.TaskID, Kind: u.Kind, Err: err}
			}
			result.Failed = append(result.Failed, tue)
			continue
		}
		result.Succeeded = append(result.Succeeded, u.TaskID)
	}
}
