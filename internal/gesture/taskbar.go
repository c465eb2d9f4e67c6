package gesture

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

// Thresholds are the pixel distances below which a gesture is noise.
type Thresholds struct {
	DragPx   float64
	ResizePx float64
}

var DefaultThresholds = Thresholds{DragPx: 5, ResizePx: 10}

// Phase of a bar's optimistic state.
//
//	Committed -> Pending -> Committed   (update accepted)
//	                     -> RolledBack  (update rejected, span restored)
type Phase int

const (
	PhaseCommitted Phase = iota
	PhasePending
	PhaseRolledBack
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseRolledBack:
		return "rolled_back"
	default:
		return "committed"
	}
}

type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

type gestureKind int

const (
	gestureIdle gestureKind = iota
	gestureDrag
	gestureResize
)

// Span is an inclusive pair of days.
type Span struct {
	Start dates.LocalDay
	End   dates.LocalDay
}

func (s Span) Days() int { return s.Start.DaysUntil(s.End) + 1 }

func (s Span) Equal(o Span) bool { return s.Start.Equal(o.Start) && s.End.Equal(o.End) }

func (s Span) shift(days int) Span {
	return Span{Start: s.Start.AddDays(days), End: s.End.AddDays(days)}
}

// TaskBar is the interactive element for one task. It keeps the committed
// span (what the owner last persisted) apart from the local span (what the
// user sees) so a failed update can snap back without a reload.
type TaskBar struct {
	task   domain.Task
	grid   timeline.Grid
	limits Thresholds

	committed Span
	local     Span
	completed bool
	phase     Phase
	deleted   bool

	gesture     gestureKind
	edge        Edge
	originX     float64
	originWidth float64

	seq uint64

	bulkOffset  int
	claimed     bool
	unsubscribe func()
}

func NewTaskBar(t *domain.Task, grid timeline.Grid, limits Thresholds) *TaskBar {
	start, end := t.Span()
	span := Span{Start: start, End: end}
	return &TaskBar{
		task:      *t,
		grid:      grid,
		limits:    limits,
		committed: span,
		local:     span,
		completed: t.IsCompleted(),
	}
}

func (b *TaskBar) ID() string { return b.task.ID }

// Task returns the owner's last copy of the task with the local span and
// completion applied.
func (b *TaskBar) Task() domain.Task {
	t := b.task
	t.Start = b.local.Start.Storage()
	t.End = b.local.End.Storage()
	if b.completed && t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	} else if !b.completed {
		t.CompletedAt = nil
	}
	return t
}

func (b *TaskBar) Span() Span          { return b.local }
func (b *TaskBar) Gesturing() bool     { return b.gesture != gestureIdle }
func (b *TaskBar) Committed() Span     { return b.committed }
func (b *TaskBar) Phase() Phase        { return b.phase }
func (b *TaskBar) Updating() bool      { return b.phase == PhasePending }
func (b *TaskBar) Completed() bool     { return b.completed }
func (b *TaskBar) Deleted() bool       { return b.deleted }
func (b *TaskBar) BulkOffset() int     { return b.bulkOffset }
func (b *TaskBar) Claimed() bool       { return b.claimed }
func (b *TaskBar) Grid() timeline.Grid { return b.grid }

// X is the rendered left edge, including any bulk drag offset.
func (b *TaskBar) X() float64 {
	return b.grid.PositionFromDate(b.local.Start) + float64(b.bulkOffset)*b.grid.ColumnWidth
}

func (b *TaskBar) Width() float64 {
	return b.grid.WidthFromDuration(b.local.Start, b.local.End)
}

// Status is recomputed on every call from now.
func (b *TaskBar) Status(now time.Time) domain.TaskStatus {
	return timeline.ComputeStatus(b.local.Start, b.local.End, b.completed, now)
}

// SetTask adopts a fresh copy from the owner. While an update is pending
// the local span is kept, since the newest optimistic value wins over
// whatever the owner reloaded.
func (b *TaskBar) SetTask(t *domain.Task) {
	b.task = *t
	start, end := t.Span()
	b.committed = Span{Start: start, End: end}
	if b.phase != PhasePending {
		b.local = b.committed
		b.completed = t.IsCompleted()
	}
}

// SetGrid replaces the coordinate grid after the window changed.
func (b *TaskBar) SetGrid(g timeline.Grid) { b.grid = g }

// Attach subscribes the bar to bulk drags so it follows the group offset
// while its task is claimed.
func (b *TaskBar) Attach(store *BulkDragStore) {
	b.Detach()
	b.unsubscribe = store.Subscribe(func(state *BulkDragState) {
		if state != nil && state.Claims(b.task.ID) {
			b.claimed = true
			b.bulkOffset = state.OffsetDays
			return
		}
		b.claimed = false
		b.bulkOffset = 0
	})
}

func (b *TaskBar) Detach() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.claimed = false
	b.bulkOffset = 0
}

func (b *TaskBar) canStart() error {
	switch {
	case b.phase == PhasePending:
		return ErrBusy
	case b.gesture != gestureIdle:
		return ErrGestureActive
	case b.claimed:
		return ErrClaimed
	}
	return nil
}

// BeginDrag records the bar's current x.
func (b *TaskBar) BeginDrag() error {
	if err := b.canStart(); err != nil {
		return err
	}
	b.gesture = gestureDrag
	b.originX = b.X()
	return nil
}

// EndDrag finishes a horizontal move at pixel x. It returns false when the
// move is discarded: displacement within the drag threshold, a move that
// snaps back to the same column, or a result outside the window. In that
// case the bar keeps its span and nothing needs persisting.
func (b *TaskBar) EndDrag(x float64) (Update, bool) {
	if b.gesture != gestureDrag {
		return Update{}, false
	}
	b.gesture = gestureIdle
	if b.claimed {
		return Update{}, false
	}

	if math.Abs(x-b.originX) <= b.limits.DragPx {
		return Update{}, false
	}
	newStart := b.grid.DateFromPosition(b.grid.Snap(x))
	delta := b.local.Start.DaysUntil(newStart)
	if delta == 0 {
		return Update{}, false
	}
	return b.propose(KindMove, b.local.shift(delta), nil)
}

// BeginResize records the bar's width and x for the given handle.
func (b *TaskBar) BeginResize(edge Edge) error {
	if err := b.canStart(); err != nil {
		return err
	}
	b.gesture = gestureResize
	b.edge = edge
	b.originX = b.X()
	b.originWidth = b.Width()
	return nil
}

// EndResize finishes a resize at the given pixel width. The width snaps to
// whole columns with a minimum of one day. The left handle moves the start
// and holds the end; the right handle holds the start.
func (b *TaskBar) EndResize(width float64) (Update, bool) {
	if b.gesture != gestureResize {
		return Update{}, false
	}
	b.gesture = gestureIdle
	if b.claimed {
		return Update{}, false
	}

	if math.Abs(width-b.originWidth) < b.limits.ResizePx {
		return Update{}, false
	}
	days := b.grid.DaysFromWidth(b.grid.Snap(width))
	if days < 1 {
		days = 1
	}

	next := b.local
	if b.edge == EdgeLeft {
		next.Start = b.local.End.AddDays(-(days - 1))
	} else {
		next.End = b.local.Start.AddDays(days - 1)
	}
	if next.Equal(b.local) {
		return Update{}, false
	}

	var patch *ManualTaskPatch
	if b.task.Kind == domain.TaskManual {
		start, end := next.Start.Storage(), next.End.Storage()
		patch = &ManualTaskPatch{Start: &start, End: &end, DurationDays: &days}
	}
	return b.propose(KindResize, next, patch)
}

// Cancel abandons the current gesture without side effects.
func (b *TaskBar) Cancel() { b.gesture = gestureIdle }

// ShiftBy is the bulk drag entry point: it moves the bar by a whole number
// of days, bypassing pixel thresholds. The window check still applies.
func (b *TaskBar) ShiftBy(days int) (Update, bool) {
	if days == 0 || b.phase == PhasePending {
		return Update{}, false
	}
	return b.propose(KindBulkMove, b.local.shift(days), nil)
}

func (b *TaskBar) propose(kind UpdateKind, next Span, patch *ManualTaskPatch) (Update, bool) {
	if !timeline.IsInRange(next.Start, b.grid.Range) || !timeline.IsInRange(next.End, b.grid.Range) {
		return Update{}, false
	}
	b.seq++
	b.local = next
	b.phase = PhasePending
	return Update{
		Kind:   kind,
		TaskID: b.task.ID,
		Seq:    b.seq,
		Start:  next.Start.Storage(),
		End:    next.End.Storage(),
		Manual: patch,
	}, true
}

// ToggleComplete flips completion optimistically. Dates are untouched.
func (b *TaskBar) ToggleComplete() (Update, error) {
	if err := b.canStart(); err != nil {
		return Update{}, err
	}
	b.seq++
	b.completed = !b.completed
	b.phase = PhasePending
	return Update{Kind: KindToggle, TaskID: b.task.ID, Seq: b.seq, Completed: b.completed}, nil
}

// Delete prepares removal of the scheduling record. The bar stays visible
// until the call succeeds.
func (b *TaskBar) Delete() (Update, error) {
	if err := b.canStart(); err != nil {
		return Update{}, err
	}
	b.seq++
	b.phase = PhasePending
	return Update{Kind: KindDelete, TaskID: b.task.ID, Seq: b.seq}, nil
}

// Resolve applies the outcome of u. A response for an older Seq is stale:
// on success it only advances the committed span, on failure it is
// ignored, and the local span is left alone either way.
func (b *TaskBar) Resolve(u Update, err error) {
	if u.Seq != b.seq {
		if err == nil && u.Kind != KindToggle && u.Kind != KindDelete {
			b.committed = Span{Start: u.Start.Local(), End: u.End.Local()}
		}
		return
	}

	if err != nil {
		switch u.Kind {
		case KindToggle:
			b.completed = !u.Completed
		case KindDelete:
		default:
			b.local = b.committed
		}
		b.phase = PhaseRolledBack
		return
	}

	switch u.Kind {
	case KindDelete:
		b.deleted = true
	case KindToggle:
		if b.completed {
			now := time.Now().UTC()
			b.task.CompletedAt = &now
		} else {
			b.task.CompletedAt = nil
		}
	default:
		b.committed = b.local
		b.task.Start, b.task.End = u.Start, u.End
	}
	b.phase = PhaseCommitted
}

// Commit runs u synchronously and resolves it. The error is returned for
// the caller to surface; the bar is already consistent.
func (b *TaskBar) Commit(ctx context.Context, actions TaskActions, patcher ManualTaskPatcher, u Update) error {
	err := Run(ctx, actions, patcher, u)
	b.Resolve(u, err)
	return err
}
