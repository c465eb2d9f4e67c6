package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/alexanderramin/eventboard/internal/service"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

// errOutsideWindow is returned when a command would move a task off the
// event's timeline.
var errOutsideWindow = errors.New("outside the event range")

// session is one event's gesture board for non-interactive commands. Day
// deltas from flags are turned into pixel gestures on the same bars the
// interactive board uses, so thresholds, snapping and window checks match.
type session struct {
	app   *App
	event *domain.Event
	data  *service.Board
	board *gesture.Board
	rows  []timeline.Row
}

func openSession(ctx context.Context, app *App, eventRef string) (*session, error) {
	ev, err := resolveEvent(ctx, app, eventRef)
	if err != nil {
		return nil, err
	}
	data, err := app.Schedule.LoadBoard(ctx, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("loading board: %w", err)
	}
	grid := data.Grid(app.settings().ColumnWidth)
	return &session{
		app:   app,
		event: data.Event,
		data:  data,
		board: gesture.NewBoard(grid, app.thresholds(), data.Tasks),
		rows:  data.Rows(),
	}, nil
}

func (s *session) column() float64 { return s.board.Grid().ColumnWidth }

func (s *session) bar(t *domain.Task) (*gesture.TaskBar, error) {
	bar := s.board.Bar(t.ID)
	if bar == nil {
		return nil, fmt.Errorf("task %q is not on the board", t.Name)
	}
	return bar, nil
}

func (s *session) commit(ctx context.Context, bar *gesture.TaskBar, u gesture.Update) error {
	return bar.Commit(ctx, s.app.Schedule, s.app.Schedule, u)
}

// move drags the bar by days columns.
func (s *session) move(ctx context.Context, t *domain.Task, days int) (gesture.Span, error) {
	bar, err := s.bar(t)
	if err != nil {
		return gesture.Span{}, err
	}
	if days == 0 {
		return bar.Span(), nil
	}
	if err := bar.BeginDrag(); err != nil {
		return gesture.Span{}, err
	}
	u, ok := bar.EndDrag(bar.X() + float64(days)*s.column())
	if !ok {
		return gesture.Span{}, fmt.Errorf("moving %q by %d day(s): %w %s", t.Name, days, errOutsideWindow, s.event.Range)
	}
	if err := s.commit(ctx, bar, u); err != nil {
		return gesture.Span{}, err
	}
	return bar.Span(), nil
}

// resize grows (days > 0) or shrinks the bar at edge. The result is at
// least one day long.
func (s *session) resize(ctx context.Context, t *domain.Task, edge gesture.Edge, days int) (gesture.Span, error) {
	bar, err := s.bar(t)
	if err != nil {
		return gesture.Span{}, err
	}
	if days == 0 {
		return bar.Span(), nil
	}
	if err := bar.BeginResize(edge); err != nil {
		return gesture.Span{}, err
	}
	before := bar.Span()
	u, ok := bar.EndResize(bar.Width() + float64(days)*s.column())
	if !ok {
		if days < 0 && before.Days() == 1 {
			return before, nil
		}
		return gesture.Span{}, fmt.Errorf("resizing %q by %d day(s): %w %s", t.Name, days, errOutsideWindow, s.event.Range)
	}
	if err := s.commit(ctx, bar, u); err != nil {
		return gesture.Span{}, err
	}
	return bar.Span(), nil
}

// setCompleted toggles the bar only when its state differs. It reports
// whether anything changed.
func (s *session) setCompleted(ctx context.Context, t *domain.Task, completed bool) (bool, error) {
	bar, err := s.bar(t)
	if err != nil {
		return false, err
	}
	if bar.Completed() == completed {
		return false, nil
	}
	u, err := bar.ToggleComplete()
	if err != nil {
		return false, err
	}
	return true, s.commit(ctx, bar, u)
}

func (s *session) remove(ctx context.Context, t *domain.Task) error {
	bar, err := s.bar(t)
	if err != nil {
		return err
	}
	u, err := bar.Delete()
	if err != nil {
		return err
	}
	return s.commit(ctx, bar, u)
}

// schedule clicks the cell of day on the item's row.
func (s *session) schedule(ctx context.Context, item *domain.EventItem, day dates.LocalDay) error {
	idx := timeline.IndexOf(s.rows, "task:"+item.ID)
	if idx < 0 {
		return fmt.Errorf("item %q is not shown on the board (check active sections and stages)", item.Name)
	}
	row := s.rows[idx]
	if row.Task != nil {
		return fmt.Errorf("item %q: %w", item.Name, service.ErrAlreadyScheduled)
	}
	u, ok := s.board.ClickCell(row, s.board.Grid().PositionFromDate(day))
	if !ok {
		return fmt.Errorf("scheduling %q on %s: %w %s", item.Name, day, errOutsideWindow, s.event.Range)
	}
	return gesture.Run(ctx, s.app.Schedule, nil, u)
}

// shift bulk-drags every scheduled task under the header row by days.
func (s *session) shift(ctx context.Context, headerID, label string, days int) (*gesture.BulkResult, error) {
	idx := timeline.IndexOf(s.rows, headerID)
	if idx < 0 {
		return nil, fmt.Errorf("%s is not shown on the board (check active sections and stages)", label)
	}
	bulk := s.board.Bulk()
	if err := bulk.Begin(s.rows, idx); err != nil {
		if errors.Is(err, gesture.ErrNoGesture) {
			return nil, fmt.Errorf("%s has no scheduled tasks", label)
		}
		return nil, err
	}
	bulk.Move(float64(days) * s.column())
	updates, result := bulk.Drop()
	if result.Rejected {
		return result, fmt.Errorf("shifting %s by %d day(s) would move %d task(s) %w %s",
			label, days, len(result.OutOfRange), errOutsideWindow, s.event.Range)
	}
	bulk.Execute(ctx, s.app.Schedule, updates, result)
	return result, result.Err()
}
