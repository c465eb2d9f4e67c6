package gesture

import (
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

// Board owns the task bars of one timeline and the shared bulk drag store.
type Board struct {
	grid   timeline.Grid
	limits Thresholds
	bars   map[string]*TaskBar
	store  *BulkDragStore
	bulk   *BulkDrag
}

func NewBoard(grid timeline.Grid, limits Thresholds, tasks []*domain.Task) *Board {
	b := &Board{
		grid:   grid,
		limits: limits,
		bars:   make(map[string]*TaskBar),
		store:  NewBulkDragStore(),
	}
	b.bulk = &BulkDrag{board: b, store: b.store}
	b.Sync(tasks)
	return b
}

func (b *Board) Grid() timeline.Grid       { return b.grid }
func (b *Board) Bulk() *BulkDrag           { return b.bulk }
func (b *Board) BulkStore() *BulkDragStore { return b.store }

// Bar returns the bar for taskID, or nil.
func (b *Board) Bar(taskID string) *TaskBar { return b.bars[taskID] }

// Sync reconciles bars with the owner's latest tasks: new tasks get bars,
// known ones adopt the fresh copy, missing ones are dropped.
func (b *Board) Sync(tasks []*domain.Task) {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = true
		if bar, ok := b.bars[t.ID]; ok {
			bar.SetTask(t)
			continue
		}
		bar := NewTaskBar(t, b.grid, b.limits)
		bar.Attach(b.store)
		b.bars[t.ID] = bar
	}
	for id, bar := range b.bars {
		if !seen[id] {
			bar.Detach()
			delete(b.bars, id)
		}
	}
}

// SetGrid switches every bar to a new window.
func (b *Board) SetGrid(g timeline.Grid) {
	b.grid = g
	for _, bar := range b.bars {
		bar.SetGrid(g)
	}
}

// Resolve routes a persistence outcome to its bar. Deleted bars are
// removed once their delete succeeds.
func (b *Board) Resolve(u Update, err error) {
	bar := b.bars[u.TaskID]
	if bar == nil {
		return
	}
	bar.Resolve(u, err)
	if bar.Deleted() {
		bar.Detach()
		delete(b.bars, u.TaskID)
	}
}

// ClickCell turns a click at pixel x on an unscheduled item row into a
// create update. Rows that already have a task, placeholders and clicks
// outside the window produce nothing.
func (b *Board) ClickCell(row timeline.Row, x float64) (Update, bool) {
	if row.Kind != timeline.RowTask || row.Item == nil || row.Task != nil {
		return Update{}, false
	}
	day := b.grid.DateFromPosition(x)
	if !timeline.IsInRange(day, b.grid.Range) {
		return Update{}, false
	}
	return Update{
		Kind:          KindCreate,
		TaskID:        row.Item.ID,
		ItemID:        row.Item.ID,
		CatalogItemID: row.Item.CatalogItemID,
		ItemName:      row.Item.Name,
		Start:         day.Storage(),
		End:           day.Storage(),
	}, true
}
