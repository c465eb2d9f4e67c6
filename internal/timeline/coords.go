package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
)

// DefaultColumnWidth is the pixel width of one day column.
const DefaultColumnWidth = 60.0

// Grid maps calendar days onto horizontal pixels. Column i covers the
// half-open pixel interval [i*ColumnWidth, (i+1)*ColumnWidth) and holds
// Range.From + i days. A nil Range means the board has no window yet.
type Grid struct {
	Range       *dates.Range
	ColumnWidth float64
}

func NewGrid(r dates.Range, columnWidth float64) Grid {
	if columnWidth <= 0 {
		columnWidth = DefaultColumnWidth
	}
	return Grid{Range: &r, ColumnWidth: columnWidth}
}

// PositionFromDate returns the left pixel edge of d's column. Days before
// Range.From yield negative positions. Without a range it returns 0.
func (g Grid) PositionFromDate(d dates.LocalDay) float64 {
	if g.Range == nil {
		return 0
	}
	return float64(g.Range.From.DaysUntil(d)) * g.ColumnWidth
}

// DateFromPosition returns the day whose column contains px. The day count
// is floored, so any pixel inside a column maps to that column's day.
func (g Grid) DateFromPosition(px float64) dates.LocalDay {
	if g.Range == nil || g.ColumnWidth <= 0 {
		return dates.LocalDay{}
	}
	return g.Range.From.AddDays(int(math.Floor(px / g.ColumnWidth)))
}

// WidthFromDuration is the pixel width of the inclusive span start..end.
// A single-day task is exactly one column wide.
func (g Grid) WidthFromDuration(start, end dates.LocalDay) float64 {
	return float64(start.DaysUntil(end)+1) * g.ColumnWidth
}

// DaysFromWidth converts a pixel width back to a whole number of days.
func (g Grid) DaysFromWidth(width float64) int {
	if g.ColumnWidth <= 0 {
		return 0
	}
	return int(math.Round(width / g.ColumnWidth))
}

// Snap rounds a pixel position or width to the nearest column boundary.
func (g Grid) Snap(px float64) float64 {
	if g.ColumnWidth <= 0 {
		return px
	}
	return math.Round(px/g.ColumnWidth) * g.ColumnWidth
}

// TodayPosition returns the pixel position of today's column, or false when
// today is outside the window.
func (g Grid) TodayPosition(now time.Time) (float64, bool) {
	if g.Range == nil {
		return 0, false
	}
	today := dates.Today(now)
	if !g.Range.Contains(today) {
		return 0, false
	}
	return g.PositionFromDate(today), true
}

// Columns is the number of day columns in the window.
func (g Grid) Columns() int {
	if g.Range == nil {
		return 0
	}
	return g.Range.Days()
}

// IsInRange reports whether d is inside r, bounds included. A nil range
// accepts nothing.
func IsInRange(d dates.LocalDay, r *dates.Range) bool {
	if r == nil {
		return false
	}
	return r.Contains(d)
}
