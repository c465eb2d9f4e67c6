package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

const (
	// LabelWidth is the width of the row label column.
	LabelWidth = 28
	// CellWidth is the width of one day column in terminal cells.
	CellWidth = 3
)

// BarView is what one row draws across the day grid. It is decoupled from
// domain.Task so the interactive board can render optimistic spans.
type BarView struct {
	Start  dates.LocalDay
	End    dates.LocalDay
	Status domain.TaskStatus
	// Pending bars are drawn hatched until their update resolves.
	Pending bool
	// Aggregate bars belong to category and stage headers.
	Aggregate bool
}

// TimelineData is the input of FormatTimeline.
type TimelineData struct {
	Event    *domain.Event
	Rows     []timeline.Row
	Now      time.Time
	CrewName func(t *domain.Task) string
}

// FormatTimeline renders the whole board as a static chart.
func FormatTimeline(d TimelineData) string {
	var b strings.Builder
	r := d.Event.Range
	b.WriteString(Header(fmt.Sprintf("%s  %s", d.Event.DisplayID(), d.Event.Name)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s · %d days · %d task(s)", r, r.Days(), len(timeline.ScheduledTasks(d.Rows)))))
	b.WriteString("\n\n")
	b.WriteString(DayHeader(r, d.Now))

	today := dates.Today(d.Now)
	var mark *dates.LocalDay
	if r.Contains(today) {
		mark = &today
	}
	for i, row := range d.Rows {
		b.WriteString(padRight(RowLabel(row, false), LabelWidth))
		b.WriteString(RowCells(r, RowBar(d.Rows, i, d.Now), row, mark))
		if row.Task != nil {
			b.WriteString(rowSuffix(row.Task, d.CrewName))
		}
		b.WriteString("\n")
	}
	if len(d.Rows) == 0 {
		b.WriteString(Dim("No active sections."))
		b.WriteString("\n")
	}
	return b.String()
}

func rowSuffix(t *domain.Task, crewName func(*domain.Task) string) string {
	var parts []string
	if crewName != nil {
		if name := crewName(t); name != "" {
			parts = append(parts, name)
		}
	}
	if badge := InviteBadge(t); badge != "" {
		parts = append(parts, badge)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

// RowBar derives the bar of rows[i] from stored task dates: the task span
// for task rows, the segment extent for category and stage headers.
func RowBar(rows []timeline.Row, i int, now time.Time) *BarView {
	row := rows[i]
	switch {
	case row.IsTask() && row.Task != nil:
		start, end := row.Task.Span()
		return &BarView{Start: start, End: end, Status: timeline.TaskStatus(row.Task, now)}
	case row.Kind == timeline.RowCategory || row.Kind == timeline.RowStage:
		seg, ok := timeline.SegmentAt(rows, i)
		if !ok {
			return nil
		}
		return &BarView{Start: seg.Start, End: seg.End, Aggregate: true}
	}
	return nil
}

// DayHeader renders the month line and the day-number line above the grid.
// The column of today is highlighted.
func DayHeader(r dates.Range, now time.Time) string {
	today := dates.Today(now)
	var months, days strings.Builder
	months.WriteString(strings.Repeat(" ", LabelWidth))
	days.WriteString(strings.Repeat(" ", LabelWidth))

	pendingMonth := ""
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		_, _, dd := d.Date()
		if d.Equal(r.From) || dd == 1 {
			pendingMonth = d.In(time.UTC).Format("Jan")
		}
		if pendingMonth != "" {
			label := pendingMonth
			if len(label) > CellWidth {
				label = label[:CellWidth]
			}
			months.WriteString(StyleHeader.Render(padRight(label, CellWidth)))
			pendingMonth = ""
		} else {
			months.WriteString(strings.Repeat(" ", CellWidth))
		}

		num := fmt.Sprintf("%*d", CellWidth, dd)
		if d.Equal(today) {
			days.WriteString(StyleRed.Bold(true).Render(num))
			continue
		}
		days.WriteString(StyleDim.Render(num))
	}
	return strings.TrimRight(months.String(), " ") + "\n" + days.String() + "\n"
}

// RowCells draws the day grid of one row. Placeholder rows have no grid.
// mark, when inside the window, highlights that column.
func RowCells(r dates.Range, bar *BarView, row timeline.Row, mark *dates.LocalDay) string {
	if row.IsPlaceholder() || row.Kind == timeline.RowSection {
		return ""
	}
	return BarCells(r, bar, mark)
}

// BarCells draws bar across the window. A nil bar draws empty cells.
func BarCells(r dates.Range, bar *BarView, mark *dates.LocalDay) string {
	var b strings.Builder
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		glyph, style := " · ", StyleDim
		if bar != nil && !d.Before(bar.Start) && !d.After(bar.End) {
			glyph, style = barGlyph(bar)
		}
		if mark != nil && d.Equal(*mark) {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(glyph))
	}
	return b.String()
}

// EmptyCells draws an empty grid, marking one column.
func EmptyCells(r dates.Range, mark *dates.LocalDay) string {
	return BarCells(r, nil, mark)
}

func barGlyph(bar *BarView) (string, lipgloss.Style) {
	switch {
	case bar.Aggregate:
		return "━━━", StyleDim
	case bar.Pending:
		return "▒▒▒", StatusStyle(bar.Status)
	default:
		return "███", StatusStyle(bar.Status)
	}
}

// RowLabel renders the label column of a row, indented by depth and cut
// to LabelWidth. collapsed only matters for header rows.
func RowLabel(row timeline.Row, collapsed bool) string {
	arrow := "▾ "
	if collapsed {
		arrow = "▸ "
	}
	fit := func(indent, prefix, label string) string {
		room := LabelWidth - len(indent) - lipgloss.Width(prefix) - 1
		return indent + prefix + truncate(label, max(room, 1))
	}
	switch row.Kind {
	case timeline.RowSection:
		return StyleHeader.Render(fit("", arrow, strings.ToUpper(row.Label)))
	case timeline.RowStage:
		return StylePurple.Render(fit("  ", arrow, row.Label))
	case timeline.RowCategory:
		return StyleBold.Render(fit("    ", arrow, row.Label))
	case timeline.RowTask:
		if row.Task == nil {
			return StyleDim.Render(fit("      ", "", row.Label))
		}
		return StyleFg.Render(fit("      ", "", row.Label))
	case timeline.RowManualTask:
		return StyleFg.Render(fit("      ", "✎ ", row.Label))
	case timeline.RowAddTask:
		return StyleDim.Render("      + Add task")
	case timeline.RowAddCategory:
		return StyleDim.Render("      + Add item (undated)")
	default:
		return truncate(row.Label, LabelWidth)
	}
}
