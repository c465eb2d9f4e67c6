package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// SpanLabel renders an inclusive day span such as "Jan 3 – Jan 5 (3d)".
func SpanLabel(start, end dates.LocalDay) string {
	days := start.DaysUntil(end) + 1
	if days == 1 {
		return shortDay(start) + " (1d)"
	}
	return shortDay(start) + " – " + shortDay(end) + " (" + strconv.Itoa(days) + "d)"
}

// TaskSpanLabel is SpanLabel for a stored task.
func TaskSpanLabel(t *domain.Task) string {
	start, end := t.Span()
	return SpanLabel(start, end)
}

func shortDay(d dates.LocalDay) string {
	return d.In(time.UTC).Format("Jan 2")
}

// truncate cuts s to width visible cells, adding an ellipsis when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
