package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func jan(d int) dates.LocalDay { return dates.NewLocalDay(2024, time.January, d) }

func janRange(t *testing.T, from, to int) dates.Range {
	t.Helper()
	r, err := dates.NewRange(jan(from), jan(to))
	require.NoError(t, err)
	return r
}

func task(id, name string, start, end int) *domain.Task {
	return &domain.Task{
		ID:    id,
		Name:  name,
		Kind:  domain.TaskCatalog,
		Start: jan(start).Storage(),
		End:   jan(end).Storage(),
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "NAME"}, [][]string{
		{"a", "Ceremony"},
		{"bbbb", "X"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID    NAME", lines[0])
	assert.Equal(t, "────  ────────", lines[1])
	assert.Equal(t, "a     Ceremony", lines[2])
	assert.Equal(t, "bbbb  X", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestBarCells_DrawsSpanInsideWindow(t *testing.T) {
	r := janRange(t, 1, 5)
	out := stripANSI(BarCells(r, &BarView{Start: jan(2), End: jan(3), Status: domain.TaskPending}, nil))
	assert.Equal(t, " · ██████ ·  · ", out)
}

func TestBarCells_PendingAndAggregateGlyphs(t *testing.T) {
	r := janRange(t, 1, 2)
	assert.Equal(t, "▒▒▒ · ", stripANSI(BarCells(r, &BarView{Start: jan(1), End: jan(1), Pending: true}, nil)))
	assert.Equal(t, "━━━━━━", stripANSI(BarCells(r, &BarView{Start: jan(1), End: jan(2), Aggregate: true}, nil)))
}

func TestEmptyCells_WidthMatchesWindow(t *testing.T) {
	r := janRange(t, 1, 10)
	mark := jan(4)
	out := stripANSI(EmptyCells(r, &mark))
	assert.Equal(t, 10*CellWidth, len([]rune(out)))
}

func TestDayHeader_MonthAndDayNumbers(t *testing.T) {
	r := janRange(t, 30, 33) // Jan 30 .. Feb 2
	out := stripANSI(DayHeader(r, time.Date(2024, 1, 31, 9, 0, 0, 0, time.Local)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Repeat(" ", LabelWidth)+"Jan   Feb", lines[0])
	assert.Equal(t, strings.Repeat(" ", LabelWidth)+" 30 31  1  2", lines[1])
}

func TestRowLabel_IndentsByKind(t *testing.T) {
	assert.Equal(t, "▾ PHOTOGRAPHY", stripANSI(RowLabel(timeline.Row{Kind: timeline.RowSection, Label: "Photography"}, false)))
	assert.Equal(t, "  ▸ Production", stripANSI(RowLabel(timeline.Row{Kind: timeline.RowStage, Label: "Production"}, true)))
	assert.Equal(t, "    ▾ Shoot", stripANSI(RowLabel(timeline.Row{Kind: timeline.RowCategory, Label: "Shoot"}, false)))
	assert.Equal(t, "      ✎ Scout venue", stripANSI(RowLabel(timeline.Row{Kind: timeline.RowManualTask, Label: "Scout venue"}, false)))
	assert.Equal(t, "      + Add task", stripANSI(RowLabel(timeline.Row{Kind: timeline.RowAddTask}, false)))
}

func TestRowLabel_TruncatesLongNames(t *testing.T) {
	row := timeline.Row{Kind: timeline.RowTask, Label: strings.Repeat("x", 60)}
	out := stripANSI(RowLabel(row, false))
	assert.Less(t, len([]rune(out)), LabelWidth)
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestFormatTimeline_RendersRowsAndCrew(t *testing.T) {
	ev := &domain.Event{ID: "ev1", ShortID: "WED24", Name: "Smith Wedding", Range: janRange(t, 1, 5)}
	crewID := "c1"
	ceremony := task("t1", "Ceremony", 2, 3)
	ceremony.CrewMemberID = &crewID
	ceremony.SyncStatus = domain.SyncInvited
	ceremony.InvitationStatus = domain.InvitationPending

	rows := []timeline.Row{
		{Kind: timeline.RowSection, ID: "section:s", Label: "Photography", SectionID: "s"},
		{Kind: timeline.RowStage, ID: "stage:s/production", Label: "Production", SectionID: "s", Stage: domain.StageProduction},
		{Kind: timeline.RowCategory, ID: "category:c", Label: "Shoot", CategoryID: "c"},
		{Kind: timeline.RowTask, ID: "task:i1", Label: "Ceremony", Item: &domain.EventItem{ID: "i1"}, Task: ceremony, CategoryID: "c"},
		{Kind: timeline.RowTask, ID: "task:i2", Label: "Portraits", Item: &domain.EventItem{ID: "i2"}, CategoryID: "c"},
		{Kind: timeline.RowAddTask, ID: "add-task:c", CategoryID: "c"},
	}
	out := stripANSI(FormatTimeline(TimelineData{
		Event: ev,
		Rows:  rows,
		Now:   time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local),
		CrewName: func(t *domain.Task) string {
			if t.CrewMemberID != nil {
				return "Ana"
			}
			return ""
		},
	}))

	assert.Contains(t, out, "WED24")
	assert.Contains(t, out, "2024-01-01..2024-01-05 · 5 days")
	assert.Contains(t, out, "Ana ✉ invited")
	assert.Contains(t, out, "+ Add task")

	lines := strings.Split(out, "\n")
	var ceremonyLine, portraitsLine, categoryLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "Ceremony"):
			ceremonyLine = l
		case strings.Contains(l, "Portraits"):
			portraitsLine = l
		case strings.Contains(l, "▾ Shoot"):
			categoryLine = l
		}
	}
	assert.Contains(t, ceremonyLine, "██████")
	assert.NotContains(t, portraitsLine, "█")
	assert.Contains(t, categoryLine, "━━━━━━", "category header shows the segment extent")
}

func TestFormatTimeline_NoRows(t *testing.T) {
	ev := &domain.Event{ID: "ev1", Name: "Empty", Range: janRange(t, 1, 2)}
	out := stripANSI(FormatTimeline(TimelineData{Event: ev, Now: time.Now()}))
	assert.Contains(t, out, "No active sections.")
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "▲ DELAYED", stripANSI(StatusBadge(domain.TaskDelayed)))
	assert.Equal(t, "✔ COMPLETED", stripANSI(StatusBadge(domain.TaskCompleted)))
}

func TestInviteBadge(t *testing.T) {
	tk := task("t1", "x", 1, 1)
	assert.Empty(t, InviteBadge(tk))

	crew := "c1"
	tk.CrewMemberID = &crew
	tk.SyncStatus = domain.SyncDraft
	assert.Equal(t, "… draft", stripANSI(InviteBadge(tk)))
	tk.InvitationStatus = domain.InvitationDeclined
	assert.Equal(t, "✗ declined", stripANSI(InviteBadge(tk)))
}

func TestSpanLabel(t *testing.T) {
	assert.Equal(t, "Jan 3 (1d)", SpanLabel(jan(3), jan(3)))
	assert.Equal(t, "Jan 3 – Jan 5 (3d)", SpanLabel(jan(3), jan(5)))
}

func TestFormatEventList(t *testing.T) {
	out := stripANSI(FormatEventList([]*domain.Event{
		{ID: "ev1", ShortID: "WED24", Name: "Smith Wedding", Range: janRange(t, 1, 10)},
	}))
	assert.Contains(t, out, "WED24")
	assert.Contains(t, out, "Smith Wedding")
	assert.Contains(t, out, "2024-01-01..2024-01-10")
	assert.Contains(t, out, "10")

	assert.Contains(t, stripANSI(FormatEventList(nil)), "No events yet")
}

func TestFormatEventDetail_CountsStatuses(t *testing.T) {
	ev := &domain.Event{ID: "ev1", ShortID: "WED24", Name: "Smith Wedding", Range: janRange(t, 1, 10),
		ActiveStages: []domain.Stage{domain.StageProduction}}
	done := task("t3", "Albums", 1, 2)
	now := time.Now()
	done.CompletedAt = &now
	out := stripANSI(FormatEventDetail(ev, []*domain.Task{task("t1", "a", 1, 2), task("t2", "b", 3, 4), done},
		time.Date(2024, 1, 5, 12, 0, 0, 0, time.Local)))
	assert.Contains(t, out, "Stages: Production")
	assert.Regexp(t, `▲ DELAYED\s+2`, out)
	assert.Regexp(t, `✔ COMPLETED\s+1`, out)
}

func TestFormatRangeConflict_NamesTasks(t *testing.T) {
	check := timeline.ValidateRangeChange(janRange(t, 3, 10), timeline.SpansOf([]*domain.Task{
		task("t1", "Ceremony", 1, 2),
		task("t2", "Portraits", 4, 5),
	}))
	out := stripANSI(FormatRangeConflict(check, []*domain.Task{task("t1", "Ceremony", 1, 2)}))
	assert.Contains(t, out, "1 task(s) fall outside 2024-01-03..2024-01-10")
	assert.Contains(t, out, "• Ceremony Jan 1 – Jan 2 (2d)")
}
