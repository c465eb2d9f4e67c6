package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/cli/formatter"
	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/alexanderramin/eventboard/internal/service"
	"github.com/alexanderramin/eventboard/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type boardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Grab        key.Binding
	GrowRight   key.Binding
	ShrinkRight key.Binding
	GrowLeft    key.Binding
	ShrinkLeft  key.Binding
	Bulk        key.Binding
	Cancel      key.Binding
	Complete    key.Binding
	Delete      key.Binding
	Reload      key.Binding
	Quit        key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "day / nudge")),
		Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "day / nudge")),
		Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fold / schedule")),
		Grab:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab / drop")),
		GrowRight:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "end +1")),
		ShrinkRight: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "end -1")),
		GrowLeft:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "start -1")),
		ShrinkLeft:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "start +1")),
		Bulk:        key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bulk grab / drop")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Complete:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "done")),
		Delete:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Left, k.Bulk, k.Complete, k.Delete, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.Grab, k.GrowRight, k.ShrinkRight, k.GrowLeft, k.ShrinkLeft},
		{k.Bulk, k.Cancel, k.Complete, k.Delete, k.Reload, k.Quit},
	}
}

// Messages returned by the board's commands.
type (
	boardLoadedMsg struct {
		data *service.Board
		err  error
	}
	updateDoneMsg struct {
		update gesture.Update
		err    error
	}
	bulkDoneMsg struct {
		updates []gesture.Update
		errs    []error
		result  *gesture.BulkResult
	}
)

// grabState is a keyboard drag in progress: x follows h/l presses until
// the bar is dropped.
type grabState struct {
	taskID  string
	originX float64
	x       float64
}

// boardModel is the interactive timeline. Gesture state lives in a
// gesture.Board; persistence runs in commands whose results come back as
// messages and resolve the bars here, on the UI goroutine.
type boardModel struct {
	ctx     context.Context
	app     *App
	eventID string

	data    *service.Board
	board   *gesture.Board
	rows    []timeline.Row
	expand  timeline.Expansion
	visible []timeline.Row

	cursor int
	day    int

	grab   *grabState
	bulkDx float64

	inflight int
	status   string
	err      error

	keys          boardKeyMap
	help          help.Model
	width, height int
}

func newBoardModel(ctx context.Context, app *App, data *service.Board) *boardModel {
	m := &boardModel{
		ctx:     ctx,
		app:     app,
		eventID: data.Event.ID,
		keys:    defaultBoardKeys(),
		help:    help.New(),
	}
	m.setData(data)
	if px, ok := m.board.Grid().TodayPosition(app.now()); ok {
		m.day = int(px / m.column())
	}
	return m
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("reloading board: %w", msg.err)
			return m, nil
		}
		m.setData(msg.data)
		return m, nil

	case updateDoneMsg:
		m.inflight--
		m.board.Resolve(msg.update, msg.err)
		if msg.err != nil {
			m.err = msg.err
			m.status = "Change rolled back"
		} else {
			m.err = nil
			m.status = "Saved"
		}
		return m, m.reload()

	case bulkDoneMsg:
		m.inflight--
		m.board.Bulk().Apply(msg.updates, msg.errs, msg.result)
		m.status = fmt.Sprintf("Moved %d task(s) by %+d day(s)", len(msg.result.Succeeded), msg.result.OffsetDays)
		m.err = msg.result.Err()
		return m, m.reload()
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.cancel()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		m.horizontal(-1)
	case key.Matches(msg, m.keys.Right):
		m.horizontal(1)
	case key.Matches(msg, m.keys.Enter):
		return m, m.enter()
	case key.Matches(msg, m.keys.Grab):
		return m, m.grabOrDrop()
	case key.Matches(msg, m.keys.GrowRight):
		return m, m.resize(gesture.EdgeRight, 1)
	case key.Matches(msg, m.keys.ShrinkRight):
		return m, m.resize(gesture.EdgeRight, -1)
	case key.Matches(msg, m.keys.GrowLeft):
		return m, m.resize(gesture.EdgeLeft, 1)
	case key.Matches(msg, m.keys.ShrinkLeft):
		return m, m.resize(gesture.EdgeLeft, -1)
	case key.Matches(msg, m.keys.Bulk):
		return m, m.bulk()
	case key.Matches(msg, m.keys.Complete):
		return m, m.toggleComplete()
	case key.Matches(msg, m.keys.Delete):
		return m, m.remove()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}
	return m, nil
}

// ── state ────────────────────────────────────────────────────────────────────

func (m *boardModel) setData(data *service.Board) {
	grid := data.Grid(m.app.settings().ColumnWidth)
	if m.board == nil {
		m.board = gesture.NewBoard(grid, m.app.thresholds(), data.Tasks)
	} else {
		if !sameRange(m.data.Event.Range, data.Event.Range) {
			m.board.SetGrid(grid)
		}
		m.board.Sync(data.Tasks)
	}
	m.data = data
	m.rows = data.Rows()
	m.mergeExpansion()
	m.refreshVisible()
	if cols := grid.Columns(); m.day >= cols {
		m.day = max(cols-1, 0)
	}
}

func sameRange(a, b dates.Range) bool {
	return a.From.Equal(b.From) && a.To.Equal(b.To)
}

// mergeExpansion opens headers that appeared since the last load and keeps
// the state of known ones.
func (m *boardModel) mergeExpansion() {
	fresh := timeline.ExpandAll(m.rows)
	if m.expand.Sections == nil {
		m.expand = fresh
		return
	}
	for id := range fresh.Sections {
		if _, ok := m.expand.Sections[id]; !ok {
			m.expand.Sections[id] = true
		}
	}
	for id := range fresh.Stages {
		if _, ok := m.expand.Stages[id]; !ok {
			m.expand.Stages[id] = true
		}
	}
}

func (m *boardModel) refreshVisible() {
	var current string
	if m.cursor < len(m.visible) {
		current = m.visible[m.cursor].ID
	}
	m.visible = m.expand.Visible(m.rows)
	if idx := timeline.IndexOf(m.visible, current); idx >= 0 {
		m.cursor = idx
		return
	}
	m.cursor = min(m.cursor, max(len(m.visible)-1, 0))
}

func (m *boardModel) currentRow() (timeline.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return timeline.Row{}, false
	}
	return m.visible[m.cursor], true
}

func (m *boardModel) currentBar() *gesture.TaskBar {
	row, ok := m.currentRow()
	if !ok || !row.IsTask() || row.Task == nil {
		return nil
	}
	return m.board.Bar(row.Task.ID)
}

func (m *boardModel) column() float64 { return m.board.Grid().ColumnWidth }

func (m *boardModel) cursorDay() dates.LocalDay {
	return m.data.Event.Range.From.AddDays(m.day)
}

// ── actions ──────────────────────────────────────────────────────────────────

func (m *boardModel) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
}

// horizontal nudges the grabbed bar or the bulk group by one column, or
// moves the day cursor when nothing is held.
func (m *boardModel) horizontal(delta int) {
	switch {
	case m.grab != nil:
		m.grab.x += float64(delta) * m.column()
	case m.board.Bulk().Active():
		m.bulkDx += float64(delta) * m.column()
		m.board.Bulk().Move(m.bulkDx)
	default:
		cols := m.board.Grid().Columns()
		m.day = min(max(m.day+delta, 0), max(cols-1, 0))
	}
}

func (m *boardModel) cancel() {
	switch {
	case m.board.Bulk().Active():
		m.board.Bulk().Cancel()
		m.bulkDx = 0
		m.status = "Bulk drag cancelled"
	case m.grab != nil:
		if bar := m.board.Bar(m.grab.taskID); bar != nil {
			bar.Cancel()
		}
		m.grab = nil
		m.status = "Drag cancelled"
	}
}

func (m *boardModel) enter() tea.Cmd {
	row, ok := m.currentRow()
	if !ok {
		return nil
	}
	if row.IsHeader() {
		m.expand.Toggle(row)
		m.refreshVisible()
		return nil
	}
	if row.Kind != timeline.RowTask || row.Task != nil {
		return nil
	}
	u, ok := m.board.ClickCell(row, m.board.Grid().PositionFromDate(m.cursorDay()))
	if !ok {
		return nil
	}
	m.status = fmt.Sprintf("Scheduling %s on %s", row.Label, m.cursorDay())
	return m.persist(u)
}

func (m *boardModel) grabOrDrop() tea.Cmd {
	if m.grab != nil {
		g := m.grab
		m.grab = nil
		m.err = nil
		bar := m.board.Bar(g.taskID)
		if bar == nil {
			return nil
		}
		u, ok := bar.EndDrag(g.x)
		if !ok {
			if g.x != g.originX {
				m.status = "Move discarded: outside the event range"
			} else {
				m.status = "Dropped in place"
			}
			return nil
		}
		return m.persist(u)
	}

	bar := m.currentBar()
	if bar == nil {
		return nil
	}
	if err := bar.BeginDrag(); err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.grab = &grabState{taskID: bar.ID(), originX: bar.X(), x: bar.X()}
	m.status = "Dragging: h/l to move, space to drop, esc to cancel"
	return nil
}

func (m *boardModel) resize(edge gesture.Edge, days int) tea.Cmd {
	bar := m.currentBar()
	if bar == nil || m.grab != nil {
		return nil
	}
	if err := bar.BeginResize(edge); err != nil {
		m.err = err
		return nil
	}
	u, ok := bar.EndResize(bar.Width() + float64(days)*m.column())
	if !ok {
		m.status = "Resize discarded"
		return nil
	}
	m.err = nil
	return m.persist(u)
}

func (m *boardModel) bulk() tea.Cmd {
	bulk := m.board.Bulk()
	if bulk.Active() {
		updates, result := bulk.Drop()
		m.bulkDx = 0
		if result.Rejected {
			m.err = fmt.Errorf("drop rejected: %d task(s) would leave %s", len(result.OutOfRange), m.data.Event.Range)
			return nil
		}
		if len(updates) == 0 {
			m.status = "Nothing moved"
			m.err = result.Err()
			return nil
		}
		m.err = nil
		m.inflight++
		ctx, actions := m.ctx, m.app.Schedule
		return func() tea.Msg {
			return bulkDoneMsg{updates: updates, errs: gesture.RunAll(ctx, actions, updates), result: result}
		}
	}

	row, ok := m.currentRow()
	if !ok || (row.Kind != timeline.RowCategory && row.Kind != timeline.RowStage) {
		return nil
	}
	if err := bulk.Begin(m.rows, timeline.IndexOf(m.rows, row.ID)); err != nil {
		if errors.Is(err, gesture.ErrNoGesture) {
			m.status = row.Label + " has no scheduled tasks"
			return nil
		}
		m.err = err
		return nil
	}
	m.err = nil
	m.status = "Bulk drag " + row.Label + ": h/l to move, b to drop, esc to cancel"
	return nil
}

func (m *boardModel) toggleComplete() tea.Cmd {
	bar := m.currentBar()
	if bar == nil {
		return nil
	}
	u, err := bar.ToggleComplete()
	if err != nil {
		m.err = err
		return nil
	}
	return m.persist(u)
}

func (m *boardModel) remove() tea.Cmd {
	bar := m.currentBar()
	if bar == nil {
		return nil
	}
	u, err := bar.Delete()
	if err != nil {
		m.err = err
		return nil
	}
	return m.persist(u)
}

// persist runs u off the UI goroutine. The result is resolved in Update.
func (m *boardModel) persist(u gesture.Update) tea.Cmd {
	m.inflight++
	ctx, actions := m.ctx, m.app.Schedule
	return func() tea.Msg {
		return updateDoneMsg{update: u, err: gesture.Run(ctx, actions, actions, u)}
	}
}

func (m *boardModel) reload() tea.Cmd {
	ctx, schedule, id := m.ctx, m.app.Schedule, m.eventID
	return func() tea.Msg {
		data, err := schedule.LoadBoard(ctx, id)
		return boardLoadedMsg{data: data, err: err}
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

const boardChromeLines = 8

func (m *boardModel) View() string {
	var b strings.Builder
	ev := m.data.Event
	now := m.app.now()

	b.WriteString(formatter.Header(ev.DisplayID() + "  " + ev.Name))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%s · cursor %s", ev.Range, m.cursorDay())))
	b.WriteString("\n")
	for _, line := range strings.Split(strings.TrimRight(formatter.DayHeader(ev.Range, now), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	first, last := m.window()
	for i := first; i < last; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(formatter.Dim("No active sections."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render("✗ " + m.err.Error()))
	case m.inflight > 0:
		b.WriteString(formatter.Dim("Saving…"))
	default:
		b.WriteString(formatter.Dim(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// window returns the visible row slice that keeps the cursor on screen.
func (m *boardModel) window() (int, int) {
	n := len(m.visible)
	room := m.height - boardChromeLines
	if m.height == 0 || room >= n {
		return 0, n
	}
	room = max(room, 1)
	first := min(max(m.cursor-room/2, 0), n-room)
	return first, first + room
}

func (m *boardModel) renderRow(i int) string {
	row := m.visible[i]
	now := m.app.now()
	r := m.data.Event.Range

	prefix := "  "
	var mark *dates.LocalDay
	if i == m.cursor {
		prefix = formatter.StyleHeader.Render("› ")
		day := m.cursorDay()
		mark = &day
	}

	label := formatter.RowLabel(row, m.collapsed(row))
	cells := formatter.RowCells(r, m.barView(row, now), row, mark)

	suffix := ""
	if row.Task != nil {
		if name := m.data.CrewName(row.Task); name != "" {
			suffix = " " + formatter.Dim(name)
		}
		if badge := formatter.InviteBadge(row.Task); badge != "" {
			suffix += " " + badge
		}
	}
	return prefix + padLabel(label) + cells + suffix
}

func padLabel(label string) string {
	return label + strings.Repeat(" ", max(formatter.LabelWidth-lipgloss.Width(label), 0))
}

func (m *boardModel) collapsed(row timeline.Row) bool {
	switch row.Kind {
	case timeline.RowSection:
		return !m.expand.Sections[row.SectionID]
	case timeline.RowStage:
		return !m.expand.Stages[row.StageKey()]
	case timeline.RowCategory:
		return m.expand.CollapsedCategories[row.CategoryID]
	}
	return false
}

// barView draws task rows from their bars, so optimistic spans, grabs and
// bulk offsets show before anything is saved.
func (m *boardModel) barView(row timeline.Row, now time.Time) *formatter.BarView {
	if row.IsTask() && row.Task != nil {
		bar := m.board.Bar(row.Task.ID)
		if bar == nil {
			return nil
		}
		span := bar.Span()
		start, end := span.Start, span.End
		held := false
		if m.grab != nil && m.grab.taskID == bar.ID() {
			grid := m.board.Grid()
			delta := start.DaysUntil(grid.DateFromPosition(grid.Snap(m.grab.x)))
			start, end = start.AddDays(delta), end.AddDays(delta)
			held = true
		}
		off := bar.BulkOffset()
		return &formatter.BarView{
			Start:   start.AddDays(off),
			End:     end.AddDays(off),
			Status:  bar.Status(now),
			Pending: bar.Updating() || held || bar.Claimed(),
		}
	}

	idx := timeline.IndexOf(m.rows, row.ID)
	if idx < 0 {
		return nil
	}
	view := formatter.RowBar(m.rows, idx, now)
	if view == nil {
		return nil
	}
	if cur := m.board.BulkStore().Current(); cur != nil && cur.SegmentID == row.ID {
		view.Start = view.Start.AddDays(cur.OffsetDays)
		view.End = view.End.AddDays(cur.OffsetDays)
		view.Pending = true
	}
	return view
}
