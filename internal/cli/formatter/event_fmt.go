package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

// FormatEventList renders events as a table.
func FormatEventList(events []*domain.Event) string {
	if len(events) == 0 {
		return Dim("No events yet. Create one with `eventboard event create`.") + "\n"
	}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			Bold(ev.DisplayID()),
			ev.Name,
			ev.Range.String(),
			strconv.Itoa(ev.Range.Days()),
		})
	}
	return RenderTable([]string{"ID", "NAME", "RANGE", "DAYS"}, rows)
}

// FormatEventDetail renders one event with a status summary of its tasks.
func FormatEventDetail(ev *domain.Event, tasks []*domain.Task, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(ev.DisplayID()), ev.Name)
	fmt.Fprintf(&b, "%s %s (%d days)\n", Dim("Range:"), ev.Range, ev.Range.Days())
	if len(ev.ActiveStages) > 0 {
		labels := make([]string, len(ev.ActiveStages))
		for i, s := range ev.ActiveStages {
			labels[i] = domain.StageLabel(s)
		}
		fmt.Fprintf(&b, "%s %s\n", Dim("Stages:"), strings.Join(labels, ", "))
	}
	if len(ev.ActiveSectionIDs) > 0 {
		fmt.Fprintf(&b, "%s %d selected\n", Dim("Sections:"), len(ev.ActiveSectionIDs))
	}

	counts := make(map[domain.TaskStatus]int)
	for _, t := range tasks {
		counts[timeline.TaskStatus(t, now)]++
	}
	b.WriteString("\n")
	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("Nothing scheduled."))
		b.WriteString("\n")
		return RenderBox("Event", strings.TrimRight(b.String(), "\n"))
	}
	for _, s := range []domain.TaskStatus{domain.TaskPending, domain.TaskInProcess, domain.TaskDelayed, domain.TaskCompleted} {
		if counts[s] == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-16s %d\n", StatusBadge(s), counts[s])
	}
	return RenderBox("Event", strings.TrimRight(b.String(), "\n"))
}

// FormatTaskList renders the tasks of an event as a table.
func FormatTaskList(tasks []*domain.Task, now time.Time, crewName func(*domain.Task) string) string {
	if len(tasks) == 0 {
		return Dim("No tasks scheduled.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		crew := ""
		if crewName != nil {
			crew = crewName(t)
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			t.Name,
			TaskSpanLabel(t),
			StatusBadge(timeline.TaskStatus(t, now)),
			strings.TrimSpace(crew + " " + InviteBadge(t)),
		})
	}
	return RenderTable([]string{"ID", "TASK", "DATES", "STATUS", "CREW"}, rows)
}

// FormatCrewList renders crew members as a table.
func FormatCrewList(crew []*domain.CrewMember) string {
	if len(crew) == 0 {
		return Dim("No crew members.") + "\n"
	}
	rows := make([][]string, 0, len(crew))
	for _, m := range crew {
		rows = append(rows, []string{TruncID(m.ID), m.Name, m.Email})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL"}, rows)
}

// FormatRangeConflict explains which tasks a proposed range would cut off.
func FormatRangeConflict(check timeline.RangeCheck, tasks []*domain.Task) string {
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d task(s) fall outside %s:\n",
		StyleYellow.Render("▲"), check.ConflictCount(), check.Proposed)
	for _, id := range check.Conflicts {
		if t, ok := byID[id]; ok {
			fmt.Fprintf(&b, "  • %s %s\n", t.Name, Dim(TaskSpanLabel(t)))
			continue
		}
		fmt.Fprintf(&b, "  • %s\n", TruncID(id))
	}
	return b.String()
}
