package service

import (
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/timeline"
)

// Board is everything the timeline needs for one event.
type Board struct {
	Event *domain.Event
	Input timeline.BuildInput
	// Tasks holds catalog and manual tasks alike.
	Tasks []*domain.Task
	Crew  map[string]*domain.CrewMember
}

func (b *Board) Rows() []timeline.Row { return timeline.BuildRows(b.Input) }

func (b *Board) Grid(columnWidth float64) timeline.Grid {
	return timeline.NewGrid(b.Event.Range, columnWidth)
}

// CrewName returns the assigned crew member's name, or "".
func (b *Board) CrewName(t *domain.Task) string {
	if t.CrewMemberID == nil {
		return ""
	}
	if m, ok := b.Crew[*t.CrewMemberID]; ok {
		return m.Name
	}
	return ""
}

func buildBoard(ev *domain.Event, sections []*domain.Section, cats []*domain.Category, catalog []*domain.CatalogItem,
	items []*domain.EventItem, tasks []*domain.Task, crew []*domain.CrewMember) *Board {
	itemsByCategory := make(map[string][]domain.CatalogItem)
	for _, ci := range catalog {
		itemsByCategory[ci.CategoryID] = append(itemsByCategory[ci.CategoryID], *ci)
	}
	catsBySection := make(map[string][]timeline.CategoryTree)
	for _, c := range cats {
		catsBySection[c.SectionID] = append(catsBySection[c.SectionID], timeline.CategoryTree{
			Category: *c,
			Items:    itemsByCategory[c.ID],
		})
	}

	in := timeline.BuildInput{
		Items: make(map[string]*domain.EventItem, len(items)),
		Tasks: make(map[string]*domain.Task),
	}
	for _, s := range sections {
		in.Sections = append(in.Sections, timeline.SectionTree{Section: *s, Categories: catsBySection[s.ID]})
	}
	for _, it := range items {
		in.Items[it.CatalogItemID] = it
	}
	for _, t := range tasks {
		if t.Kind == domain.TaskManual {
			in.ManualTasks = append(in.ManualTasks, t)
			continue
		}
		in.Tasks[t.CatalogItemID] = t
	}
	if len(ev.ActiveSectionIDs) > 0 {
		in.ActiveSections = make(map[string]bool, len(ev.ActiveSectionIDs))
		for _, id := range ev.ActiveSectionIDs {
			in.ActiveSections[id] = true
		}
	}
	if len(ev.ActiveStages) > 0 {
		in.ActiveStages = make(map[domain.Stage]bool, len(ev.ActiveStages))
		for _, s := range ev.ActiveStages {
			in.ActiveStages[s] = true
		}
	}

	crewByID := make(map[string]*domain.CrewMember, len(crew))
	for _, m := range crew {
		crewByID[m.ID] = m
	}
	return &Board{Event: ev, Input: in, Tasks: tasks, Crew: crewByID}
}
