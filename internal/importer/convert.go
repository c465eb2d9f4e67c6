package importer

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/google/uuid"
)

// GeneratedEvent is a converted seed file in insertion order.
type GeneratedEvent struct {
	Event        *domain.Event
	Crew         []*domain.CrewMember
	Sections     []*domain.Section
	Categories   []*domain.Category
	CatalogItems []*domain.CatalogItem
	EventItems   []*domain.EventItem
	Tasks        []*domain.Task
}

// Convert turns a validated schema into domain objects with fresh IDs.
// Call ValidateImportSchema first.
func Convert(schema *ImportSchema) (*GeneratedEvent, error) {
	now := time.Now().UTC()

	from, err := dates.ParseLocalDay(schema.Event.From)
	if err != nil {
		return nil, fmt.Errorf("parsing event.from: %w", err)
	}
	to, err := dates.ParseLocalDay(schema.Event.To)
	if err != nil {
		return nil, fmt.Errorf("parsing event.to: %w", err)
	}
	window, err := dates.NewRange(from, to)
	if err != nil {
		return nil, err
	}

	gen := &GeneratedEvent{
		Event: &domain.Event{
			ID:        uuid.New().String(),
			ShortID:   strings.ToUpper(schema.Event.ShortID),
			Name:      schema.Event.Name,
			Range:     window,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, s := range schema.Event.ActiveStages {
		gen.Event.ActiveStages = append(gen.Event.ActiveStages, domain.Stage(s))
	}

	crewIDs := make(map[string]string, len(schema.Crew))
	for _, c := range schema.Crew {
		m := &domain.CrewMember{
			ID:    uuid.New().String(),
			Name:  c.Name,
			Email: cmp.Or(c.Email, strings.ToLower(c.Ref)+"@crew.local"),
		}
		crewIDs[c.Ref] = m.ID
		gen.Crew = append(gen.Crew, m)
	}

	sectionIDs := make(map[string]string, len(schema.Sections))
	for i, sec := range schema.Sections {
		section := &domain.Section{
			ID:    uuid.New().String(),
			Name:  sec.Name,
			Order: domain.FirstSet(i, sec.Order),
		}
		sectionIDs[sec.Ref] = section.ID
		gen.Sections = append(gen.Sections, section)

		for j, cat := range sec.Categories {
			if err := gen.addCategory(section.ID, j, &cat, schema.Defaults, crewIDs, now); err != nil {
				return nil, err
			}
		}
	}

	for _, ref := range schema.Event.ActiveSections {
		id, ok := sectionIDs[ref]
		if !ok {
			return nil, fmt.Errorf("active section ref %q not found", ref)
		}
		gen.Event.ActiveSectionIDs = append(gen.Event.ActiveSectionIDs, id)
	}
	return gen, nil
}

func (g *GeneratedEvent) addCategory(sectionID string, index int, cat *CategoryImport, defaults *DefaultsImport, crewIDs map[string]string, now time.Time) error {
	category := &domain.Category{
		ID:           uuid.New().String(),
		SectionID:    sectionID,
		Name:         cat.Name,
		Stage:        domain.Stage(cat.Stage),
		Order:        domain.FirstSet(index, cat.Order),
		AcceptsTasks: acceptsTasks(cat, defaults),
	}
	g.Categories = append(g.Categories, category)

	for k, it := range cat.Items {
		ci := &domain.CatalogItem{
			ID:         uuid.New().String(),
			CategoryID: category.ID,
			Name:       it.Name,
			Order:      domain.FirstSet(k, it.Order),
		}
		g.CatalogItems = append(g.CatalogItems, ci)
		if !assigned(&it, defaults) {
			continue
		}

		ei := &domain.EventItem{
			ID:            uuid.New().String(),
			EventID:       g.Event.ID,
			CatalogItemID: ci.ID,
			Name:          ci.Name,
		}
		g.EventItems = append(g.EventItems, ei)
		if it.Task == nil {
			continue
		}

		task, err := newTask(it.Task, defaults, crewIDs, now)
		if err != nil {
			return fmt.Errorf("item %q: %w", it.Ref, err)
		}
		task.EventID = g.Event.ID
		task.Kind = domain.TaskCatalog
		task.Name = ci.Name
		task.ItemID = ei.ID
		task.CatalogItemID = ci.ID
		g.Tasks = append(g.Tasks, task)
	}

	for k, m := range cat.ManualTasks {
		task, err := newTask(&m.TaskImport, defaults, crewIDs, now)
		if err != nil {
			return fmt.Errorf("manual task %q: %w", m.Name, err)
		}
		task.EventID = g.Event.ID
		task.Kind = domain.TaskManual
		task.Name = m.Name
		task.CategoryID = category.ID
		task.DurationDays = task.Days()
		task.Order = domain.FirstSet(k, m.Order)
		g.Tasks = append(g.Tasks, task)
	}
	return nil
}

func newTask(t *TaskImport, defaults *DefaultsImport, crewIDs map[string]string, now time.Time) (*domain.Task, error) {
	start, end, err := taskSpan("task", t, defaults)
	if err != nil {
		return nil, err
	}
	task := &domain.Task{
		ID:        uuid.New().String(),
		Start:     start.Storage(),
		End:       end.Storage(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if t.Completed {
		at := now
		task.CompletedAt = &at
	}
	if t.Crew != "" {
		id, ok := crewIDs[t.Crew]
		if !ok {
			return nil, fmt.Errorf("crew ref %q not found", t.Crew)
		}
		task.CrewMemberID = &id
		task.SyncStatus = domain.SyncDraft
		task.InvitationStatus = domain.InvitationPending
	}
	return task, nil
}
