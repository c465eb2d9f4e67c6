package timeline

import (
	"sort"

	"github.com/alexanderramin/eventboard/internal/domain"
)

type RowKind string

const (
	RowSection     RowKind = "section"
	RowStage       RowKind = "stage"
	RowCategory    RowKind = "category"
	RowTask        RowKind = "task"
	RowManualTask  RowKind = "manual_task"
	RowAddTask     RowKind = "add_task_placeholder"
	RowAddCategory RowKind = "add_category_placeholder"
)

// Row is one line of the board. Rows are derived from the catalog and the
// event's tasks and are rebuilt whenever either changes.
type Row struct {
	Kind  RowKind
	ID    string
	Label string

	// Ancestry. Section rows set SectionID only, stage rows add Stage,
	// everything below a category header carries CategoryID.
	SectionID  string
	Stage      domain.Stage
	CategoryID string

	// Task rows. Item is nil for manual tasks; Task is nil for an assigned
	// item that has no schedule yet (its day cells are clickable).
	Item *domain.EventItem
	Task *domain.Task
}

func (r Row) IsHeader() bool {
	return r.Kind == RowSection || r.Kind == RowStage || r.Kind == RowCategory
}

func (r Row) IsPlaceholder() bool {
	return r.Kind == RowAddTask || r.Kind == RowAddCategory
}

func (r Row) IsTask() bool {
	return r.Kind == RowTask || r.Kind == RowManualTask
}

// StageKey identifies a stage header; stage names repeat across sections.
func StageKey(sectionID string, stage domain.Stage) string {
	return sectionID + "/" + string(stage)
}

// StageKey of the row's stage, empty above stage level.
func (r Row) StageKey() string {
	if r.Kind == RowSection || r.Stage == "" {
		return ""
	}
	return StageKey(r.SectionID, r.Stage)
}

// SectionTree is one catalog section with its categories, in display order.
type SectionTree struct {
	Section    domain.Section
	Categories []CategoryTree
}

type CategoryTree struct {
	Category domain.Category
	Items    []domain.CatalogItem
}

// BuildInput is everything BuildRows needs.
type BuildInput struct {
	Sections []SectionTree
	// Items maps catalog item ID to the event item assigned from it. Catalog
	// items without an assignment are not shown.
	Items map[string]*domain.EventItem
	// Tasks maps catalog item ID to its scheduled task.
	Tasks       map[string]*domain.Task
	ManualTasks []*domain.Task

	// Activation filters. A nil map means everything is active.
	ActiveSections map[string]bool
	ActiveStages   map[domain.Stage]bool
}

// BuildRows flattens section > stage > category > task into display order.
// Each category's task rows (catalog-bound first, in catalog order, then
// manual tasks) are followed by exactly one placeholder row.
func BuildRows(in BuildInput) []Row {
	manualByCategory := make(map[string][]*domain.Task)
	for _, t := range in.ManualTasks {
		manualByCategory[t.CategoryID] = append(manualByCategory[t.CategoryID], t)
	}
	for _, list := range manualByCategory {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Order != list[j].Order {
				return list[i].Order < list[j].Order
			}
			return list[i].Name < list[j].Name
		})
	}

	var rows []Row
	for _, sec := range in.Sections {
		if in.ActiveSections != nil && !in.ActiveSections[sec.Section.ID] {
			continue
		}
		rows = append(rows, Row{
			Kind:      RowSection,
			ID:        "section:" + sec.Section.ID,
			Label:     sec.Section.Name,
			SectionID: sec.Section.ID,
		})

		byStage := groupByStage(sec.Categories)
		for _, stage := range orderedStages(byStage) {
			if in.ActiveStages != nil && !in.ActiveStages[stage] {
				continue
			}
			rows = append(rows, Row{
				Kind:      RowStage,
				ID:        "stage:" + StageKey(sec.Section.ID, stage),
				Label:     domain.StageLabel(stage),
				SectionID: sec.Section.ID,
				Stage:     stage,
			})
			for _, cat := range byStage[stage] {
				rows = append(rows, categoryRows(sec.Section.ID, stage, cat, in, manualByCategory[cat.Category.ID])...)
			}
		}
	}
	return rows
}

func categoryRows(sectionID string, stage domain.Stage, cat CategoryTree, in BuildInput, manual []*domain.Task) []Row {
	base := Row{SectionID: sectionID, Stage: stage, CategoryID: cat.Category.ID}

	header := base
	header.Kind = RowCategory
	header.ID = "category:" + cat.Category.ID
	header.Label = cat.Category.Name
	rows := []Row{header}

	items := append([]domain.CatalogItem(nil), cat.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	for _, ci := range items {
		item, ok := in.Items[ci.ID]
		if !ok || item == nil {
			continue
		}
		r := base
		r.Kind = RowTask
		r.ID = "task:" + item.ID
		r.Label = item.Name
		r.Item = item
		r.Task = in.Tasks[ci.ID]
		rows = append(rows, r)
	}

	for _, t := range manual {
		r := base
		r.Kind = RowManualTask
		r.ID = "manual:" + t.ID
		r.Label = t.Name
		r.Task = t
		rows = append(rows, r)
	}

	placeholder := base
	if cat.Category.AcceptsTasks {
		placeholder.Kind = RowAddTask
		placeholder.ID = "add-task:" + cat.Category.ID
	} else {
		placeholder.Kind = RowAddCategory
		placeholder.ID = "add-category:" + cat.Category.ID
	}
	return append(rows, placeholder)
}

func groupByStage(cats []CategoryTree) map[domain.Stage][]CategoryTree {
	out := make(map[domain.Stage][]CategoryTree)
	for _, c := range cats {
		out[c.Category.Stage] = append(out[c.Category.Stage], c)
	}
	for _, list := range out {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Category.Order < list[j].Category.Order
		})
	}
	return out
}

// orderedStages lists known stages in StageOrder, then unknown ones by name.
func orderedStages(byStage map[domain.Stage][]CategoryTree) []domain.Stage {
	var out []domain.Stage
	known := make(map[domain.Stage]bool, len(domain.StageOrder))
	for _, s := range domain.StageOrder {
		known[s] = true
		if len(byStage[s]) > 0 {
			out = append(out, s)
		}
	}
	var extra []domain.Stage
	for s := range byStage {
		if !known[s] {
			extra = append(extra, s)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// IndexOf returns the position of the row with the given ID, or -1.
func IndexOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ScheduledTasks returns every task on the board in row order.
func ScheduledTasks(rows []Row) []*domain.Task {
	var out []*domain.Task
	for _, r := range rows {
		if r.IsTask() && r.Task != nil {
			out = append(out, r.Task)
		}
	}
	return out
}
