package timeline

// The three visibility passes below are per-row predicates: a row is kept
// or dropped by looking only at its own ancestry. That makes each pass
// idempotent and lets them run in any order with the same result.

// FilterSections drops everything inside a section that is not expanded.
// Section headers always stay.
func FilterSections(rows []Row, expanded map[string]bool) []Row {
	return keep(rows, func(r Row) bool {
		return r.Kind == RowSection || expanded[r.SectionID]
	})
}

// FilterStages drops everything inside a stage that is not expanded. Keys
// are StageKey(sectionID, stage). Section and stage headers always stay.
func FilterStages(rows []Row, expanded map[string]bool) []Row {
	return keep(rows, func(r Row) bool {
		return r.Kind == RowSection || r.Kind == RowStage || expanded[r.StageKey()]
	})
}

// FilterCategories drops the task and placeholder rows of collapsed
// categories. All headers stay.
func FilterCategories(rows []Row, collapsed map[string]bool) []Row {
	return keep(rows, func(r Row) bool {
		return r.IsHeader() || !collapsed[r.CategoryID]
	})
}

// Expansion is the collapse state of the board.
type Expansion struct {
	Sections            map[string]bool
	Stages              map[string]bool
	CollapsedCategories map[string]bool
}

// ExpandAll returns an Expansion with every section and stage of rows open.
func ExpandAll(rows []Row) Expansion {
	e := Expansion{
		Sections:            make(map[string]bool),
		Stages:              make(map[string]bool),
		CollapsedCategories: make(map[string]bool),
	}
	for _, r := range rows {
		switch r.Kind {
		case RowSection:
			e.Sections[r.SectionID] = true
		case RowStage:
			e.Stages[r.StageKey()] = true
		}
	}
	return e
}

// Visible applies all three passes.
func (e Expansion) Visible(rows []Row) []Row {
	return FilterCategories(FilterStages(FilterSections(rows, e.Sections), e.Stages), e.CollapsedCategories)
}

// Toggle flips the expansion of the header row r. Non-header rows are ignored.
func (e Expansion) Toggle(r Row) {
	switch r.Kind {
	case RowSection:
		e.Sections[r.SectionID] = !e.Sections[r.SectionID]
	case RowStage:
		e.Stages[r.StageKey()] = !e.Stages[r.StageKey()]
	case RowCategory:
		e.CollapsedCategories[r.CategoryID] = !e.CollapsedCategories[r.CategoryID]
	}
}

func keep(rows []Row, pred func(Row) bool) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
