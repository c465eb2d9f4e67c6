package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
)

// ValidateImportSchema checks the schema before conversion and returns every
// problem found, not just the first.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	window, evErrs := validateEvent(&schema.Event)
	errs = append(errs, evErrs...)

	if schema.Defaults != nil && schema.Defaults.TaskDays != nil && *schema.Defaults.TaskDays < 1 {
		errs = append(errs, fmt.Errorf("defaults.task_days must be at least 1"))
	}

	crewRefs := make(map[string]bool)
	for i, c := range schema.Crew {
		prefix := fmt.Sprintf("crew[%d]", i)
		if c.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if crewRefs[c.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", prefix, c.Ref))
		}
		crewRefs[c.Ref] = true
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	refs := make(map[string]bool)
	sectionRefs := make(map[string]bool)
	for i, sec := range schema.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		errs = append(errs, checkRef(prefix, sec.Ref, refs)...)
		sectionRefs[sec.Ref] = true
		if sec.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		for j, cat := range sec.Categories {
			errs = append(errs, validateCategory(fmt.Sprintf("%s.categories[%d]", prefix, j), &cat, schema.Defaults, window, refs, crewRefs)...)
		}
	}

	for _, ref := range schema.Event.ActiveSections {
		if !sectionRefs[ref] {
			errs = append(errs, fmt.Errorf("event.active_sections: unknown section ref %q", ref))
		}
	}
	return errs
}

func validateEvent(e *EventImport) (*dates.Range, []error) {
	var errs []error

	candidate := domain.Event{ShortID: strings.ToUpper(e.ShortID)}
	if err := candidate.ValidateShortID(); err != nil {
		errs = append(errs, fmt.Errorf("event.short_id: %w", err))
	}
	if e.Name == "" {
		errs = append(errs, fmt.Errorf("event.name is required"))
	}
	from, fromErr := requiredDay("event.from", e.From)
	to, toErr := requiredDay("event.to", e.To)
	if fromErr != nil {
		errs = append(errs, fromErr)
	}
	if toErr != nil {
		errs = append(errs, toErr)
	}
	for _, s := range e.ActiveStages {
		if !domain.ValidStages[s] {
			errs = append(errs, fmt.Errorf("event.active_stages: invalid stage %q", s))
		}
	}

	if fromErr != nil || toErr != nil {
		return nil, errs
	}
	r, err := dates.NewRange(from, to)
	if err != nil {
		errs = append(errs, fmt.Errorf("event: %w", err))
		return nil, errs
	}
	return &r, errs
}

func validateCategory(prefix string, cat *CategoryImport, defaults *DefaultsImport, window *dates.Range, refs, crewRefs map[string]bool) []error {
	var errs []error
	errs = append(errs, checkRef(prefix, cat.Ref, refs)...)
	if cat.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if !domain.ValidStages[cat.Stage] {
		errs = append(errs, fmt.Errorf("%s.stage: invalid stage %q (expected planning, production, post_production or delivery)", prefix, cat.Stage))
	}
	accepts := acceptsTasks(cat, defaults)

	for k, item := range cat.Items {
		ip := fmt.Sprintf("%s.items[%d]", prefix, k)
		errs = append(errs, checkRef(ip, item.Ref, refs)...)
		if item.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", ip))
		}
		if item.Task == nil {
			continue
		}
		if !accepts {
			errs = append(errs, fmt.Errorf("%s.task: category %q does not accept tasks", ip, cat.Ref))
			continue
		}
		if !assigned(&item, defaults) {
			errs = append(errs, fmt.Errorf("%s.task: item is not assigned to the event", ip))
			continue
		}
		errs = append(errs, validateTask(ip+".task", item.Task, defaults, window, crewRefs)...)
	}

	for k, m := range cat.ManualTasks {
		mp := fmt.Sprintf("%s.manual_tasks[%d]", prefix, k)
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", mp))
		}
		if !accepts {
			errs = append(errs, fmt.Errorf("%s: category %q does not accept tasks", mp, cat.Ref))
			continue
		}
		errs = append(errs, validateTask(mp, &m.TaskImport, defaults, window, crewRefs)...)
	}
	return errs
}

func validateTask(prefix string, t *TaskImport, defaults *DefaultsImport, window *dates.Range, crewRefs map[string]bool) []error {
	var errs []error
	if t.End != nil && t.Days != nil {
		errs = append(errs, fmt.Errorf("%s: give end or days, not both", prefix))
	}
	if t.Days != nil && *t.Days < 1 {
		errs = append(errs, fmt.Errorf("%s.days must be at least 1", prefix))
	}
	if t.Crew != "" && !crewRefs[t.Crew] {
		errs = append(errs, fmt.Errorf("%s.crew: unknown crew ref %q", prefix, t.Crew))
	}
	if len(errs) > 0 {
		return errs
	}

	start, end, err := taskSpan(prefix, t, defaults)
	if err != nil {
		return append(errs, err)
	}
	if window != nil && (!window.Contains(start) || !window.Contains(end)) {
		errs = append(errs, fmt.Errorf("%s: %s..%s falls outside the event window %s", prefix, start, end, window))
	}
	return errs
}

func checkRef(prefix, ref string, seen map[string]bool) []error {
	if ref == "" {
		return []error{fmt.Errorf("%s.ref is required", prefix)}
	}
	if seen[ref] {
		return []error{fmt.Errorf("%s: duplicate ref %q", prefix, ref)}
	}
	seen[ref] = true
	return nil
}

func requiredDay(field, s string) (dates.LocalDay, error) {
	if s == "" {
		return dates.LocalDay{}, fmt.Errorf("%s is required", field)
	}
	d, err := dates.ParseLocalDay(s)
	if err != nil {
		return dates.LocalDay{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)
	}
	return d, nil
}

// taskSpan resolves start plus end, days or the default length.
func taskSpan(prefix string, t *TaskImport, defaults *DefaultsImport) (dates.LocalDay, dates.LocalDay, error) {
	start, err := requiredDay(prefix+".start", t.Start)
	if err != nil {
		return start, start, err
	}
	if t.End != nil {
		end, err := requiredDay(prefix+".end", *t.End)
		if err != nil {
			return start, start, err
		}
		if end.Before(start) {
			return start, end, fmt.Errorf("%s.end %s is before start %s", prefix, end, start)
		}
		return start, end, nil
	}
	var defaultDays *int
	if defaults != nil {
		defaultDays = defaults.TaskDays
	}
	days := domain.FirstSet(1, t.Days, defaultDays)
	return start, start.AddDays(days - 1), nil
}

func acceptsTasks(cat *CategoryImport, defaults *DefaultsImport) bool {
	var fallback *bool
	if defaults != nil {
		fallback = defaults.AcceptsTasks
	}
	return domain.FirstSet(true, cat.AcceptsTasks, fallback)
}

func assigned(item *ItemImport, defaults *DefaultsImport) bool {
	var fallback *bool
	if defaults != nil {
		fallback = defaults.Assigned
	}
	return domain.FirstSet(true, item.Assigned, fallback)
}
