package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/service"
)

// matchOne picks the single element whose ID equals ref, whose ID starts
// with ref, or whose name equals ref case-insensitively, in that order.
func matchOne[T any](kind, ref string, all []T, id func(T) string, name func(T) string) (T, error) {
	var zero T
	if ref == "" {
		return zero, fmt.Errorf("%s is required", kind)
	}
	for _, v := range all {
		if id(v) == ref {
			return v, nil
		}
	}

	var matches []T
	for _, v := range all {
		if strings.HasPrefix(id(v), ref) {
			matches = append(matches, v)
		}
	}
	if len(matches) == 0 {
		for _, v := range all {
			if strings.EqualFold(name(v), ref) {
				matches = append(matches, v)
			}
		}
	}

	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s not found: %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%s %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

func resolveEvent(ctx context.Context, app *App, ref string) (*domain.Event, error) {
	if ref == "" {
		return nil, fmt.Errorf("event ID is required")
	}
	ev, err := app.Events.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("event %q: %w", ref, err)
	}
	return ev, nil
}

func findTask(b *service.Board, ref string) (*domain.Task, error) {
	return matchOne("task", ref, b.Tasks,
		func(t *domain.Task) string { return t.ID },
		func(t *domain.Task) string { return t.Name })
}

// findEventItem looks among the items assigned to the event.
func findEventItem(b *service.Board, ref string) (*domain.EventItem, error) {
	items := make([]*domain.EventItem, 0, len(b.Input.Items))
	for _, it := range b.Input.Items {
		items = append(items, it)
	}
	return matchOne("item", ref, items,
		func(it *domain.EventItem) string { return it.ID },
		func(it *domain.EventItem) string { return it.Name })
}

func findCategory(b *service.Board, ref string) (*domain.Category, error) {
	var cats []*domain.Category
	for _, sec := range b.Input.Sections {
		for i := range sec.Categories {
			cats = append(cats, &sec.Categories[i].Category)
		}
	}
	return matchOne("category", ref, cats,
		func(c *domain.Category) string { return c.ID },
		func(c *domain.Category) string { return c.Name })
}

func findSection(b *service.Board, ref string) (*domain.Section, error) {
	secs := make([]*domain.Section, 0, len(b.Input.Sections))
	for i := range b.Input.Sections {
		secs = append(secs, &b.Input.Sections[i].Section)
	}
	return matchOne("section", ref, secs,
		func(s *domain.Section) string { return s.ID },
		func(s *domain.Section) string { return s.Name })
}

func findCatalogItem(b *service.Board, ref string) (*domain.CatalogItem, error) {
	var items []*domain.CatalogItem
	for _, sec := range b.Input.Sections {
		for _, cat := range sec.Categories {
			for i := range cat.Items {
				items = append(items, &cat.Items[i])
			}
		}
	}
	return matchOne("catalog item", ref, items,
		func(ci *domain.CatalogItem) string { return ci.ID },
		func(ci *domain.CatalogItem) string { return ci.Name })
}

func resolveCrew(ctx context.Context, app *App, ref string) (*domain.CrewMember, error) {
	crew, err := app.Crew.List(ctx)
	if err != nil {
		return nil, err
	}
	m, err := matchOne("crew member", ref, crew,
		func(m *domain.CrewMember) string { return m.ID },
		func(m *domain.CrewMember) string { return m.Name })
	if err == nil {
		return m, nil
	}
	for _, c := range crew {
		if c.Email != "" && strings.EqualFold(c.Email, ref) {
			return c, nil
		}
	}
	return nil, err
}
