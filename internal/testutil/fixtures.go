package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Jan returns a day of January 2024, the month every fixture lives in.
func Jan(day int) dates.LocalDay {
	return dates.NewLocalDay(2024, time.January, day)
}

// Event options
type EventOption func(*domain.Event)

func WithRange(from, to dates.LocalDay) EventOption {
	return func(e *domain.Event) {
		e.Range = dates.Range{From: from, To: to}
	}
}

func WithShortID(id string) EventOption {
	return func(e *domain.Event) {
		e.ShortID = id
	}
}

func WithActiveStages(stages ...domain.Stage) EventOption {
	return func(e *domain.Event) {
		e.ActiveStages = stages
	}
}

func WithActiveSections(ids ...string) EventOption {
	return func(e *domain.Event) {
		e.ActiveSectionIDs = ids
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

// NewTestEvent returns an event spanning Jan 1-10 2024 unless WithRange says otherwise.
func NewTestEvent(name string, opts ...EventOption) *domain.Event {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Event{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Range:     dates.Range{From: Jan(1), To: Jan(10)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestSection(name string, order int) *domain.Section {
	return &domain.Section{ID: uuid.New().String(), Name: name, Order: order}
}

// Category options
type CategoryOption func(*domain.Category)

func WithStage(s domain.Stage) CategoryOption {
	return func(c *domain.Category) {
		c.Stage = s
	}
}

func WithCategoryOrder(i int) CategoryOption {
	return func(c *domain.Category) {
		c.Order = i
	}
}

// Undated marks a category whose items never get day bars.
func Undated() CategoryOption {
	return func(c *domain.Category) {
		c.AcceptsTasks = false
	}
}

func NewTestCategory(sectionID, name string, opts ...CategoryOption) *domain.Category {
	c := &domain.Category{
		ID:           uuid.New().String(),
		SectionID:    sectionID,
		Name:         name,
		Stage:        domain.StageProduction,
		AcceptsTasks: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestCatalogItem(categoryID, name string, order int) *domain.CatalogItem {
	return &domain.CatalogItem{ID: uuid.New().String(), CategoryID: categoryID, Name: name, Order: order}
}

func NewTestEventItem(eventID string, item *domain.CatalogItem) *domain.EventItem {
	return &domain.EventItem{
		ID:            uuid.New().String(),
		EventID:       eventID,
		CatalogItemID: item.ID,
		Name:          item.Name,
	}
}

func NewTestCrewMember(name string) *domain.CrewMember {
	return &domain.CrewMember{
		ID:    uuid.New().String(),
		Name:  name,
		Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
	}
}

// Task options
type TaskOption func(*domain.Task)

func WithSpan(start, end dates.LocalDay) TaskOption {
	return func(t *domain.Task) {
		t.Start = start.Storage()
		t.End = end.Storage()
		if t.Kind == domain.TaskManual {
			t.DurationDays = start.DaysUntil(end) + 1
		}
	}
}

func WithCompletedAt(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CompletedAt = &at
	}
}

func WithCrew(id string, invite domain.InvitationStatus) TaskOption {
	return func(t *domain.Task) {
		t.CrewMemberID = &id
		t.SyncStatus = domain.SyncDraft
		t.InvitationStatus = invite
	}
}

// NewTestTask schedules an event item for Jan 3-5 2024 by default.
func NewTestTask(item *domain.EventItem, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:            uuid.New().String(),
		EventID:       item.EventID,
		Kind:          domain.TaskCatalog,
		Name:          item.Name,
		Start:         Jan(3).Storage(),
		End:           Jan(5).Storage(),
		ItemID:        item.ID,
		CatalogItemID: item.CatalogItemID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestManualTask creates a one-day manual task on Jan 2 2024 by default.
func NewTestManualTask(eventID, categoryID, name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:           uuid.New().String(),
		EventID:      eventID,
		Kind:         domain.TaskManual,
		Name:         name,
		Start:        Jan(2).Storage(),
		End:          Jan(2).Storage(),
		CategoryID:   categoryID,
		DurationDays: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
