package repository

import (
	"context"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	UpdateRange(ctx context.Context, id string, r dates.Range) error
	Delete(ctx context.Context, id string) error
}

// CatalogRepo stores the studio catalog shared by all events.
type CatalogRepo interface {
	CreateSection(ctx context.Context, s *domain.Section) error
	CreateCategory(ctx context.Context, c *domain.Category) error
	CreateItem(ctx context.Context, i *domain.CatalogItem) error
	GetSection(ctx context.Context, id string) (*domain.Section, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	GetItem(ctx context.Context, id string) (*domain.CatalogItem, error)
	ListSections(ctx context.Context) ([]*domain.Section, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListItems(ctx context.Context) ([]*domain.CatalogItem, error)
}

type EventItemRepo interface {
	Create(ctx context.Context, i *domain.EventItem) error
	GetByID(ctx context.Context, id string) (*domain.EventItem, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.EventItem, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	GetByItem(ctx context.Context, itemID string) (*domain.Task, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateDates(ctx context.Context, id string, start, end dates.StorageDay) error
	Delete(ctx context.Context, id string) error
}

type CrewRepo interface {
	Create(ctx context.Context, m *domain.CrewMember) error
	GetByID(ctx context.Context, id string) (*domain.CrewMember, error)
	List(ctx context.Context) ([]*domain.CrewMember, error)
}
