package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/importer"
	"github.com/alexanderramin/eventboard/internal/repository"
)

type importService struct {
	events   repository.EventRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(events repository.EventRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		events:   events,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportEvent(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportEventFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"short_id": schema.Event.ShortID}
	defer func() { observe(ctx, s.observer, "import-event", startedAt, fields, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if err := r.events.Create(ctx, generated.Event); err != nil {
			return fmt.Errorf("creating event: %w", err)
		}
		for _, m := range generated.Crew {
			if err := r.crew.Create(ctx, m); err != nil {
				return fmt.Errorf("creating crew member %q: %w", m.Name, err)
			}
		}
		for _, sec := range generated.Sections {
			if err := r.catalog.CreateSection(ctx, sec); err != nil {
				return fmt.Errorf("creating section %q: %w", sec.Name, err)
			}
		}
		for _, cat := range generated.Categories {
			if err := r.catalog.CreateCategory(ctx, cat); err != nil {
				return fmt.Errorf("creating category %q: %w", cat.Name, err)
			}
		}
		for _, ci := range generated.CatalogItems {
			if err := r.catalog.CreateItem(ctx, ci); err != nil {
				return fmt.Errorf("creating catalog item %q: %w", ci.Name, err)
			}
		}
		for _, ei := range generated.EventItems {
			if err := r.items.Create(ctx, ei); err != nil {
				return fmt.Errorf("assigning item %q: %w", ei.Name, err)
			}
		}
		for _, t := range generated.Tasks {
			if err := r.tasks.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["event_id"] = generated.Event.ID
	return &ImportResult{
		Event:         generated.Event,
		SectionCount:  len(generated.Sections),
		CategoryCount: len(generated.Categories),
		ItemCount:     len(generated.EventItems),
		TaskCount:     len(generated.Tasks),
		CrewCount:     len(generated.Crew),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
