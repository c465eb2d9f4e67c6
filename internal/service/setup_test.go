package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/repository"
	"github.com/alexanderramin/eventboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	db      *sql.DB
	events  *repository.SQLiteEventRepo
	catalog *repository.SQLiteCatalogRepo
	items   *repository.SQLiteEventItemRepo
	tasks   *repository.SQLiteTaskRepo
	crew    *repository.SQLiteCrewRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:      database,
		events:  repository.NewSQLiteEventRepo(database),
		catalog: repository.NewSQLiteCatalogRepo(database),
		items:   repository.NewSQLiteEventItemRepo(database),
		tasks:   repository.NewSQLiteTaskRepo(database),
		crew:    repository.NewSQLiteCrewRepo(database),
	}
}

func (r testRepos) schedule(observers ...UseCaseObserver) ScheduleService {
	return NewScheduleService(r.events, r.catalog, r.items, r.tasks, r.crew, testutil.NewTestUoW(r.db), observers...)
}

func (r testRepos) eventSvc() EventService {
	return NewEventService(r.events, r.catalog, r.items, r.tasks, testutil.NewTestUoW(r.db))
}

func (r testRepos) crewSvc() CrewService {
	return NewCrewService(r.crew, r.tasks, testutil.NewTestUoW(r.db))
}

// fixture is one Jan 1-10 event with a "Shoot" category holding two
// assigned items, an unassigned catalog item and an undated category.
type fixture struct {
	event   *domain.Event
	section *domain.Section
	shoot   *domain.Category
	albums  *domain.Category
	catalog []*domain.CatalogItem
	items   []*domain.EventItem
	spare   *domain.CatalogItem
}

func seedFixture(t *testing.T, r testRepos) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{event: testutil.NewTestEvent("Wedding")}
	require.NoError(t, r.events.Create(ctx, f.event))

	f.section = testutil.NewTestSection("Photography", 0)
	require.NoError(t, r.catalog.CreateSection(ctx, f.section))
	f.shoot = testutil.NewTestCategory(f.section.ID, "Shoot")
	require.NoError(t, r.catalog.CreateCategory(ctx, f.shoot))
	f.albums = testutil.NewTestCategory(f.section.ID, "Albums", testutil.WithStage(domain.StageDelivery), testutil.Undated())
	require.NoError(t, r.catalog.CreateCategory(ctx, f.albums))

	for i, name := range []string{"Ceremony", "Portraits"} {
		ci := testutil.NewTestCatalogItem(f.shoot.ID, name, i)
		require.NoError(t, r.catalog.CreateItem(ctx, ci))
		ei := testutil.NewTestEventItem(f.event.ID, ci)
		require.NoError(t, r.items.Create(ctx, ei))
		f.catalog = append(f.catalog, ci)
		f.items = append(f.items, ei)
	}
	f.spare = testutil.NewTestCatalogItem(f.shoot.ID, "Drone", 2)
	require.NoError(t, r.catalog.CreateItem(ctx, f.spare))
	return f
}

// recordingObserver keeps every use-case event it sees.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
