package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/alexanderramin/eventboard/internal/testutil"
	"github.com/stretchr/testify/require"
)

type seeded struct {
	event    *domain.Event
	section  *domain.Section
	category *domain.Category
	items    []*domain.EventItem
}

// seedEvent creates one event with a single category holding n assigned items.
func seedEvent(t *testing.T, database *sql.DB, n int) seeded {
	t.Helper()
	ctx := context.Background()

	s := seeded{event: testutil.NewTestEvent("Wedding")}
	require.NoError(t, NewSQLiteEventRepo(database).Create(ctx, s.event))

	catalog := NewSQLiteCatalogRepo(database)
	s.section = testutil.NewTestSection("Photography", 0)
	require.NoError(t, catalog.CreateSection(ctx, s.section))
	s.category = testutil.NewTestCategory(s.section.ID, "Shoot")
	require.NoError(t, catalog.CreateCategory(ctx, s.category))

	items := NewSQLiteEventItemRepo(database)
	for i := 0; i < n; i++ {
		ci := testutil.NewTestCatalogItem(s.category.ID, string(rune('A'+i)), i)
		require.NoError(t, catalog.CreateItem(ctx, ci))
		ei := testutil.NewTestEventItem(s.event.ID, ci)
		require.NoError(t, items.Create(ctx, ei))
		s.items = append(s.items, ei)
	}
	return s
}
