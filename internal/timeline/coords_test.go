package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(d int) dates.LocalDay { return dates.NewLocalDay(2024, time.January, d) }

func janGrid(t *testing.T) Grid {
	t.Helper()
	r, err := dates.NewRange(jan(1), jan(10))
	require.NoError(t, err)
	return NewGrid(r, 60)
}

func TestPositionFromDate(t *testing.T) {
	g := janGrid(t)
	assert.Equal(t, 0.0, g.PositionFromDate(jan(1)))
	assert.Equal(t, 240.0, g.PositionFromDate(jan(5)))
	assert.Equal(t, -60.0, g.PositionFromDate(dates.NewLocalDay(2023, time.December, 31)))
}

func TestPositionFromDate_NoRange(t *testing.T) {
	g := Grid{ColumnWidth: 60}
	assert.Equal(t, 0.0, g.PositionFromDate(jan(5)))
	_, ok := g.TodayPosition(time.Now())
	assert.False(t, ok)
}

func TestWidthFromDuration(t *testing.T) {
	g := janGrid(t)
	assert.Equal(t, 180.0, g.WidthFromDuration(jan(3), jan(5)))
	assert.Equal(t, 60.0, g.WidthFromDuration(jan(7), jan(7)))
}

func TestWidthFromDuration_DaysMatchColumns(t *testing.T) {
	g := janGrid(t)
	for start := 1; start <= 10; start++ {
		for end := start; end <= 10; end++ {
			w := g.WidthFromDuration(jan(start), jan(end))
			assert.Equal(t, end-start+1, g.DaysFromWidth(w))
		}
	}
}

func TestDateFromPosition_FloorsInsideColumn(t *testing.T) {
	g := janGrid(t)
	assert.True(t, g.DateFromPosition(240).Equal(jan(5)))
	assert.True(t, g.DateFromPosition(299.9).Equal(jan(5)))
	assert.True(t, g.DateFromPosition(300).Equal(jan(6)))
	assert.True(t, g.DateFromPosition(-1).Equal(dates.NewLocalDay(2023, time.December, 31)))
}

func TestPositionRoundTrip(t *testing.T) {
	r, err := dates.NewRange(dates.NewLocalDay(2024, time.February, 20), dates.NewLocalDay(2024, time.April, 5))
	require.NoError(t, err)
	for _, width := range []float64{1, 37.5, 60, 120} {
		g := NewGrid(r, width)
		for d := r.From; !d.After(r.To); d = d.AddDays(1) {
			got := g.DateFromPosition(g.PositionFromDate(d))
			assert.True(t, got.Equal(d), "width %v day %s got %s", width, d, got)
		}
	}
}

func TestTodayPosition(t *testing.T) {
	g := janGrid(t)
	pos, ok := g.TodayPosition(time.Date(2024, 1, 3, 18, 45, 0, 0, time.Local))
	require.True(t, ok)
	assert.Equal(t, 120.0, pos)

	_, ok = g.TodayPosition(time.Date(2024, 1, 11, 0, 0, 0, 0, time.Local))
	assert.False(t, ok)

	// The zone carried by now does not move the column.
	noon := time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)
	for _, zone := range []*time.Location{time.UTC, time.FixedZone("east", 14*3600), time.FixedZone("west", -12*3600)} {
		pos, ok := g.TodayPosition(noon.In(zone))
		require.True(t, ok)
		assert.Equal(t, 120.0, pos, zone.String())
		assert.True(t, dates.Today(noon.In(zone)).Equal(jan(3)))
	}
}

func TestSnap(t *testing.T) {
	g := janGrid(t)
	assert.Equal(t, 120.0, g.Snap(100))
	assert.Equal(t, 60.0, g.Snap(89))
	assert.Equal(t, -60.0, g.Snap(-40))
}

func TestIsInRange(t *testing.T) {
	g := janGrid(t)
	assert.True(t, IsInRange(jan(1), g.Range))
	assert.True(t, IsInRange(jan(10), g.Range))
	assert.False(t, IsInRange(jan(11), g.Range))
	assert.False(t, IsInRange(jan(1), nil))
}

func TestGridColumns(t *testing.T) {
	g := janGrid(t)
	assert.Equal(t, 10, g.Columns())
}
