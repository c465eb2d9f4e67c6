package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDayOf_DropsTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 1, 5, 0, 30, 0, 0, time.UTC)
	night := time.Date(2024, 1, 5, 23, 59, 0, 0, time.UTC)
	assert.True(t, LocalDayOf(morning).Equal(LocalDayOf(night)))
	assert.Equal(t, "2024-01-05", LocalDayOf(night).String())
}

func TestLocalDayOf_UsesInstantLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2024-01-05 20:00 UTC is already Jan 6 in Tokyo.
	instant := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05", LocalDayOf(instant).String())
	assert.Equal(t, "2024-01-06", LocalDayOf(instant.In(tokyo)).String())
}

func TestStorageRoundTrip_AcrossExtremeZones(t *testing.T) {
	day := NewLocalDay(2024, 3, 31)
	stored := day.Storage()
	assert.Equal(t, "2024-03-31T12:00:00Z", stored.String())

	for _, offset := range []int{-11, -5, 0, 5, 13, 14} {
		zone := time.FixedZone("z", offset*3600)
		reloaded := StorageDayOf(stored.Time().In(zone))
		assert.True(t, reloaded.Local().Equal(day), "offset %d", offset)
	}
}

func TestParseStorageDay(t *testing.T) {
	s, err := ParseStorageDay("2024-01-05T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", s.Local().String())

	s, err = ParseStorageDay("2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-06T12:00:00Z", s.String())

	_, err = ParseStorageDay("yesterday")
	assert.Error(t, err)
}

func TestDaysUntil(t *testing.T) {
	a := NewLocalDay(2024, 2, 27)
	b := NewLocalDay(2024, 3, 2)
	assert.Equal(t, 4, a.DaysUntil(b))
	assert.Equal(t, -4, b.DaysUntil(a))
	assert.True(t, a.AddDays(4).Equal(b))
}

func TestNewRange(t *testing.T) {
	r, err := NewRange(NewLocalDay(2024, 1, 1), NewLocalDay(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, r.Days())
	assert.True(t, r.Contains(NewLocalDay(2024, 1, 1)))
	assert.True(t, r.Contains(NewLocalDay(2024, 1, 10)))
	assert.False(t, r.Contains(NewLocalDay(2024, 1, 11)))

	_, err = NewRange(NewLocalDay(2024, 1, 10), NewLocalDay(2024, 1, 1))
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestParseLocalDay(t *testing.T) {
	d, err := ParseLocalDay("2024-12-31")
	require.NoError(t, err)
	y, m, dd := d.Date()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)
	assert.Equal(t, 31, dd)

	_, err = ParseLocalDay("31/12/2024")
	assert.Error(t, err)
}
