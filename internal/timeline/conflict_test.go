package timeline

import (
	"testing"

	"github.com/alexanderramin/eventboard/internal/dates"
	"github.com/alexanderramin/eventboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRangeChange_ReportsOverhang(t *testing.T) {
	proposed, err := dates.NewRange(jan(1), jan(5))
	require.NoError(t, err)
	check := ValidateRangeChange(proposed, []TaskSpan{{ID: "t1", Start: jan(3), End: jan(8)}})
	assert.False(t, check.Accepted)
	assert.Equal(t, 1, check.ConflictCount())
	assert.Equal(t, []string{"t1"}, check.Conflicts)
	assert.True(t, check.Proposed.To.Equal(jan(5)))
}

func TestValidateRangeChange_EmptyTaskSet(t *testing.T) {
	proposed, err := dates.NewRange(jan(4), jan(4))
	require.NoError(t, err)
	check := ValidateRangeChange(proposed, nil)
	assert.True(t, check.Accepted)
	assert.Zero(t, check.ConflictCount())
}

func TestValidateRangeChange_FullyOutsideAndInside(t *testing.T) {
	proposed, err := dates.NewRange(jan(5), jan(10))
	require.NoError(t, err)
	spans := []TaskSpan{
		{ID: "before", Start: jan(1), End: jan(2)},
		{ID: "inside", Start: jan(5), End: jan(10)},
		{ID: "starts-early", Start: jan(4), End: jan(6)},
	}
	check := ValidateRangeChange(proposed, spans)
	assert.False(t, check.Accepted)
	assert.ElementsMatch(t, []string{"before", "starts-early"}, check.Conflicts)
}

func TestSpansOf(t *testing.T) {
	tasks := []*domain.Task{{ID: "a", Start: jan(2).Storage(), End: jan(3).Storage()}}
	spans := SpansOf(tasks)
	require.Len(t, spans, 1)
	assert.True(t, spans[0].Start.Equal(jan(2)))
	assert.True(t, spans[0].End.Equal(jan(3)))
}
