package watchlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/popcorn/internal/movie"
)

func TestComputeStats(t *testing.T) {
	s := ComputeStats([]movie.Watched{inception, backToTheFuture})

	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 8.7, s.AvgIMDbRating, 1e-9)
	assert.InDelta(t, 9.5, s.AvgUserRating, 1e-9)
	assert.InDelta(t, 132, s.AvgRuntime, 1e-9)
	assert.False(t, s.Empty())
}

func TestComputeStats_RoundsRuntimeToWholeMinutes(t *testing.T) {
	s := ComputeStats([]movie.Watched{
		{ID: "a", RuntimeMinutes: 100, UserRating: 1},
		{ID: "b", RuntimeMinutes: 101, UserRating: 2},
	})
	assert.InDelta(t, 101, s.AvgRuntime, 1e-9)
	assert.InDelta(t, 1.5, s.AvgUserRating, 1e-9)
}

func TestComputeStats_EmptyIsNaN(t *testing.T) {
	s := ComputeStats(nil)

	assert.True(t, s.Empty())
	assert.Zero(t, s.Count)
	assert.True(t, math.IsNaN(s.AvgIMDbRating))
	assert.True(t, math.IsNaN(s.AvgUserRating))
	assert.True(t, math.IsNaN(s.AvgRuntime))
}

func TestManagerStats(t *testing.T) {
	m := Load(NewMemoryStore(nil))
	assert.True(t, m.Stats().Empty())

	_, _ = m.Add(inception)
	assert.Equal(t, 1, m.Stats().Count)
}
