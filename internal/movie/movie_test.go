package movie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuntime(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"148 min", 148},
		{"N/A", 0},
		{"", 0},
		{"   ", 0},
		{"90", 90},
		{"abc min", 0},
		{"-5 min", 0},
		{"95.6 min", 96},
		{"  116 min  ", 116},
		{"1e300 min", 0},
		{"99999999999 min", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRuntime(tt.in))
		})
	}
}

func TestParseRating(t *testing.T) {
	assert.InDelta(t, 8.8, ParseRating("8.8"), 1e-9)
	assert.Zero(t, ParseRating("N/A"))
	assert.Zero(t, ParseRating(""))
	assert.Zero(t, ParseRating("-1"))
}

func TestDetailWatched(t *testing.T) {
	d := Detail{
		ID:         "tt1375666",
		Title:      "Inception",
		Year:       "2010",
		PosterURL:  "https://example.com/p.jpg",
		Runtime:    "148 min",
		IMDbRating: 8.8,
	}

	w, err := d.Watched(10)
	require.NoError(t, err)
	assert.Equal(t, Watched{
		ID:             "tt1375666",
		Title:          "Inception",
		Year:           "2010",
		PosterURL:      "https://example.com/p.jpg",
		IMDbRating:     8.8,
		RuntimeMinutes: 148,
		UserRating:     10,
	}, w)
	assert.True(t, w.Valid())
}

func TestDetailWatched_UnknownRuntimeIsZero(t *testing.T) {
	w, err := Detail{ID: "tt1", Runtime: "N/A"}.Watched(5)
	require.NoError(t, err)
	assert.Zero(t, w.RuntimeMinutes)
}

func TestDetailWatched_RejectsBadInput(t *testing.T) {
	_, err := Detail{ID: "tt1"}.Watched(0)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = Detail{ID: "tt1"}.Watched(11)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = Detail{}.Watched(5)
	assert.Error(t, err)
}

func TestDetailRuntimeLabel(t *testing.T) {
	assert.Equal(t, "0 min", Detail{Runtime: "N/A"}.RuntimeLabel())
	assert.Equal(t, "0 min", Detail{}.RuntimeLabel())
	assert.Equal(t, "148 min", Detail{Runtime: "148 min"}.RuntimeLabel())
}
