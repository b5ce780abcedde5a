package watchlist

import (
	"math"

	"github.com/five82/popcorn/internal/movie"
)

// Stats summarises a watch-list. Means are NaN for an empty list.
type Stats struct {
	Count         int
	AvgIMDbRating float64 // one decimal
	AvgUserRating float64 // one decimal
	AvgRuntime    float64 // whole minutes
}

// Empty reports whether the stats were computed over no records.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// ComputeStats averages ratings and runtime over items.
func ComputeStats(items []movie.Watched) Stats {
	n := len(items)
	if n == 0 {
		return Stats{
			AvgIMDbRating: math.NaN(),
			AvgUserRating: math.NaN(),
			AvgRuntime:    math.NaN(),
		}
	}

	var imdb, user, runtime float64
	for _, w := range items {
		imdb += w.IMDbRating
		user += float64(w.UserRating)
		runtime += float64(w.RuntimeMinutes)
	}
	count := float64(n)
	return Stats{
		Count:         n,
		AvgIMDbRating: roundTenth(imdb / count),
		AvgUserRating: roundTenth(user / count),
		AvgRuntime:    math.Round(runtime / count),
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
