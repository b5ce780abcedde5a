// Package movie defines the records popcorn moves between the lookup service,
// the watch-list and the UI.
package movie

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rating bounds for user ratings.
const (
	MinRating = 1
	MaxRating = 10
)

// ErrInvalidRating reports a user rating outside MinRating..MaxRating.
var ErrInvalidRating = errors.New("rating must be between 1 and 10")

// Summary is one search hit.
type Summary struct {
	ID        string
	Title     string
	Year      string
	PosterURL string
}

// Detail is the full record for a single title.
type Detail struct {
	ID         string
	Title      string
	Year       string
	PosterURL  string
	Runtime    string // e.g. "148 min" or "N/A"
	IMDbRating float64
	Plot       string
	Released   string
	Actors     string
	Director   string
	Genre      string
}

// RuntimeMinutes returns the parsed runtime, zero when unknown.
func (d Detail) RuntimeMinutes() int {
	return ParseRuntime(d.Runtime)
}

// RuntimeLabel formats the runtime for display; unknown runtimes show as "0 min".
func (d Detail) RuntimeLabel() string {
	text := strings.TrimSpace(d.Runtime)
	if text == "" || strings.EqualFold(text, "N/A") {
		return "0 min"
	}
	return text
}

// Watched derives the watch-list record for this detail.
func (d Detail) Watched(userRating int) (Watched, error) {
	if userRating < MinRating || userRating > MaxRating {
		return Watched{}, fmt.Errorf("%w: got %d", ErrInvalidRating, userRating)
	}
	if strings.TrimSpace(d.ID) == "" {
		return Watched{}, errors.New("movie id is empty")
	}
	return Watched{
		ID:             d.ID,
		Title:          d.Title,
		Year:           d.Year,
		PosterURL:      d.PosterURL,
		IMDbRating:     d.IMDbRating,
		RuntimeMinutes: d.RuntimeMinutes(),
		UserRating:     userRating,
	}, nil
}

// Watched is a rated movie on the watch-list. The JSON layout is the persisted form.
type Watched struct {
	ID             string  `json:"imdbID"`
	Title          string  `json:"title"`
	Year           string  `json:"year,omitempty"`
	PosterURL      string  `json:"poster"`
	IMDbRating     float64 `json:"imdbRating"`
	RuntimeMinutes int     `json:"runtime"`
	UserRating     int     `json:"userRating"`
}

// Valid reports whether the record can live on a watch-list.
func (w Watched) Valid() bool {
	return strings.TrimSpace(w.ID) != ""
}

// maxRuntimeMinutes bounds parsed runtimes; larger values count as unparsable.
const maxRuntimeMinutes = math.MaxInt32

// ParseRuntime extracts whole minutes from runtime text such as "148 min".
// Anything unparsable, including "N/A", yields zero.
func ParseRuntime(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	head := fields[0]
	if n, err := strconv.Atoi(head); err == nil {
		if n < 0 || n > maxRuntimeMinutes {
			return 0
		}
		return n
	}
	f, err := strconv.ParseFloat(head, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > maxRuntimeMinutes {
		return 0
	}
	return int(math.Round(f))
}

// ParseRating parses a decimal rating such as "8.8"; "N/A" and garbage yield zero.
func ParseRating(text string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
