package omdb

import (
	"strings"

	"github.com/five82/popcorn/internal/movie"
)

const responseFalse = "False"

// envelope carries the status fields OMDb puts on every payload.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (e envelope) failed() bool {
	return strings.EqualFold(strings.TrimSpace(e.Response), responseFalse)
}

// SearchResponse mirrors the payload returned for `s=` queries.
type SearchResponse struct {
	envelope
	Search       []SearchHit `json:"Search"`
	TotalResults string      `json:"totalResults"`
}

// SearchHit is one entry of SearchResponse.Search.
type SearchHit struct {
	IMDbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// DetailResponse mirrors the payload returned for `i=` lookups.
type DetailResponse struct {
	envelope
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	IMDbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

// Summaries converts the hits, dropping entries without an id and repeated ids.
func (r SearchResponse) Summaries() []movie.Summary {
	out := make([]movie.Summary, 0, len(r.Search))
	seen := make(map[string]struct{}, len(r.Search))
	for _, hit := range r.Search {
		id := strings.TrimSpace(hit.IMDbID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, movie.Summary{
			ID:        id,
			Title:     strings.TrimSpace(hit.Title),
			Year:      strings.TrimSpace(hit.Year),
			PosterURL: cleanField(hit.Poster),
		})
	}
	return out
}

// Detail converts the payload. requestedID fills in a missing imdbID.
func (r DetailResponse) Detail(requestedID string) movie.Detail {
	id := strings.TrimSpace(r.IMDbID)
	if id == "" {
		id = strings.TrimSpace(requestedID)
	}
	return movie.Detail{
		ID:         id,
		Title:      strings.TrimSpace(r.Title),
		Year:       strings.TrimSpace(r.Year),
		PosterURL:  cleanField(r.Poster),
		Runtime:    strings.TrimSpace(r.Runtime),
		IMDbRating: movie.ParseRating(r.IMDbRating),
		Plot:       cleanField(r.Plot),
		Released:   cleanField(r.Released),
		Actors:     cleanField(r.Actors),
		Director:   cleanField(r.Director),
		Genre:      cleanField(r.Genre),
	}
}

// cleanField maps OMDb's "N/A" placeholder to the empty string.
func cleanField(value string) string {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}
