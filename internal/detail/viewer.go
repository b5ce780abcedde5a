// Package detail drives the movie detail view: which title is open, its
// lookup, and the rating the user is about to give it.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/five82/popcorn/internal/flight"
	"github.com/five82/popcorn/internal/movie"
	"github.com/five82/popcorn/internal/omdb"
)

// DefaultTitle is the window title while no movie is open.
const DefaultTitle = "usePopcorn"

// Lookup fetches one title. *omdb.Client implements it.
type Lookup interface {
	Detail(ctx context.Context, id string) (movie.Detail, error)
}

// State is the detail view state exposed to the UI.
type State struct {
	SelectedID string
	Detail     movie.Detail
	Loaded     bool
	Loading    bool
	Err        string
	Rating     int // 0 until the user picks one
}

// Open reports whether a movie is selected.
func (s State) Open() bool {
	return s.SelectedID != ""
}

// Viewer owns the detail state. Like search.Engine it must be driven from a
// single goroutine while Request.Run may run anywhere.
type Viewer struct {
	lookup Lookup
	slot   flight.Slot
	state  State
}

// Request is a pending detail lookup.
type Request struct {
	ctx    context.Context
	gen    uint64
	id     string
	lookup Lookup
}

// Result is the outcome of a Request.
type Result struct {
	Generation uint64
	ID         string
	Detail     movie.Detail
	Err        error
}

// NewViewer returns a Viewer backed by lookup.
func NewViewer(lookup Lookup) *Viewer {
	return &Viewer{lookup: lookup}
}

// Select toggles id: selecting the open movie closes the view and returns
// nil, any other id replaces the selection and returns its lookup.
func (v *Viewer) Select(ctx context.Context, id string) *Request {
	id = strings.TrimSpace(id)
	if id == "" || id == v.state.SelectedID {
		v.Close()
		return nil
	}

	reqCtx, gen := v.slot.Begin(ctx)
	v.state = State{SelectedID: id, Loading: true}
	if v.lookup == nil {
		v.slot.Finish(gen)
		v.state.Loading = false
		v.state.Err = "movie lookup unavailable"
		return nil
	}
	return &Request{ctx: reqCtx, gen: gen, id: id, lookup: v.lookup}
}

// Run performs the lookup.
func (r *Request) Run() Result {
	d, err := r.lookup.Detail(r.ctx, r.id)
	if err == nil && r.ctx.Err() != nil {
		err = r.ctx.Err()
	}
	return Result{Generation: r.gen, ID: r.id, Detail: d, Err: err}
}

// Commit applies res when it belongs to the open selection.
func (v *Viewer) Commit(res Result) bool {
	if !v.slot.Current(res.Generation) || res.ID != v.state.SelectedID {
		log.Printf("detail: discarding stale result for %s (generation %d, latest %d)", res.ID, res.Generation, v.slot.Generation())
		return false
	}
	if res.Err != nil && errors.Is(res.Err, context.Canceled) {
		return false
	}
	v.slot.Finish(res.Generation)

	v.state.Loading = false
	if res.Err != nil {
		log.Printf("detail %s failed: %v", res.ID, res.Err)
		v.state.Err = omdb.UserMessage(res.Err)
		return true
	}
	v.state.Err = ""
	v.state.Detail = res.Detail
	v.state.Loaded = true
	return true
}

// Close clears the selection and cancels its lookup.
func (v *Viewer) Close() {
	v.slot.Invalidate()
	v.state = State{}
}

// SetRating records the user's rating, clamped to 1..10. Zero clears it.
func (v *Viewer) SetRating(n int) {
	if !v.state.Open() {
		return
	}
	switch {
	case n <= 0:
		n = 0
	case n < movie.MinRating:
		n = movie.MinRating
	case n > movie.MaxRating:
		n = movie.MaxRating
	}
	v.state.Rating = n
}

// AdjustRating moves the rating by delta, starting from nothing.
func (v *Viewer) AdjustRating(delta int) {
	next := v.state.Rating + delta
	if next < movie.MinRating {
		next = movie.MinRating
	}
	v.SetRating(next)
}

// CanAdd reports whether the open movie can be added to the watch-list.
func (v *Viewer) CanAdd() bool {
	return v.state.Loaded && v.state.Rating >= movie.MinRating
}

// Watched builds the watch-list record for the open movie.
func (v *Viewer) Watched() (movie.Watched, error) {
	if !v.state.Loaded {
		return movie.Watched{}, fmt.Errorf("no movie loaded")
	}
	return v.state.Detail.Watched(v.state.Rating)
}

// Title is the window title for the current state.
func (v *Viewer) Title() string {
	if v.state.Loaded && strings.TrimSpace(v.state.Detail.Title) != "" {
		return "Movie: " + v.state.Detail.Title
	}
	return DefaultTitle
}

// State returns the current state.
func (v *Viewer) State() State {
	return v.state
}
