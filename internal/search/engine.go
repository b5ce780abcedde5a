// Package search keeps the result list in step with the query the user typed.
package search

import (
	"context"
	"errors"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/five82/popcorn/internal/flight"
	"github.com/five82/popcorn/internal/movie"
	"github.com/five82/popcorn/internal/omdb"
)

// DefaultMinQueryLength is the shortest trimmed query that reaches the service.
const DefaultMinQueryLength = 3

// Searcher runs one lookup. *omdb.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]movie.Summary, error)
}

// State is the session search state exposed to the UI.
type State struct {
	Query   string
	Results []movie.Summary
	Loading bool
	Err     string
}

// Options configure an Engine.
type Options struct {
	MinQueryLength int    // zero uses DefaultMinQueryLength
	OnQueryChange  func() // called once per query change, e.g. to close the detail view
}

// Engine issues one lookup per query change and discards results that were
// superseded. It must be driven from a single goroutine; Request.Run may be
// called from any goroutine.
type Engine struct {
	searcher Searcher
	minLen   int
	onChange func()

	slot  flight.Slot
	state State
}

// Request is a pending lookup bound to one generation.
type Request struct {
	ctx      context.Context
	gen      uint64
	query    string
	searcher Searcher
}

// Result is the outcome of a Request.
type Result struct {
	Generation uint64
	Query      string
	Movies     []movie.Summary
	Err        error
}

// NewEngine returns an Engine using searcher.
func NewEngine(searcher Searcher, opts Options) *Engine {
	minLen := opts.MinQueryLength
	if minLen <= 0 {
		minLen = DefaultMinQueryLength
	}
	return &Engine{
		searcher: searcher,
		minLen:   minLen,
		onChange: opts.OnQueryChange,
		state:    State{Results: []movie.Summary{}},
	}
}

// SetQuery records a new query and returns the lookup to run, or nil when the
// query is too short to search. Any in-flight lookup is cancelled first.
// Edits that only change surrounding whitespace keep the current lookup and
// results.
func (e *Engine) SetQuery(ctx context.Context, query string) *Request {
	trimmed := strings.TrimSpace(query)
	if trimmed == strings.TrimSpace(e.state.Query) {
		e.state.Query = query
		return nil
	}

	if e.onChange != nil {
		e.onChange()
	}

	reqCtx, gen := e.slot.Begin(ctx)
	e.state.Query = query
	e.state.Loading = true
	e.state.Err = ""

	if utf8.RuneCountInString(trimmed) < e.minLen || e.searcher == nil {
		e.slot.Finish(gen)
		e.state.Results = []movie.Summary{}
		e.state.Loading = false
		return nil
	}

	return &Request{
		ctx:      reqCtx,
		gen:      gen,
		query:    trimmed,
		searcher: e.searcher,
	}
}

// Run performs the lookup. It blocks until the searcher returns.
func (r *Request) Run() Result {
	movies, err := r.searcher.Search(r.ctx, r.query)
	if err == nil && r.ctx.Err() != nil {
		err = r.ctx.Err()
	}
	return Result{Generation: r.gen, Query: r.query, Movies: movies, Err: err}
}

// Commit applies res if it belongs to the latest query. Stale and cancelled
// results are dropped and false is returned.
func (e *Engine) Commit(res Result) bool {
	if !e.slot.Current(res.Generation) {
		log.Printf("search: discarding stale result for %q (generation %d, latest %d)", res.Query, res.Generation, e.slot.Generation())
		return false
	}
	if res.Err != nil && errors.Is(res.Err, context.Canceled) {
		return false
	}
	e.slot.Finish(res.Generation)

	e.state.Loading = false
	if res.Err != nil {
		log.Printf("search %q failed: %v", res.Query, res.Err)
		e.state.Err = omdb.UserMessage(res.Err)
		e.state.Results = []movie.Summary{}
		return true
	}

	e.state.Err = ""
	if res.Movies == nil {
		e.state.Results = []movie.Summary{}
	} else {
		e.state.Results = cloneSummaries(res.Movies)
	}
	return true
}

// Close cancels any in-flight lookup so its completion is never applied.
func (e *Engine) Close() {
	e.slot.Invalidate()
	e.state.Loading = false
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	st := e.state
	st.Results = cloneSummaries(e.state.Results)
	return st
}

func cloneSummaries(items []movie.Summary) []movie.Summary {
	dup := make([]movie.Summary, len(items))
	copy(dup, items)
	return dup
}
