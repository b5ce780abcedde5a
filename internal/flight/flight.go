// Package flight tracks the single latest asynchronous operation for a slot.
//
// Each call to Begin supersedes the previous operation: its context is
// cancelled and its generation stops being current. Completions check
// Current before committing so a late result can never overwrite state owned
// by a newer operation.
//
// A Slot is not safe for concurrent use. It is meant to be driven from a
// single event loop (the Bubble Tea Update goroutine); the contexts it hands
// out may be used from any goroutine.
package flight

import "context"

// Slot owns the generation counter and cancel func for one logical operation.
type Slot struct {
	gen    uint64
	cancel context.CancelFunc
}

// Begin cancels the in-flight operation, advances the generation and returns
// a context for the new operation together with its generation.
func (s *Slot) Begin(parent context.Context) (context.Context, uint64) {
	s.stop()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	s.gen++
	s.cancel = cancel
	return ctx, s.gen
}

// Invalidate cancels the in-flight operation and advances the generation
// without starting a new operation.
func (s *Slot) Invalidate() {
	s.stop()
	s.gen++
}

// Current reports whether gen belongs to the most recent operation.
func (s *Slot) Current(gen uint64) bool {
	return gen != 0 && gen == s.gen
}

// Finish releases the context of gen once its result has been committed.
func (s *Slot) Finish(gen uint64) {
	if s.Current(gen) {
		s.stop()
	}
}

// Generation returns the latest generation handed out.
func (s *Slot) Generation() uint64 {
	return s.gen
}

func (s *Slot) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
