// Package ui provides the terminal user interface for popcorn.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model.Update runs on a single goroutine
// and is the only place state changes. Lookups never block it: the search
// engine and the detail viewer hand out requests that run inside tea.Cmd
// goroutines and report back as searchResultMsg / detailResultMsg. Each
// result carries the generation it was issued for, and the owner drops it
// when a newer request has superseded it.
//
// # Package Structure
//
//   - app.go: Model, key handling, commands and Run
//   - header.go: logo, search box, result count and the footer status line
//   - results.go: results pane and pane layout
//   - detail.go: movie detail pane with the rating widget
//   - watched.go: watch-list statistics and entries
//   - theme.go, style_helpers.go: palettes and background-safe rendering
//   - keys.go, help.go: key bindings and the help overlay
//
// # Layout
//
//	┌ Results ─────┐┌ Movie / Movies you watched ───────────┐
//	│ ▶ Title (…)  ││ facts, rating widget, plot, credits   │
//	└──────────────┘└───────────────────────────────────────┘
//
// Either pane collapses to a narrow stub with "[" and "]"; the choice is
// saved in prefs along with the theme.
//
// # Key Bindings
//
//   - /: focus the search box and clear it
//   - esc/enter: leave the search box
//   - j/k, g/G: move in the focused list; tab switches panes
//   - enter/space: open or close the highlighted movie
//   - 1-9, 0, left/right: rate the open movie; a adds it
//   - esc/backspace: close the open movie
//   - x/delete: remove the highlighted watch-list entry
//   - T: cycle theme; ?: help; q or ctrl+c: quit
package ui
