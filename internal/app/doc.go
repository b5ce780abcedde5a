// Package app provides the orchestration layer for popcorn.
//
// # Overview
//
// This package wires configuration, the OMDb client, the watch-list and the
// search and detail state machines to the Bubble Tea UI. It is the
// composition root: every dependency is built here and handed down.
//
// # Startup
//
//  1. Load ~/.config/popcorn/config.toml, apply POPCORN_* environment
//     variables, then command line overrides (LoadConfig)
//  2. Route the standard logger to the configured log file, or discard it
//  3. Load UI preferences (theme, collapsed panes); failures fall back to
//     defaults
//  4. Build the OMDb client, open the watch-list file and wire the search
//     engine so a query change closes the open movie (NewSession)
//  5. Run the TUI until the user quits or the context is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> LoadConfig()        file, env, flags
//	       ├─────> setupLogging()      tea.LogToFile or discard
//	       ├─────> NewSession()        omdb.Client, watchlist, search, detail
//	       └─────> ui.Run()            TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Unreadable or malformed config file, missing API key
//   - Log file that cannot be opened
//
// Everything after startup is recoverable: failed lookups are shown in the
// UI, an unreadable watch-list starts empty, and failed saves are reported
// in the status line while the in-memory list keeps the change.
package app
