// Package watchlist manages the user's rated movies.
//
// # Overview
//
// The watch-list is the only durable state in popcorn. A Manager holds the
// records in memory, in insertion order, keyed by IMDb id (no duplicates),
// and writes the full list through to a Store after every mutation:
//
//	Load(store)     read once at startup
//	Add(record)     append unless the id exists, then persist
//	Remove(id)      drop if present, then persist
//
// Persistence is write-through, not transactional: a crash between a
// mutation and its save loses that single mutation.
//
// # Failure Handling
//
// Load never fails. A missing file, an unreadable file, malformed JSON or
// records without an id all degrade to an empty (or filtered) list and are
// logged. Save failures are returned to the caller while the in-memory list
// keeps the mutation, so the UI stays consistent with what the user did.
//
// # Storage Format
//
// FileStore keeps a JSON array of movie.Watched at
// ~/.local/share/popcorn/watched.json by default:
//
//	[{"imdbID":"tt1375666","title":"Inception","poster":"...",
//	  "imdbRating":8.8,"runtime":148,"userRating":10}]
//
// # Concurrency
//
// Manager guards its slice with a sync.RWMutex and hands out copies, so the
// UI can read while a save is in progress.
package watchlist
