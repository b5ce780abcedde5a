// Package omdb provides an HTTP client for the OMDb movie database API.
//
// # Overview
//
// popcorn consumes two read-only OMDb endpoints, both served from the same
// base URL and distinguished by query parameters:
//
//	GET <base>?apikey=<key>&s=<query>   search, returns {Search: [...]}
//	GET <base>?apikey=<key>&i=<imdbID>  detail, returns one title
//
// The wire payloads are mirrored by SearchResponse and DetailResponse in
// types.go and converted to the movie package records at the boundary. OMDb
// uses the literal "N/A" for unknown fields; those become empty strings or
// zero values rather than errors.
//
// # Error Handling
//
// OMDb answers most failures with HTTP 200 and {"Response":"False","Error":...}.
// The client classifies responses as follows:
//
//   - Transport failure, non-2xx status, malformed JSON: ErrFetchFailed
//   - "Movie not found!": ErrNotFound (Search turns it into an empty list)
//   - Any other service message: *ServiceError carrying the message
//   - Context cancellation: the context error, never ErrFetchFailed
//
// # Caching
//
// Detail lookups are memoised in an expiring LRU for the lifetime of the
// process so reopening a title does not cost another request. Search results
// are never cached.
package omdb
