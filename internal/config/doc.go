// Package config loads popcorn's settings.
//
// # Resolution Order
//
// Later sources win:
//
//  1. Built-in defaults (Default)
//  2. ~/.config/popcorn/config.toml, or the path passed to Load
//  3. POPCORN_* environment variables (a .env file is honoured by the command)
//  4. Command line flags, applied by the caller
//
// A missing config file is not an error. A malformed one is.
//
// # TOML Format
//
//	api_key = "your-omdb-key"
//	base_url = "https://www.omdbapi.com/"
//	watchlist_path = "~/.local/share/popcorn/watched.json"
//	min_query_length = 3
//	request_timeout = "10s"
//	detail_cache_size = 128
//	detail_cache_ttl = "30m"
//	log_file = "~/.local/state/popcorn/popcorn.log"
//
// Every field is optional. Paths get tilde expansion; durations use Go
// duration syntax. The API key is only required by Validate, so commands
// that never reach OMDb can still load a config without one.
package config
