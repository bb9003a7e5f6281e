// Package config loads cadence's runtime settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cadence/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are blank or non-positive, use defaults
//
// Command-line flags are applied afterwards through WithPoll and
// WithLogFile.
//
// # Default Values
//
//   - app_name: "Music" (the scripted application)
//   - osascript: /usr/bin/osascript
//   - poll_interval: 2s (never below 250ms)
//   - script_timeout: 5s per osascript process
//   - library_every: 15 (playlist names reload every 15th poll)
//   - queue_size: 10 upcoming tracks
//   - search_limit: 50 library search results
//   - log_file: ~/.local/state/cadence/cadence.log
//
// # TOML Format
//
//	app_name = "Music"
//	poll_interval = "2s"
//	script_timeout = "5s"
//	library_every = 15
//	log_file = "~/.local/state/cadence/cadence.log"
//
// Durations use Go syntax (time.ParseDuration).
//
// # Path Expansion
//
// Paths beginning with ~ are expanded to the user's home directory and made
// absolute. ExpandPath is exported for the prefs and logging packages.
//
// # Error Handling
//
// A missing file is not an error. Unreadable files, malformed TOML and
// unparseable durations are returned wrapped with context.
package config
