// Package logtail reads the tail of cadence's log file for the in-app log
// overlay.
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines so only the requested tail is
// kept in memory however large the file has grown:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines:
//	   - Return first 'count' entries from buffer
//	4. If total >= maxLines:
//	   - Return buffer starting from current index (oldest line)
//
// A non-positive maxLines returns the whole file.
//
// # Parsing
//
// The application logger writes logfmt:
//
//	time=2025-10-08T21:01:05Z level=info msg="poll complete" component=poller track=Run
//
// Parse decodes a line with go-logfmt into a Record, lifting time, level,
// msg and component out of the key/value list. Anything that does not
// decode (a panic trace, a truncated write) comes back with Raw set and the
// original text in Msg, so the overlay can still show it.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Other errors (permission
// denied, I/O errors) are returned wrapped. Parse never fails.
//
// Styling is left to the ui package.
package logtail
