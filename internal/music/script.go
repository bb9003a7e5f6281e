package music

import (
	"strconv"
	"strings"
)

// Sentinels returned by scripts when there is nothing to report.
const (
	notRunningMarker = "NOT_RUNNING"
	stoppedMarker    = "STOPPED"
	noneMarker       = "NONE"
	noMarker         = "NO"
)

var scriptEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", " ",
	"\r", " ",
)

// Escape makes s safe to embed inside an AppleScript string literal.
func Escape(s string) string {
	return scriptEscaper.Replace(s)
}

// ParseNumber reads a number printed by AppleScript, which follows the
// user's locale. A lone comma is a decimal separator; a comma alongside a
// dot is a thousands separator. Unparseable input yields zero.
func ParseNumber(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}
	if strings.Contains(trimmed, ",") && !strings.Contains(trimmed, ".") {
		trimmed = strings.ReplaceAll(trimmed, ",", ".")
	} else {
		trimmed = strings.ReplaceAll(trimmed, ",", "")
	}

	var b strings.Builder
	for _, r := range trimmed {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// splitLines splits script output on newlines, trimming each line and
// dropping blanks.
func splitLines(out string) []string {
	raw := strings.Split(out, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseTrackRows reads tab separated name, artist, duration and optional
// index columns. When the index column is missing the 1-based row number
// is used.
func parseTrackRows(out string) []TrackEntry {
	var rows []TrackEntry
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		entry := TrackEntry{
			Name:     parts[0],
			Artist:   parts[1],
			Duration: ParseNumber(parts[2]),
			Index:    len(rows) + 1,
		}
		if len(parts) > 3 {
			entry.Index = int(ParseNumber(parts[3]))
		}
		rows = append(rows, entry)
	}
	return rows
}

// parsePairs reads tab separated two-column rows.
func parsePairs(out string) [][2]string {
	var pairs [][2]string
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(parts) < 2 {
			continue
		}
		pairs = append(pairs, [2]string{parts[0], parts[1]})
	}
	return pairs
}

// Script templates. %[1]s is always the application name.
const (
	nowPlayingScript = `tell application "%[1]s"
	if it is running then
		if player state is stopped then return "STOPPED"
		set t to current track
		set lv to false
		try
			set lv to loved of t
		end try
		return name of t & "\n" & artist of t & "\n" & album of t & "\n" & (player state as string) & "\n" & duration of t & "\n" & player position & "\n" & (lv as string)
	end if
end tell
return "NOT_RUNNING"`

	playlistsScript = `set AppleScript's text item delimiters to "\n"
tell application "%[1]s"
	if it is running then return name of playlists as text
end tell
return "NOT_RUNNING"`

	upNextUIScript = `tell application "System Events"
	if not (exists process "%[1]s") then return "NO"
	tell process "%[1]s"
		if not (exists window 1) then return "NO"
		try
			set theTable to first table of scroll area 1 of window 1
			set row1 to first row of theTable
			set texts to value of static text of row1
			if (count of texts) >= 2 then
				return item 1 of texts & "\n" & item 2 of texts
			else if (count of texts) = 1 then
				return item 1 of texts
			end if
		end try
	end tell
end tell
return "NO"`

	upNextPlaylistScript = `tell application "%[1]s"
	if it is running then
		if player state is stopped then return "NO"
		try
			set cp to current playlist
			set ct to current track
			set pid to persistent ID of ct
			set tl to tracks of cp
			repeat with i from 1 to count of tl
				if persistent ID of item i of tl is pid then
					if i < count of tl then
						set nt to item (i + 1) of tl
						return name of nt & "\n" & artist of nt
					end if
				end if
			end repeat
		end try
	end if
end tell
return "NO"`

	shuffleScript = `tell application "%[1]s"
	if it is running then
		try
			set p to current playlist
			return shuffle enabled of p as string
		on error
			try
				return shuffle enabled as string
			end try
		end try
	end if
end tell
return "UNKNOWN"`

	repeatScript = `tell application "%[1]s"
	if it is running then
		try
			return song repeat as string
		end try
	end if
end tell
return "UNKNOWN"`

	volumeScript = `output volume of (get volume settings)`

	currentPlaylistScript = `tell application "%[1]s"
	if it is running then
		if player state is not stopped then
			try
				return name of current playlist
			end try
		end if
	end if
end tell
return ""`

	// %[2]d is the maximum number of rows.
	queueScript = `tell application "System Events"
	tell process "%[1]s"
		set sg to splitter group 1 of window 1
		set wasOpen to true
		repeat with g in (groups of sg)
			try
				repeat with cb in (checkboxes of g)
					if description of cb is "playing next" then
						if value of cb is 0 then
							set wasOpen to false
							click cb
							delay 1
						end if
					end if
				end repeat
			end try
		end repeat

		set out to ""
		try
			set tb to table 1 of scroll area 1 of group 3 of sg
			set cnt to 0
			repeat with r in (rows of tb)
				try
					set txts to value of static text of UI element 1 of r
					if (count of txts) >= 2 then
						set songName to item 1 of txts as string
						if songName is not "History" and songName is not "Playing Next" and songName is not "Autoplay" then
							set artistAlbum to item 2 of txts as string
							set oldDelims to AppleScript's text item delimiters
							set AppleScript's text item delimiters to " — "
							try
								set artistPart to text item 1 of artistAlbum
							on error
								set artistPart to artistAlbum
							end try
							set AppleScript's text item delimiters to oldDelims
							set out to out & songName & "\t" & artistPart & "\n"
							set cnt to cnt + 1
							if cnt >= %[2]d then exit repeat
						end if
					end if
				end try
			end repeat
		end try

		if not wasOpen then
			repeat with g in (groups of sg)
				try
					repeat with cb in (checkboxes of g)
						if description of cb is "playing next" then
							click cb
							exit repeat
						end if
					end repeat
				end try
			end repeat
		end if
		return out
	end tell
end tell`

	// %[2]s is the escaped playlist name.
	playlistTracksScript = `tell application "%[1]s"
	if it is running then
		try
			set tl to tracks of playlist "%[2]s"
			set out to ""
			repeat with i from 1 to count of tl
				set t to item i of tl
				set out to out & name of t & "\t" & artist of t & "\t" & (duration of t as string) & "\n"
			end repeat
			return out
		end try
	end if
end tell
return "NONE"`

	artistsScript = `tell application "%[1]s"
	if it is running then
		try
			set allArtists to artist of tracks of playlist "Library"
			set uniqueArts to {}
			repeat with a in allArtists
				set artStr to a as string
				if artStr is not in uniqueArts and artStr is not "" then
					set end of uniqueArts to artStr
				end if
			end repeat
			set AppleScript's text item delimiters to "\n"
			return uniqueArts as text
		end try
	end if
end tell
return "NONE"`

	// %[2]s is the escaped artist name.
	artistTracksScript = `tell application "%[1]s"
	if it is running then
		try
			set results to (every track of playlist "Library" whose artist is "%[2]s")
			set out to ""
			set idx to 0
			repeat with t in results
				set idx to idx + 1
				set out to out & name of t & "\t" & artist of t & "\t" & (duration of t as string) & "\t" & (idx as string) & "\n"
			end repeat
			return out
		end try
	end if
end tell
return "NONE"`

	// %[2]s is the escaped query, %[3]d the result limit.
	searchScript = `tell application "%[1]s"
	if it is running then
		try
			set results to (search playlist "Library" for "%[2]s" only songs)
			set out to ""
			set cnt to 0
			repeat with t in results
				set out to out & name of t & "\t" & artist of t & "\t" & (duration of t as string) & "\t" & (index of t as string) & "\n"
				set cnt to cnt + 1
				if cnt >= %[3]d then exit repeat
			end repeat
			return out
		end try
	end if
end tell
return "NONE"`

	airPlayScript = `tell application "%[1]s"
	if it is running then
		try
			set out to ""
			repeat with d in (AirPlay devices)
				set out to out & name of d & "\t" & (selected of d as string) & "\n"
			end repeat
			return out
		end try
	end if
end tell
return "NONE"`
)
