package music

import (
	"context"
	"fmt"
	"strconv"
)

// CommandKind names a player mutation.
type CommandKind int

const (
	CmdPlayPause CommandKind = iota
	CmdNext
	CmdPrevious
	CmdStop
	CmdSeek
	CmdSetVolume
	CmdToggleShuffle
	CmdToggleLove
	CmdSetRepeat
	CmdPlayPlaylist
	CmdPlayTrack
	CmdPlayLibraryTrack
	CmdToggleAirPlay
	CmdAddToPlaylist
)

var commandNames = map[CommandKind]string{
	CmdPlayPause:        "play_pause",
	CmdNext:             "next",
	CmdPrevious:         "previous",
	CmdStop:             "stop",
	CmdSeek:             "seek",
	CmdSetVolume:        "set_volume",
	CmdToggleShuffle:    "toggle_shuffle",
	CmdToggleLove:       "toggle_love",
	CmdSetRepeat:        "set_repeat",
	CmdPlayPlaylist:     "play_playlist",
	CmdPlayTrack:        "play_track",
	CmdPlayLibraryTrack: "play_library_track",
	CmdToggleAirPlay:    "toggle_airplay",
	CmdAddToPlaylist:    "add_to_playlist",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "command(" + strconv.Itoa(int(k)) + ")"
}

// Command is one mutation request. Only the fields relevant to Kind are read.
type Command struct {
	Kind     CommandKind
	Position float64    // CmdSeek, seconds
	Volume   int        // CmdSetVolume, 0..100
	Repeat   RepeatMode // CmdSetRepeat
	Playlist string     // CmdPlayPlaylist, CmdPlayTrack, CmdAddToPlaylist
	Index    int        // CmdPlayTrack, 1-based
	Name     string     // CmdPlayLibraryTrack, CmdToggleAirPlay
	Artist   string     // CmdPlayLibraryTrack
}

// Commander executes player mutations.
type Commander interface {
	Send(ctx context.Context, cmd Command) error
}

// Script renders cmd as AppleScript addressed to app.
func (cmd Command) Script(app string) (string, error) {
	switch cmd.Kind {
	case CmdPlayPause:
		return fmt.Sprintf(`tell application "%s" to playpause`, app), nil
	case CmdNext:
		return fmt.Sprintf(`tell application "%s" to next track`, app), nil
	case CmdPrevious:
		return fmt.Sprintf(`tell application "%s" to previous track`, app), nil
	case CmdStop:
		return fmt.Sprintf(`tell application "%s" to stop`, app), nil
	case CmdSeek:
		pos := cmd.Position
		if pos < 0 {
			pos = 0
		}
		return fmt.Sprintf(`tell application "%s" to set player position to %s`, app,
			strconv.FormatFloat(pos, 'f', -1, 64)), nil
	case CmdSetVolume:
		return fmt.Sprintf(`set volume output volume %d`, clampVolume(cmd.Volume)), nil
	case CmdToggleShuffle:
		return fmt.Sprintf(`tell application "%s"
	if it is running then
		try
			set p to current playlist
			set shuffle enabled of p to not shuffle enabled of p
		on error
			try
				set shuffle enabled to not shuffle enabled
			end try
		end try
	end if
end tell`, app), nil
	case CmdToggleLove:
		return fmt.Sprintf(`tell application "%s"
	if it is running then
		if player state is not stopped then
			try
				set loved of current track to not loved of current track
			end try
		end if
	end if
end tell`, app), nil
	case CmdSetRepeat:
		if cmd.Repeat == RepeatUnknown {
			return "", fmt.Errorf("set repeat: mode is unknown")
		}
		return fmt.Sprintf(`tell application "%s" to set song repeat to %s`, app, cmd.Repeat), nil
	case CmdPlayPlaylist:
		return fmt.Sprintf(`tell application "%s" to play playlist "%s"`, app, Escape(cmd.Playlist)), nil
	case CmdPlayTrack:
		if cmd.Index < 1 {
			return "", fmt.Errorf("play track: index %d out of range", cmd.Index)
		}
		return fmt.Sprintf(`tell application "%s" to play track %d of playlist "%s"`, app, cmd.Index, Escape(cmd.Playlist)), nil
	case CmdPlayLibraryTrack:
		name := Escape(cmd.Name)
		return fmt.Sprintf(`tell application "%[1]s"
	if it is running then
		try
			repeat with t in (search playlist "Library" for "%[2]s" only songs)
				if name of t is "%[2]s" and artist of t is "%[3]s" then
					play t
					return "OK"
				end if
			end repeat
		end try
	end if
end tell
return "FAIL"`, app, name, Escape(cmd.Artist)), nil
	case CmdToggleAirPlay:
		return fmt.Sprintf(`tell application "%s"
	if it is running then
		try
			set d to (first AirPlay device whose name is "%s")
			set selected of d to not selected of d
		end try
	end if
end tell`, app, Escape(cmd.Name)), nil
	case CmdAddToPlaylist:
		return fmt.Sprintf(`tell application "%s"
	duplicate current track to playlist "%s"
end tell`, app, Escape(cmd.Playlist)), nil
	default:
		return "", fmt.Errorf("unknown command %v", cmd.Kind)
	}
}

// Send implements Commander.
func (c *Client) Send(ctx context.Context, cmd Command) error {
	script, err := cmd.Script(c.app)
	if err != nil {
		return err
	}
	if _, err := c.runner.Run(ctx, script); err != nil {
		return fmt.Errorf("%s: %w", cmd.Kind, err)
	}
	return nil
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
