package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSidebarWidth is the minimum width at which the right panel is shown.
	LayoutSidebarWidth = 72

	// RightPanelWidth is the width of the right panel, border included.
	RightPanelWidth = 32

	// NowPlayingHeight is the height of the now playing box, borders included.
	NowPlayingHeight = 5

	// ControlsHeight is the controls line plus a spacer.
	ControlsHeight = 2

	// ShortcutLines is the height of the shortcut hints in the right panel.
	ShortcutLines = 14
)

// List movement steps.
const (
	// PageStep is how far PgUp and PgDn move the cursor.
	PageStep = 10

	// WheelStep is how far one mouse wheel notch moves the cursor.
	WheelStep = 3
)

// Overlay sizes.
const (
	// HelpWidth is the width of the help overlay.
	HelpWidth = 52

	// PickerWidth is the width of the AirPlay and playlist pickers.
	PickerWidth = 40

	// LogOverlayLines is the number of log records loaded into the log overlay.
	LogOverlayLines = 500
)

// Timing constants.
const (
	// DefaultFrameInterval is how often the model re-reads the store and
	// redraws. Progress interpolation runs at this rate.
	DefaultFrameInterval = 100 * time.Millisecond
)
