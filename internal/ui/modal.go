package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cadence/internal/dispatch"
	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/selection"
	"github.com/five82/cadence/internal/state"
)

// Modal is the interface for overlays that own the keyboard while open.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// syncer is implemented by modals that follow store data.
type syncer interface {
	Sync(snap state.Snapshot, dirty state.Dirty)
}

// airplayModal lists AirPlay outputs; enter or space toggles one.
type airplayModal struct {
	actions *dispatch.Dispatcher
	devices *selection.List[music.AirPlayDevice]
	loaded  bool
}

func newAirPlayModal(actions *dispatch.Dispatcher, snap state.Snapshot) *airplayModal {
	devices := selection.New(func(d music.AirPlayDevice) []string { return []string{d.Name} })
	devices.SetItems(snap.AirPlay)
	return &airplayModal{actions: actions, devices: devices}
}

func (a *airplayModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil, false
	}
	switch {
	case key.Matches(km, keys.Back), key.Matches(km, keys.AirPlay), key.Matches(km, keys.Quit):
		return a, nil, true
	case key.Matches(km, keys.Down):
		a.devices.Move(1)
	case key.Matches(km, keys.Up):
		a.devices.Move(-1)
	case key.Matches(km, keys.ToggleDevice):
		if d, ok := a.devices.CurrentItem(); ok {
			a.actions.ToggleAirPlay(d.Name)
		}
	}
	return a, nil, false
}

func (a *airplayModal) Sync(snap state.Snapshot, dirty state.Dirty) {
	if dirty.Has(state.DirtyAirPlay) {
		a.devices.SetItems(snap.AirPlay)
		a.loaded = true
	}
}

func (a *airplayModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	if a.devices.Len() == 0 {
		msg := ternary(a.loaded, "No devices found", "Looking for devices...")
		return placeOverlay(theme, "AirPlay Devices", styles.FaintText.Render("  "+msg), PickerWidth, width, height)
	}

	inner := PickerWidth - 2
	start, end := a.devices.Window(max(height-8, 1))
	rows := make([]string, 0, end-start)
	for pos, d := range a.devices.Visible()[start:end] {
		icon, style := "○ ", styles.Text
		if d.Selected {
			icon, style = "◉ ", styles.SuccessText
		}
		rows = append(rows, pickerRow(styles, icon+d.Name, style, inner, start+pos == a.devices.Selected()))
	}
	return placeOverlay(theme, "AirPlay Devices", strings.Join(rows, "\n"), PickerWidth, width, height)
}

// playlistPicker adds the current track to the chosen playlist. "/" opens
// a fuzzy filter over the names.
type playlistPicker struct {
	actions   *dispatch.Dispatcher
	playlists *selection.List[string]
	filter    textinput.Model
	filtering bool
}

func newPlaylistPicker(actions *dispatch.Dispatcher, snap state.Snapshot) *playlistPicker {
	playlists := selection.New(func(s string) []string { return []string{s} })
	playlists.SetItems(snap.Playlists)
	filter := textinput.New()
	filter.Prompt = ""
	filter.CharLimit = 100
	return &playlistPicker{actions: actions, playlists: playlists, filter: filter}
}

func (p *playlistPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil, false
	}
	if p.filtering {
		return p.updateFilter(km)
	}
	switch {
	case key.Matches(km, keys.Back), key.Matches(km, keys.AddToPlaylist), key.Matches(km, keys.Quit):
		return p, nil, true
	case key.Matches(km, keys.Filter):
		p.filtering = true
		return p, p.filter.Focus(), false
	case key.Matches(km, keys.Down):
		p.playlists.Move(1)
	case key.Matches(km, keys.Up):
		p.playlists.Move(-1)
	case key.Matches(km, keys.PageDown):
		p.playlists.Move(PageStep)
	case key.Matches(km, keys.PageUp):
		p.playlists.Move(-PageStep)
	case key.Matches(km, keys.Confirm):
		return p, nil, p.choose()
	}
	return p, nil, false
}

// updateFilter handles keys while the filter has focus. Esc drops the
// filter and keeps the picker open.
func (p *playlistPicker) updateFilter(km tea.KeyMsg) (Modal, tea.Cmd, bool) {
	switch km.Type {
	case tea.KeyEsc:
		p.filtering = false
		p.filter.Blur()
		p.filter.Reset()
		p.playlists.SetQuery("")
		return p, nil, false
	case tea.KeyEnter:
		return p, nil, p.choose()
	case tea.KeyDown:
		p.playlists.Move(1)
		return p, nil, false
	case tea.KeyUp:
		p.playlists.Move(-1)
		return p, nil, false
	}
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(km)
	p.playlists.SetQuery(p.filter.Value())
	return p, cmd, false
}

func (p *playlistPicker) choose() bool {
	name, ok := p.playlists.CurrentItem()
	if !ok {
		return false
	}
	p.actions.AddToPlaylist(name)
	return true
}

func (p *playlistPicker) Sync(snap state.Snapshot, dirty state.Dirty) {
	if dirty.Has(state.DirtyPlaylists) {
		p.playlists.SetItems(snap.Playlists)
	}
}

func (p *playlistPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var rows []string
	if p.filtering || p.playlists.Query() != "" {
		rows = append(rows, styles.Heading.Render("/ ")+p.filter.View(), "")
	}

	if p.playlists.Len() == 0 {
		msg := ternary(p.playlists.Total() == 0, "No playlists found", "No matches")
		rows = append(rows, styles.FaintText.Render("  "+msg))
		return placeOverlay(theme, "Add to Playlist", strings.Join(rows, "\n"), PickerWidth, width, height)
	}

	inner := PickerWidth - 2
	start, end := p.playlists.Window(max(height-8-len(rows), 1))
	for pos, name := range p.playlists.Visible()[start:end] {
		rows = append(rows, pickerRow(styles, name, styles.Text, inner, start+pos == p.playlists.Selected()))
	}
	return placeOverlay(theme, "Add to Playlist", strings.Join(rows, "\n"), PickerWidth, width, height)
}

// pickerRow renders one overlay row with the selection marker.
func pickerRow(styles Styles, text string, style lipgloss.Style, width int, selected bool) string {
	if selected {
		return styles.Selected.Render(padRight("▸ "+truncate(text, width-2), width))
	}
	return style.Render("  " + truncate(text, width-2))
}
