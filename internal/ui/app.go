package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/cadence/internal/dispatch"
	"github.com/five82/cadence/internal/music"
	"github.com/five82/cadence/internal/prefs"
	"github.com/five82/cadence/internal/selection"
	"github.com/five82/cadence/internal/state"
)

// View represents the list shown in the browser.
type View int

const (
	ViewPlaylists View = iota
	ViewTracks
	ViewArtists
	ViewArtistTracks
	ViewRecent
	ViewSearch
)

// inputMode says where typed characters go.
type inputMode int

const (
	modeNormal inputMode = iota
	modeFilter           // fuzzy filter over the active list
	modeQuery            // library search query
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Dispatcher *dispatch.Dispatcher
	ThemeName  string
	PrefsPath  string
	LogPath    string
	FrameTick  time.Duration
	Logger     *log.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     *state.Store
	actions   *dispatch.Dispatcher
	prefsPath string
	logPath   string
	frameTick time.Duration
	logger    *log.Logger

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	mini     bool
	showHelp bool
	modal    Modal
	spinner  spinner.Model
	help     help.Model

	// Data state
	snap state.Snapshot

	// Browser state
	view         View
	mode         inputMode
	input        textinput.Model
	playlists    *selection.List[string]
	tracks       *selection.List[music.TrackEntry]
	artists      *selection.List[string]
	artistTracks *selection.List[music.TrackEntry]
	recent       *selection.List[music.QueueEntry]
	results      *selection.List[music.TrackEntry]

	openPlaylist string
	openArtist   string
	focusPlaying bool // select the playing track once the open playlist loads
	autoSelected bool // the current playlist was selected at startup
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	frameTick := opts.FrameTick
	if frameTick <= 0 {
		frameTick = DefaultFrameInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 200

	names := func(s string) []string { return []string{s} }
	entries := func(t music.TrackEntry) []string { return []string{t.Name, t.Artist} }
	titles := func(t music.TrackEntry) []string { return []string{t.Name} }

	m := Model{
		store:        opts.Store,
		actions:      opts.Dispatcher,
		prefsPath:    prefsPath,
		logPath:      opts.LogPath,
		frameTick:    frameTick,
		logger:       logger,
		theme:        GetTheme(themeName),
		keys:         DefaultKeyMap(),
		input:        input,
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:         help.New(),
		playlists:    selection.New(names),
		tracks:       selection.New(entries),
		artists:      selection.New(names),
		artistTracks: selection.New(titles),
		recent:       selection.New(func(e music.QueueEntry) []string { return []string{e.Name, e.Artist} }),
		results:      selection.New(entries),
	}
	m.applyTheme()
	if m.store != nil {
		m.snap = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.frameTick), m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil

	case frameMsg:
		m.refresh()
		return m, frameCmd(m.frameTick)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logsLoadedMsg:
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			return m, cmd
		}
		return m, nil
	}

	// Cursor blink and similar widget messages.
	if m.mode != modeNormal {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.mini {
		return m.renderMini()
	}

	return m.renderMain()
}

// refresh pulls the interpolated snapshot and folds reloaded lists into the
// browser.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.snap = m.store.Tick()
	dirty := m.store.TakeDirty()
	m.syncLists(dirty)
	if s, ok := m.modal.(syncer); ok && dirty != 0 {
		s.Sync(m.snap, dirty)
	}
}

func (m *Model) syncLists(dirty state.Dirty) {
	snap := m.snap

	if dirty.Has(state.DirtyPlaylists) {
		m.playlists.SetItems(snap.Playlists)
		if !m.autoSelected && len(snap.Playlists) > 0 {
			m.autoSelected = true
			if current := snap.CurrentPlaylist; current != "" {
				m.playlists.SelectFunc(func(name string) bool { return name == current })
			}
		}
	}

	if dirty.Has(state.DirtyPlaylistTracks) && snap.PlaylistTracksFor == m.openPlaylist {
		m.tracks.SetItems(snap.PlaylistTracks)
		if m.focusPlaying && m.tracks.Total() > 0 {
			m.focusPlaying = false
			m.selectPlaying(m.tracks, snap.CurrentPlaylist == m.openPlaylist)
		}
	}

	if dirty.Has(state.DirtyArtists) {
		m.artists.SetItems(snap.Artists)
	}

	if dirty.Has(state.DirtyArtistTracks) && snap.ArtistTracksFor == m.openArtist {
		m.artistTracks.SetItems(snap.ArtistTracks)
	}

	if dirty.Has(state.DirtySearch) {
		m.results.SetItems(snap.SearchResults)
		m.results.Top()
	}

	if dirty.Has(state.DirtyHistory) {
		m.recent.SetItems(snap.History)
	}
}

// selectPlaying moves the cursor to the playing track when the list was
// just loaded and the user has not moved yet.
func (m *Model) selectPlaying(list *selection.List[music.TrackEntry], inPlaylist bool) {
	name := m.snap.Track.Name
	if !inPlaylist || name == "" || list.Selected() > 0 {
		return
	}
	list.SelectFunc(func(t music.TrackEntry) bool { return t.Name == name })
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	if m.prefsPath != "" {
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "error", err)
		}
	}
	m.setStatus("Theme: " + m.theme.Name)
}

// applyTheme restyles the bubbles widgets after a theme change.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.input.TextStyle = styles.Text
	m.input.Cursor.Style = styles.AccentText
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.Key
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
}

func (m *Model) setStatus(msg string) {
	if m.store == nil {
		return
	}
	m.store.SetStatus(msg)
	m.snap.Status = msg
}

// renderMain renders the full player: header, body and status bar.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderBody(m.height - 2))
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())

	return b.String()
}

// Messages

type frameMsg time.Time

// Commands

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
