package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/projection"
	"github.com/desertthunder/ytmb/internal/shared"
	"github.com/desertthunder/ytmb/internal/tasks"
	"github.com/samber/lo"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	SongListView
	ConfirmRemoveView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.LibraryEngine
	store        *library.Store
	width        int
	height       int
	playlistList list.Model
	playlists    []library.Playlist
	songList     list.Model
	current      *library.Playlist
	cfg          projection.Config
	result       projection.Result
	selection    *projection.Selection
	searching    bool
	searchDraft  string
	removing     bool
	removed      int
	removeErr    error
	err          error
	help         help.Model
	keys         keyMap
}

type playlistsFetchedMsg struct {
	playlists []library.Playlist
	err       error
}

type songsFetchedMsg struct {
	playlist *library.Playlist
	err      error
}

type removeCompleteMsg struct {
	removed int
	err     error
}

// NewModel creates a new TUI model with the provided dependencies. cfg seeds
// the initial view options; the search, sort, and filter keys mutate it per
// page.
func NewModel(ctx context.Context, engine *tasks.LibraryEngine, store *library.Store, cfg projection.Config) *Model {
	return &Model{
		ctx:       ctx,
		view:      PlaylistListView,
		engine:    engine,
		store:     store,
		cfg:       cfg,
		selection: projection.NewSelection(),
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init initializes the TUI by fetching the playlist summaries.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists(false)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case ConfirmRemoveView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.current = msg.playlist
		if m.songList.Width() == 0 {
			m.songList = list.New(nil, list.NewDefaultDelegate(), 0, 0)
			m.songList.SetSize(m.width-4, m.height-8)
		}
		m.songList.Title = msg.playlist.Title
		m.reproject()
		m.view = SongListView
		return m, nil

	case removeCompleteMsg:
		m.removing = false
		m.removed = msg.removed
		m.removeErr = msg.err
		m.view = ResultView
		if msg.err == nil {
			m.selection.Clear()
			if pl, ok := m.store.PlaylistByID(m.current.PlaylistID); ok {
				m.current = &pl
				m.reproject()
			}
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case SongListView:
		return m.renderSongList()
	case ConfirmRemoveView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchPlaylists(true)
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				m.err = nil
				return m, m.fetchSongs(pl.playlist.PlaylistID, false)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.cfg.SearchFilter != "" {
			m.cfg.SearchFilter = ""
			m.reproject()
			return m, nil
		}
		m.view = PlaylistListView
		m.selection.Clear()
		return m, nil
	case "/":
		m.searching = true
		m.searchDraft = m.cfg.SearchFilter
		return m, nil
	case " ":
		m.toggleHighlighted()
		return m, nil
	case "a":
		m.cfg.AlbumView = !m.cfg.AlbumView
		m.reproject()
		return m, nil
	case "d":
		m.cfg.FilterByDupes = !m.cfg.FilterByDupes
		m.reproject()
		return m, nil
	case "s":
		m.cfg.HideSingles = !m.cfg.HideSingles
		m.reproject()
		return m, nil
	case "S":
		m.cfg.HideAlbums = !m.cfg.HideAlbums
		m.reproject()
		return m, nil
	case "o":
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			// Fire and forget; a failed open shows up in the error view.
			if err := shared.OpenBrowser(shared.SongURL(item.row.VideoID)); err != nil {
				m.err = err
			}
		}
		return m, nil
	case "x":
		if m.selection.Len() > 0 {
			m.view = ConfirmRemoveView
		}
		return m, nil
	case "r":
		return m, m.fetchSongs(m.current.PlaylistID, true)
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.cfg.SearchFilter = m.searchDraft
		m.reproject()
	case tea.KeyEsc:
		m.searching = false
		m.searchDraft = ""
	case tea.KeyBackspace:
		if len(m.searchDraft) > 0 {
			m.searchDraft = m.searchDraft[:len(m.searchDraft)-1]
		}
	case tea.KeySpace:
		m.searchDraft += " "
	case tea.KeyRunes:
		m.searchDraft += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.removing {
		return m, nil
	}
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = SongListView
		return m, nil
	case "y":
		m.removing = true
		return m, m.removeSelected()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r", "esc", "enter":
		m.removeErr = nil
		m.removed = 0
		m.view = SongListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

// toggleHighlighted flips the marked state of the highlighted row or group
// and reconciles the selection, expanding or collapsing groups as needed.
func (m *Model) toggleHighlighted() {
	var id string
	switch item := m.songList.SelectedItem().(type) {
	case songItem:
		id = item.row.ID
	case groupItem:
		id = item.group.ID
	default:
		return
	}

	selected := m.selection.IDs()
	if m.selection.Contains(id) {
		selected = lo.Without(selected, id)
	} else {
		selected = append(selected, id)
	}
	m.selection.Apply(selected, m.result.Groups)
	m.rebuildSongItems()
}

// reproject recomputes the view from the cached playlist and the current
// options, then drops selected ids that fell out of the view.
func (m *Model) reproject() {
	if m.current == nil {
		return
	}
	m.result = projection.Project(m.current.Songs, m.store, m.cfg)

	valid := make([]string, 0, len(m.result.Rows)+len(m.result.Groups))
	for _, row := range m.result.Rows {
		valid = append(valid, row.ID)
	}
	for _, group := range m.result.Groups {
		valid = append(valid, group.ID)
	}
	m.selection.Prune(valid)
	m.rebuildSongItems()
}

func (m *Model) rebuildSongItems() {
	var items []list.Item
	if m.cfg.AlbumView {
		for _, group := range m.result.Groups {
			items = append(items, groupItem{group: group, selected: m.selection.Contains(group.ID)})
		}
	} else {
		for _, row := range m.result.Rows {
			items = append(items, songItem{row: row, selected: m.selection.Contains(row.ID)})
		}
	}

	index := m.songList.Index()
	m.songList.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index >= 0 {
		m.songList.Select(index)
	}
}

func (m *Model) fetchPlaylists(ignoreCache bool) tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.engine.RefreshPlaylists(m.ctx, nil, ignoreCache)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchSongs(playlistID string, forceRefresh bool) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.engine.LoadPlaylistSongs(m.ctx, nil, playlistID, forceRefresh)
		return songsFetchedMsg{playlist: playlist, err: err}
	}
}

func (m *Model) removeSelected() tea.Cmd {
	playlistID := m.current.PlaylistID
	songs := m.selection.SelectedSongs(m.result.Rows, false)
	refs := make([]library.SongRef, 0, len(songs))
	for _, row := range songs {
		if row.SetVideoID != "" {
			refs = append(refs, library.SongRef{VideoID: row.VideoID, SetVideoID: row.SetVideoID})
		}
	}

	return func() tea.Msg {
		if len(refs) == 0 {
			return removeCompleteMsg{err: fmt.Errorf("marked songs have no removable playlist entries")}
		}
		err := m.engine.RemoveFromPlaylist(m.ctx, nil, playlistID, refs)
		return removeCompleteMsg{removed: len(refs), err: err}
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderSongList() string {
	status := m.renderStatus()

	helpKeys := []key.Binding{m.keys.space, m.keys.search, m.keys.albums, m.keys.dupes, m.keys.remove, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", m.songList.View(), status, helpView)
}

func (m *Model) renderStatus() string {
	var parts []string
	if m.searching {
		parts = append(parts, fmt.Sprintf("search: %s▌", m.searchDraft))
	} else if m.cfg.SearchFilter != "" {
		parts = append(parts, fmt.Sprintf("search: %s", m.cfg.SearchFilter))
	}
	if m.cfg.FilterByDupes {
		if m.result.Config.FilterByDupes {
			parts = append(parts, "duplicates only")
		} else {
			parts = append(parts, "duplicates only (none found)")
		}
	}
	if m.cfg.AlbumView {
		parts = append(parts, "albums")
		if m.cfg.HideSingles {
			parts = append(parts, "singles hidden")
		}
		if m.cfg.HideAlbums {
			parts = append(parts, "albums hidden")
		}
	}
	if n := m.selection.Len(); n > 0 {
		parts = append(parts, styles.ok.Render(fmt.Sprintf("%d marked", n)))
	}

	if len(parts) == 0 {
		return ""
	}
	status := parts[0]
	for _, part := range parts[1:] {
		status = fmt.Sprintf("%s • %s", status, part)
	}
	return styles.help.Render(status)
}

func (m *Model) renderConfirm() string {
	songs := m.selection.SelectedSongs(m.result.Rows, false)
	title := styles.title.Render(fmt.Sprintf("Remove %d songs from '%s'?", len(songs), m.current.Title))

	var names string
	for i, row := range songs {
		if i >= 10 {
			names += fmt.Sprintf("\n  … and %d more", len(songs)-i)
			break
		}
		names += fmt.Sprintf("\n  • %s - %s", row.ArtistsString, row.Title)
	}

	if m.removing {
		return fmt.Sprintf("%s%s\n\n%s", title, names, styles.warn.Render("Removing..."))
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", title, names, helpView)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.removeErr != nil {
		body := styles.err.Render(fmt.Sprintf("✗ Remove failed: %v", m.removeErr))
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}

	body := styles.ok.Render(fmt.Sprintf("✓ Removed %d songs from '%s'", m.removed, m.current.Title))
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}
