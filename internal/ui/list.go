package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/projection"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
	_ list.Item = groupItem{}
)

// playlistItem wraps [library.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist library.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Title }
func (i playlistItem) Title() string       { return i.playlist.Title }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%d songs", i.playlist.NumSongs)
	if !i.playlist.FetchedAllSongs {
		desc = fmt.Sprintf("%s • not loaded", desc)
	}
	return desc
}

// songItem wraps a projected [projection.ViewRow] to implement [list.Item].
type songItem struct {
	row      projection.ViewRow
	selected bool
}

func (i songItem) FilterValue() string { return i.row.Title }
func (i songItem) Title() string {
	title := i.row.Title
	if i.row.IsDupe {
		title = fmt.Sprintf("%s (dupe)", title)
	}
	return fmt.Sprintf("%s %s", mark(i.selected), title)
}

func (i songItem) Description() string {
	desc := i.row.ArtistsString
	if i.row.AlbumString != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.row.AlbumString)
	}
	if i.row.Duration != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.row.Duration)
	}
	return desc
}

// groupItem wraps a [projection.AlbumGroup] to implement [list.Item].
type groupItem struct {
	group    projection.AlbumGroup
	selected bool
}

func (i groupItem) FilterValue() string { return i.group.Title }
func (i groupItem) Title() string {
	return fmt.Sprintf("%s %s", mark(i.selected), i.group.Title)
}

func (i groupItem) Description() string {
	return fmt.Sprintf("%s • %d tracks", i.group.ArtistsString, i.group.TrackCount)
}

func mark(selected bool) string {
	if selected {
		return "●"
	}
	return "○"
}
