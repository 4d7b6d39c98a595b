// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the library:
//  1. [PlaylistListView] : Browse cached playlist summaries
//  2. [SongListView] : Browse a playlist's songs with search, duplicate filter, and album grouping
//  3. [ConfirmRemoveView] : Confirm removal of marked songs
//  4. [ResultView] : Display the outcome of the removal
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Song rows come from the projection pipeline, so the TUI shows exactly what the
// exports and the CLI list commands show; marking rows goes through
// [projection.Selection], so marking an album group marks its songs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, space, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
