// package projection derives renderable song lists from the normalized
// library cache. Project is a pure function over a membership list, a store
// reader, and a view config; it never mutates the cache, and every row it
// returns is an independent copy.
package projection

import (
	"sort"
	"strings"

	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/shared"
)

// Config holds the view options a page applies to its song list.
type Config struct {
	SearchFilter  string
	SortKey       string
	SortAscending bool
	FilterByDupes bool
	AlbumView     bool
	HideSingles   bool
	HideAlbums    bool
}

// StoreReader is the read surface Project needs from the library cache.
type StoreReader interface {
	SongByID(videoID string) (library.Song, bool)
}

// ViewRow is one displayable song: a copy of the canonical song stamped with
// the playlist-scoped fields of the membership it was resolved from. ID is
// the display identity — the setVideoId, or the videoId for lists without
// setVideoIds (history).
type ViewRow struct {
	library.Song

	ID         string
	SetVideoID string
	Index      int
	IsDupe     bool
}

// Result is a projection output. Rows is always populated; Groups is
// populated only when Config.AlbumView is set. Config echoes the effective
// view options, which may differ from the requested ones (the duplicate
// filter auto-disables when it would hide every row).
type Result struct {
	Rows   []ViewRow
	Groups []AlbumGroup
	Config Config
}

// Project resolves a membership list against the store and applies sort,
// duplicate filter, search filter, and album grouping per cfg.
func Project(memberships []library.PlaylistEntry, store StoreReader, cfg Config) Result {
	rows := resolve(memberships, store)
	sortRows(rows, cfg.SortKey, cfg.SortAscending)

	if cfg.FilterByDupes {
		dupes := filterDupes(rows)
		if len(dupes) == 0 {
			cfg.FilterByDupes = false
		} else {
			rows = dupes
		}
	}

	rows = filterSearch(rows, cfg.SearchFilter)

	result := Result{Rows: rows, Config: cfg}
	if cfg.AlbumView {
		result.Groups = groupByAlbum(rows, cfg.HideSingles, cfg.HideAlbums)
	}
	return result
}

// resolve maps each membership to a copy of its canonical song. Memberships
// whose song is missing from the cache are skipped rather than rendered as
// holes.
func resolve(memberships []library.PlaylistEntry, store StoreReader) []ViewRow {
	rows := make([]ViewRow, 0, len(memberships))
	for _, m := range memberships {
		song, ok := store.SongByID(m.VideoID)
		if !ok {
			continue
		}
		id := m.SetVideoID
		if id == "" {
			id = m.VideoID
		}
		rows = append(rows, ViewRow{
			Song:       song,
			ID:         id,
			SetVideoID: m.SetVideoID,
			Index:      m.Index,
			IsDupe:     m.IsDupe,
		})
	}
	return rows
}

// sortRows orders rows by the named key, falling back to ascending index
// (the backend play order) when no key is set. The sort is not stable; ties
// land in arbitrary order.
func sortRows(rows []ViewRow, key string, ascending bool) {
	if key == "" {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
		return
	}
	sort.Slice(rows, func(i, j int) bool {
		c := compareRows(rows[i], rows[j], key)
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

// compareRows compares two rows on a sort key, numerically for numeric keys
// and lexically for string keys.
func compareRows(a, b ViewRow, key string) int {
	switch key {
	case "index":
		return a.Index - b.Index
	case "duration_seconds":
		return a.DurationSec - b.DurationSec
	default:
		return strings.Compare(stringKey(a, key), stringKey(b, key))
	}
}

func stringKey(row ViewRow, key string) string {
	switch key {
	case "title":
		return row.Title
	case "artistsString":
		return row.ArtistsString
	case "albumString":
		return row.AlbumString
	case "playlistsString":
		return row.PlaylistsString
	case "duration":
		return row.Duration
	default:
		return ""
	}
}

func filterDupes(rows []ViewRow) []ViewRow {
	out := make([]ViewRow, 0, len(rows))
	for _, row := range rows {
		if row.IsDupe {
			out = append(out, row)
		}
	}
	return out
}

// filterSearch applies the pipe-OR search filter: the query splits on "|"
// into alternative terms, a row matches a term when any of its display
// strings contains it case-insensitively, and a row matched by several terms
// appears once, at its first match position.
func filterSearch(rows []ViewRow, query string) []ViewRow {
	terms := shared.SplitSearchTerms(query)
	if len(terms) == 0 {
		return rows
	}

	seen := make(map[string]bool, len(rows))
	out := make([]ViewRow, 0, len(rows))
	for _, term := range terms {
		for _, row := range rows {
			if seen[row.ID] || !rowMatches(row, term) {
				continue
			}
			seen[row.ID] = true
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row ViewRow, term string) bool {
	for _, field := range []string{row.Title, row.ArtistsString, row.AlbumString, row.PlaylistsString} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
