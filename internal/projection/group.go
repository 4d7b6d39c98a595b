package projection

import (
	"sort"
	"strings"

	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/shared"
)

// artistsStringLimit caps a group's joined artist names before the ellipsis.
const artistsStringLimit = 100

// AlbumGroup is one album row in grouped view. Songs without an album bucket
// under their artist string, so loose singles by one artist still merge into
// a single pseudo-album row. TrackCount fills the duration column in grouped
// view; it is a child count, not a time.
type AlbumGroup struct {
	ID            string
	Title         string
	ArtistsString string
	Thumbnail     *library.Thumbnail
	TrackCount    int
	Children      []ViewRow
}

// groupByAlbum buckets rows by album id (artist string for albumless rows),
// ordered by the earliest child index so grouping preserves the flat list's
// first-occurrence order.
func groupByAlbum(rows []ViewRow, hideSingles, hideAlbums bool) []AlbumGroup {
	type bucket struct {
		group    AlbumGroup
		minIndex int
	}
	byKey := make(map[string]*bucket)
	var order []string

	for _, row := range rows {
		key := row.ArtistsString
		title := row.ArtistsString
		if row.Album != nil {
			key = row.Album.ID
			title = row.Album.Title
		}

		b, ok := byKey[key]
		if !ok {
			b = &bucket{
				group:    AlbumGroup{ID: key, Title: title, Thumbnail: row.Thumbnail},
				minIndex: row.Index,
			}
			byKey[key] = b
			order = append(order, key)
		}
		b.group.Children = append(b.group.Children, row)
		if row.Index < b.minIndex {
			b.minIndex = row.Index
		}
	}

	groups := make([]AlbumGroup, 0, len(byKey))
	for _, key := range order {
		b := byKey[key]
		if hideSingles && len(b.group.Children) == 1 {
			continue
		}
		if hideAlbums && len(b.group.Children) > 1 {
			continue
		}
		b.group.TrackCount = len(b.group.Children)
		b.group.ArtistsString = groupArtistsString(b.group.Children)
		groups = append(groups, b.group)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return byKey[groups[i].ID].minIndex < byKey[groups[j].ID].minIndex
	})
	return groups
}

// groupArtistsString joins the children's artist names most-frequent-first,
// truncated for display.
func groupArtistsString(children []ViewRow) string {
	counts := make(map[string]int)
	var names []string
	for _, child := range children {
		for _, artist := range child.Artists {
			if counts[artist.Name] == 0 {
				names = append(names, artist.Name)
			}
			counts[artist.Name]++
		}
	}

	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	return shared.Truncate(strings.Join(names, ", "), artistsStringLimit)
}
