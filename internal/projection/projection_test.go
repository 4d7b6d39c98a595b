package projection

import (
	"testing"

	"github.com/desertthunder/ytmb/internal/library"
)

type fakeStore map[string]library.Song

func (f fakeStore) SongByID(videoID string) (library.Song, bool) {
	song, ok := f[videoID]
	if !ok {
		return library.Song{}, false
	}
	return song.Clone(), true
}

func viewStore() fakeStore {
	return fakeStore{
		"v1": {
			VideoID:       "v1",
			Title:         "First Light",
			DurationSec:   182,
			Artists:       []library.ArtistRef{{ID: "a1", Name: "Aurora"}},
			Album:         &library.AlbumRef{ID: "al1", Title: "Daybreak"},
			ArtistsString: "Aurora",
			AlbumString:   "Daybreak",
		},
		"v2": {
			VideoID:       "v2",
			Title:         "Second Wind",
			DurationSec:   251,
			Artists:       []library.ArtistRef{{ID: "a2", Name: "Breeze"}},
			ArtistsString: "Breeze",
		},
		"v3": {
			VideoID:       "v3",
			Title:         "Daybreak Reprise",
			DurationSec:   120,
			Artists:       []library.ArtistRef{{ID: "a1", Name: "Aurora"}},
			Album:         &library.AlbumRef{ID: "al1", Title: "Daybreak"},
			ArtistsString: "Aurora",
			AlbumString:   "Daybreak",
		},
	}
}

func viewMemberships() []library.PlaylistEntry {
	return []library.PlaylistEntry{
		{VideoID: "v2", SetVideoID: "sv2", Index: 1},
		{VideoID: "v1", SetVideoID: "sv1", Index: 0},
		{VideoID: "v3", SetVideoID: "sv3", Index: 2, IsDupe: true},
	}
}

func TestProjectResolve(t *testing.T) {
	t.Run("default order restores backend index order", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{})
		if len(result.Rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(result.Rows))
		}
		for i, row := range result.Rows {
			if row.Index != i {
				t.Errorf("row %d has index %d", i, row.Index)
			}
		}
	})

	t.Run("rows stamp membership fields and display id", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{})
		row := result.Rows[2]
		if row.ID != "sv3" || !row.IsDupe {
			t.Errorf("membership fields not stamped: %+v", row)
		}
	})

	t.Run("display id falls back to videoId", func(t *testing.T) {
		memberships := []library.PlaylistEntry{{VideoID: "v1"}}
		result := Project(memberships, viewStore(), Config{})
		if result.Rows[0].ID != "v1" {
			t.Errorf("expected videoId fallback, got %q", result.Rows[0].ID)
		}
	})

	t.Run("unresolvable memberships are skipped", func(t *testing.T) {
		memberships := append(viewMemberships(), library.PlaylistEntry{VideoID: "ghost", SetVideoID: "sv9"})
		result := Project(memberships, viewStore(), Config{})
		if len(result.Rows) != 3 {
			t.Errorf("expected 3 rows, got %d", len(result.Rows))
		}
	})

	t.Run("rows do not alias the store", func(t *testing.T) {
		store := viewStore()
		result := Project(viewMemberships(), store, Config{})
		result.Rows[0].Artists[0].Name = "tampered"
		if store["v1"].Artists[0].Name != "Aurora" {
			t.Error("projection aliased store data")
		}
	})
}

func TestProjectSort(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantFirst string
	}{
		{"title ascending", Config{SortKey: "title", SortAscending: true}, "Daybreak Reprise"},
		{"title descending", Config{SortKey: "title"}, "Second Wind"},
		{"duration seconds ascending", Config{SortKey: "duration_seconds", SortAscending: true}, "Daybreak Reprise"},
		{"artists descending", Config{SortKey: "artistsString"}, "Second Wind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Project(viewMemberships(), viewStore(), tt.cfg)
			if result.Rows[0].Title != tt.wantFirst {
				t.Errorf("expected %q first, got %q", tt.wantFirst, result.Rows[0].Title)
			}
		})
	}
}

func TestProjectDupeFilter(t *testing.T) {
	t.Run("retains only flagged rows", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{FilterByDupes: true})
		if len(result.Rows) != 1 || result.Rows[0].ID != "sv3" {
			t.Fatalf("unexpected rows: %+v", result.Rows)
		}
		if !result.Config.FilterByDupes {
			t.Error("filter should stay enabled when dupes exist")
		}
	})

	t.Run("auto-disables when no row is flagged", func(t *testing.T) {
		memberships := viewMemberships()[:2]
		result := Project(memberships, viewStore(), Config{FilterByDupes: true})
		if len(result.Rows) != 2 {
			t.Errorf("expected full list after auto-disable, got %d rows", len(result.Rows))
		}
		if result.Config.FilterByDupes {
			t.Error("filter should report disabled in the effective config")
		}
	})
}

func TestProjectSearch(t *testing.T) {
	t.Run("substring match is case-insensitive across fields", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{SearchFilter: "AURORA"})
		if len(result.Rows) != 2 {
			t.Errorf("expected 2 matches on artist, got %d", len(result.Rows))
		}
	})

	t.Run("pipe means OR across terms", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{SearchFilter: "breeze | reprise"})
		if len(result.Rows) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(result.Rows))
		}
	})

	t.Run("row matched by several terms appears once", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{SearchFilter: "daybreak|aurora"})
		if len(result.Rows) != 2 {
			t.Errorf("expected dedup to 2 rows, got %d", len(result.Rows))
		}
	})

	t.Run("blank query applies no filter", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{SearchFilter: "  "})
		if len(result.Rows) != 3 {
			t.Errorf("expected all rows, got %d", len(result.Rows))
		}
	})
}

func TestProjectGrouping(t *testing.T) {
	t.Run("groups by album with artist buckets for loose songs", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{AlbumView: true})
		if len(result.Groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(result.Groups))
		}

		first := result.Groups[0]
		if first.ID != "al1" || first.TrackCount != 2 {
			t.Errorf("unexpected first group: %+v", first)
		}
		second := result.Groups[1]
		if second.ID != "Breeze" || second.Title != "Breeze" || second.TrackCount != 1 {
			t.Errorf("unexpected artist bucket: %+v", second)
		}
	})

	t.Run("groups order by earliest child index", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{AlbumView: true})
		if result.Groups[0].ID != "al1" {
			t.Error("album containing index 0 should come first")
		}
	})

	t.Run("grouping is deterministic", func(t *testing.T) {
		first := Project(viewMemberships(), viewStore(), Config{AlbumView: true})
		for range 10 {
			again := Project(viewMemberships(), viewStore(), Config{AlbumView: true})
			if len(again.Groups) != len(first.Groups) {
				t.Fatal("group count changed between runs")
			}
			for i := range again.Groups {
				if again.Groups[i].ID != first.Groups[i].ID {
					t.Fatalf("group order changed between runs: %v vs %v", again.Groups[i].ID, first.Groups[i].ID)
				}
			}
		}
	})

	t.Run("hideSingles removes one-child groups", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{AlbumView: true, HideSingles: true})
		if len(result.Groups) != 1 || result.Groups[0].ID != "al1" {
			t.Errorf("expected only the album group: %+v", result.Groups)
		}
	})

	t.Run("hideAlbums removes multi-child groups", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{AlbumView: true, HideAlbums: true})
		if len(result.Groups) != 1 || result.Groups[0].ID != "Breeze" {
			t.Errorf("expected only the single: %+v", result.Groups)
		}
	})

	t.Run("both toggles yield an empty grouped list", func(t *testing.T) {
		result := Project(viewMemberships(), viewStore(), Config{AlbumView: true, HideSingles: true, HideAlbums: true})
		if len(result.Groups) != 0 {
			t.Errorf("expected no groups, got %d", len(result.Groups))
		}
	})
}

func TestGroupArtistsString(t *testing.T) {
	children := []ViewRow{
		{Song: library.Song{Artists: []library.ArtistRef{{Name: "Aurora"}, {Name: "Breeze"}}}},
		{Song: library.Song{Artists: []library.ArtistRef{{Name: "Breeze"}}}},
		{Song: library.Song{Artists: []library.ArtistRef{{Name: "Breeze"}, {Name: "Cinder"}}}},
	}

	got := groupArtistsString(children)
	if got != "Breeze, Aurora, Cinder" {
		t.Errorf("expected frequency order, got %q", got)
	}
}
