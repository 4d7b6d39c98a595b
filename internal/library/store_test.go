package library

import (
	"errors"
	"testing"

	"github.com/desertthunder/ytmb/internal/shared"
)

func testPlaylists() []Playlist {
	return []Playlist{
		{PlaylistID: "PL1", Title: "Morning Mix"},
		{PlaylistID: "PL2", Title: "Workout"},
	}
}

func testSongs() []RawSong {
	return []RawSong{
		{
			VideoID:    "v1",
			Title:      "First Light",
			Duration:   "3:02",
			SetVideoID: "sv1",
			Artists:    []ArtistRef{{ID: "a1", Name: "Aurora"}},
			Album:      &AlbumRef{ID: "al1", Title: "Daybreak", Thumbnail: &Thumbnail{URL: "http://img/al1"}},
		},
		{
			VideoID:    "v2",
			Title:      "Second Wind",
			Duration:   "4:11",
			SetVideoID: "sv2",
			Artists:    []ArtistRef{{ID: "a1", Name: "Aurora"}, {ID: "a2", Name: "Breeze"}},
		},
		{
			VideoID:    "v1",
			Title:      "First Light",
			Duration:   "3:02",
			SetVideoID: "sv3",
			IsDupe:     true,
			Artists:    []ArtistRef{{ID: "a1", Name: "Aurora"}},
			Album:      &AlbumRef{ID: "al1", Title: "Daybreak", Thumbnail: &Thumbnail{URL: "http://img/al1"}},
		},
	}
}

func seedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(nil)
	store.SetPlaylists(testPlaylists())
	if err := store.SetSongsForPlaylist("PL1", testSongs(), false); err != nil {
		t.Fatalf("SetSongsForPlaylist failed: %v", err)
	}
	return store
}

func TestSetPlaylists(t *testing.T) {
	t.Run("replaces the playlist list", func(t *testing.T) {
		store := NewStore(nil)
		store.SetPlaylists(testPlaylists())

		playlists := store.Playlists()
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].PlaylistID != "PL1" || playlists[1].PlaylistID != "PL2" {
			t.Errorf("playlist order not preserved: %v", playlists)
		}
		if playlists[0].FetchedAllSongs {
			t.Error("fresh summary should not be marked fetched")
		}
	})

	t.Run("keeps prior songs when summary arrives empty", func(t *testing.T) {
		store := seedStore(t)
		store.SetPlaylists(testPlaylists())

		pl, ok := store.PlaylistByID("PL1")
		if !ok {
			t.Fatal("PL1 missing after refresh")
		}
		if len(pl.Songs) != 3 {
			t.Errorf("expected prior songs preserved, got %d entries", len(pl.Songs))
		}
		if !pl.FetchedAllSongs {
			t.Error("FetchedAllSongs flag lost on summary refresh")
		}
	})

	t.Run("drops playlists absent from the refresh", func(t *testing.T) {
		store := seedStore(t)
		store.SetPlaylists([]Playlist{{PlaylistID: "PL2", Title: "Workout"}})

		if _, ok := store.PlaylistByID("PL1"); ok {
			t.Error("PL1 should be gone after refresh without it")
		}
	})
}

func TestSetSongsForPlaylist(t *testing.T) {
	t.Run("builds entries with positional indices", func(t *testing.T) {
		store := seedStore(t)
		pl, _ := store.PlaylistByID("PL1")

		if len(pl.Songs) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(pl.Songs))
		}
		for i, entry := range pl.Songs {
			if entry.Index != i {
				t.Errorf("entry %d has index %d", i, entry.Index)
			}
		}
		if !pl.Songs[2].IsDupe {
			t.Error("isDupe flag lost on third entry")
		}
	})

	t.Run("canonicalizes songs and strips playlist-scoped fields", func(t *testing.T) {
		store := seedStore(t)

		if store.SongCount() != 2 {
			t.Errorf("expected 2 canonical songs for 3 entries, got %d", store.SongCount())
		}
		song, ok := store.SongByID("v1")
		if !ok {
			t.Fatal("v1 not cached")
		}
		if len(song.Playlists) != 2 {
			t.Errorf("v1 should carry both memberships, got %d", len(song.Playlists))
		}
	})

	t.Run("mirrors memberships onto songs", func(t *testing.T) {
		store := seedStore(t)
		song, _ := store.SongByID("v2")

		if len(song.Playlists) != 1 {
			t.Fatalf("expected 1 membership, got %d", len(song.Playlists))
		}
		m := song.Playlists[0]
		if m.PlaylistID != "PL1" || m.SetVideoID != "sv2" || m.Index != 1 {
			t.Errorf("unexpected membership: %+v", m)
		}
		if m.PlaylistName != "Morning Mix" {
			t.Errorf("membership missing playlist name: %+v", m)
		}
	})

	t.Run("refetch removes stale memberships", func(t *testing.T) {
		store := seedStore(t)
		err := store.SetSongsForPlaylist("PL1", testSongs()[:1], false)
		if err != nil {
			t.Fatalf("refetch failed: %v", err)
		}

		song, _ := store.SongByID("v2")
		if len(song.Playlists) != 0 {
			t.Errorf("v2 should have lost its membership, got %v", song.Playlists)
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		store := NewStore(nil)
		err := store.SetSongsForPlaylist("nope", testSongs(), false)
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestSongMergePolicy(t *testing.T) {
	membership := Membership{PlaylistID: "PL1", SetVideoID: "sv1", VideoID: "v1"}
	cached := RawSong{
		VideoID:   "v1",
		Title:     "First Light",
		Thumbnail: &Thumbnail{URL: "http://img/v1"},
		Playlists: []Membership{membership},
	}

	freshStore := func() *Store {
		store := NewStore(nil)
		store.mergeSong(cached, false)
		return store
	}

	t.Run("cached copy wins without a trigger", func(t *testing.T) {
		store := freshStore()
		incoming := cached
		incoming.Title = "Renamed"
		store.mergeSong(incoming, false)

		if store.songs["v1"].Title != "First Light" {
			t.Errorf("cached title should win, got %q", store.songs["v1"].Title)
		}
	})

	t.Run("force refresh overwrites", func(t *testing.T) {
		store := freshStore()
		incoming := cached
		incoming.Title = "Renamed"
		store.mergeSong(incoming, true)

		if store.songs["v1"].Title != "Renamed" {
			t.Errorf("force refresh should overwrite, got %q", store.songs["v1"].Title)
		}
	})

	t.Run("thumbnail change overwrites", func(t *testing.T) {
		store := freshStore()
		incoming := cached
		incoming.Title = "Renamed"
		incoming.Thumbnail = &Thumbnail{URL: "http://img/v1-new"}
		store.mergeSong(incoming, false)

		if store.songs["v1"].Title != "Renamed" {
			t.Error("thumbnail change should trigger overwrite")
		}
	})

	t.Run("membership count change overwrites", func(t *testing.T) {
		store := freshStore()
		incoming := cached
		incoming.Title = "Renamed"
		incoming.Playlists = append([]Membership{membership}, Membership{PlaylistID: "PL2", SetVideoID: "sv2", VideoID: "v1"})
		store.mergeSong(incoming, false)

		if store.songs["v1"].Title != "Renamed" {
			t.Error("membership count change should trigger overwrite")
		}
	})

	t.Run("empty incoming memberships keep the local ones", func(t *testing.T) {
		store := freshStore()
		incoming := cached
		incoming.Playlists = nil
		store.mergeSong(incoming, true)

		if len(store.songs["v1"].Playlists) != 1 {
			t.Errorf("locally accumulated memberships lost: %+v", store.songs["v1"].Playlists)
		}
	})
}

func TestAddSongsToPlaylist(t *testing.T) {
	t.Run("appends entries and mirrors memberships", func(t *testing.T) {
		store := seedStore(t)
		err := store.AddSongsToPlaylist("PL2", []RawSong{{VideoID: "v2", SetVideoID: "sv9"}})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}

		pl, _ := store.PlaylistByID("PL2")
		if len(pl.Songs) != 1 || pl.Songs[0].SetVideoID != "sv9" || pl.Songs[0].Index != 0 {
			t.Errorf("unexpected entries: %+v", pl.Songs)
		}
		song, _ := store.SongByID("v2")
		if len(song.Playlists) != 2 {
			t.Errorf("v2 should carry memberships in both playlists, got %d", len(song.Playlists))
		}
		if song.PlaylistsString != "Morning Mix Workout" {
			t.Errorf("derived playlists string stale: %q", song.PlaylistsString)
		}
	})

	t.Run("rejects songs not in the canonical map", func(t *testing.T) {
		store := seedStore(t)
		err := store.AddSongsToPlaylist("PL2", []RawSong{{VideoID: "ghost", SetVideoID: "sv9"}})
		if !errors.Is(err, shared.ErrUnknownSong) {
			t.Errorf("expected ErrUnknownSong, got %v", err)
		}

		pl, _ := store.PlaylistByID("PL2")
		if len(pl.Songs) != 0 {
			t.Error("failed add must not leave partial entries")
		}
	})
}

func TestRemoveSongsFromPlaylist(t *testing.T) {
	t.Run("removes entry and mirrored membership", func(t *testing.T) {
		store := seedStore(t)
		err := store.RemoveSongsFromPlaylist("PL1", []SongRef{{VideoID: "v1", SetVideoID: "sv3"}})
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		pl, _ := store.PlaylistByID("PL1")
		if len(pl.Songs) != 2 {
			t.Errorf("expected 2 entries left, got %d", len(pl.Songs))
		}
		song, _ := store.SongByID("v1")
		if len(song.Playlists) != 1 || song.Playlists[0].SetVideoID != "sv1" {
			t.Errorf("wrong membership removed: %+v", song.Playlists)
		}
	})

	t.Run("removing an absent membership is a no-op", func(t *testing.T) {
		store := seedStore(t)
		refs := []SongRef{{VideoID: "v1", SetVideoID: "sv3"}}
		if err := store.RemoveSongsFromPlaylist("PL1", refs); err != nil {
			t.Fatal(err)
		}
		if err := store.RemoveSongsFromPlaylist("PL1", refs); err != nil {
			t.Errorf("second removal should be a no-op, got %v", err)
		}

		pl, _ := store.PlaylistByID("PL1")
		if len(pl.Songs) != 2 {
			t.Errorf("repeat removal changed state: %d entries", len(pl.Songs))
		}
	})
}

func TestSortSongsForPlaylist(t *testing.T) {
	t.Run("rewrites entry order", func(t *testing.T) {
		store := seedStore(t)
		pl, _ := store.PlaylistByID("PL1")
		reversed := []PlaylistEntry{pl.Songs[2], pl.Songs[1], pl.Songs[0]}

		if err := store.SortSongsForPlaylist("PL1", reversed); err != nil {
			t.Fatal(err)
		}

		sorted, _ := store.PlaylistByID("PL1")
		if sorted.Songs[0].SetVideoID != "sv3" {
			t.Errorf("order not applied: %+v", sorted.Songs)
		}
	})

	t.Run("requires a fetched playlist", func(t *testing.T) {
		store := NewStore(nil)
		store.SetPlaylists(testPlaylists())
		err := store.SortSongsForPlaylist("PL1", nil)
		if !errors.Is(err, shared.ErrSongsNotLoaded) {
			t.Errorf("expected ErrSongsNotLoaded, got %v", err)
		}
	})
}

func TestAlbumMergePolicy(t *testing.T) {
	base := Album{ID: "al1", Title: "Daybreak", Songs: []RawSong{{VideoID: "v1"}, {VideoID: "v9"}}}

	t.Run("smaller fetch never clobbers a full one", func(t *testing.T) {
		store := NewStore(nil)
		store.SetAlbum(base, false)
		store.SetAlbum(Album{ID: "al1", Title: "Daybreak", Songs: []RawSong{{VideoID: "v1"}}}, false)

		album, _ := store.AlbumByID("al1")
		if len(album.Songs) != 2 {
			t.Errorf("partial fetch overwrote full album: %d songs", len(album.Songs))
		}
	})

	t.Run("description change overwrites", func(t *testing.T) {
		store := NewStore(nil)
		store.SetAlbum(base, false)
		store.SetAlbum(Album{ID: "al1", Title: "Daybreak", Description: "reissue", Songs: []RawSong{{VideoID: "v1"}}}, false)

		album, _ := store.AlbumByID("al1")
		if album.Description != "reissue" {
			t.Error("description change should trigger overwrite")
		}
	})

	t.Run("force refresh overwrites", func(t *testing.T) {
		store := NewStore(nil)
		store.SetAlbum(base, false)
		store.SetAlbum(Album{ID: "al1", Title: "Daybreak"}, true)

		album, _ := store.AlbumByID("al1")
		if len(album.Songs) != 0 {
			t.Error("force refresh should overwrite regardless of size")
		}
	})
}

func TestSetArtist(t *testing.T) {
	store := NewStore(nil)
	store.SetArtist(Artist{
		ID:      "a1",
		Name:    "Aurora",
		Albums:  []Album{{ID: "al1", Title: "Daybreak", Songs: []RawSong{{VideoID: "v1"}}}},
		Singles: []Album{{ID: "al2", Title: "Night Single"}},
	}, false)

	artist, ok := store.ArtistByID("a1")
	if !ok || !artist.FetchedAllData {
		t.Fatalf("artist not cached as fetched: %+v", artist)
	}
	if _, ok := store.AlbumByID("al1"); !ok {
		t.Error("embedded album not fed into album cache")
	}
	if _, ok := store.AlbumByID("al2"); !ok {
		t.Error("embedded single not fed into album cache")
	}
}

func TestDuplicateCount(t *testing.T) {
	store := seedStore(t)

	if got := store.DuplicateCount("PL1"); got != 1 {
		t.Errorf("expected 1 dupe, got %d", got)
	}
	if got := store.DuplicateCount("PL2"); got != 0 {
		t.Errorf("expected 0 dupes in empty playlist, got %d", got)
	}
	if got := store.DuplicateCount("missing"); got != 0 {
		t.Errorf("unknown playlist should report 0, got %d", got)
	}
}

func TestDerivedFields(t *testing.T) {
	store := seedStore(t)

	t.Run("artists and album strings", func(t *testing.T) {
		song, _ := store.SongByID("v2")
		if song.ArtistsString != "Aurora, Breeze" {
			t.Errorf("unexpected artists string: %q", song.ArtistsString)
		}
		if song.AlbumString != "" || song.Thumbnail != nil {
			t.Error("albumless song should have empty album string and nil thumbnail")
		}
	})

	t.Run("thumbnail copied from album", func(t *testing.T) {
		song, _ := store.SongByID("v1")
		if song.AlbumString != "Daybreak" {
			t.Errorf("unexpected album string: %q", song.AlbumString)
		}
		if song.Thumbnail == nil || song.Thumbnail.URL != "http://img/al1" {
			t.Errorf("thumbnail not derived from album: %+v", song.Thumbnail)
		}
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		before, _ := store.SongByID("v1")
		store.mu.Lock()
		store.recomputeDerived()
		store.mu.Unlock()
		after, _ := store.SongByID("v1")
		if before.ArtistsString != after.ArtistsString || before.PlaylistsString != after.PlaylistsString {
			t.Error("recompute changed already-consistent derived fields")
		}
	})
}

func TestReadsReturnCopies(t *testing.T) {
	store := seedStore(t)

	pl, _ := store.PlaylistByID("PL1")
	pl.Songs[0].VideoID = "tampered"
	song, _ := store.SongByID("v1")
	song.Artists[0].Name = "tampered"

	fresh, _ := store.PlaylistByID("PL1")
	if fresh.Songs[0].VideoID != "v1" {
		t.Error("playlist read aliases internal state")
	}
	freshSong, _ := store.SongByID("v1")
	if freshSong.Artists[0].Name != "Aurora" {
		t.Error("song read aliases internal state")
	}
}

func TestSubscribe(t *testing.T) {
	store := NewStore(nil)
	var calls, otherCalls int
	store.Subscribe(func() { calls++ })
	store.Subscribe(func() { otherCalls++ })

	store.SetPlaylists(testPlaylists())
	if err := store.SetSongsForPlaylist("PL1", testSongs(), false); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("expected 2 notifications, got %d", calls)
	}
	if otherCalls != 2 {
		t.Errorf("expected every subscriber to fire, got %d", otherCalls)
	}
}

func TestReset(t *testing.T) {
	store := seedStore(t)
	store.Reset()

	if len(store.Playlists()) != 0 || store.SongCount() != 0 {
		t.Error("reset left state behind")
	}
}
