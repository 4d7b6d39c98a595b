package library

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmb/internal/shared"
	"github.com/samber/lo"
)

// Store is the single source of truth for songs, albums, artists, and
// playlists. Every mutation either fully applies (playlist entries and the
// mirrored song memberships updated together) or is rejected before any
// write, so readers never observe a torn state.
//
// Construct with NewStore and inject into consumers; there is no package
// level instance.
type Store struct {
	mu        sync.Mutex
	playlists []Playlist
	songs     map[string]Song
	albums    map[string]Album
	artists   map[string]Artist

	subscribers []func()
	logger      *log.Logger
}

// NewStore creates an empty Store.
func NewStore(logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		songs:   make(map[string]Song),
		albums:  make(map[string]Album),
		artists: make(map[string]Artist),
		logger:  logger.With("component", "library"),
	}
}

// Subscribe registers a callback invoked after every applied mutation.
// Callbacks run outside the store lock, on the mutating goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := append([]func(){}, s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Reset drops all cached state, returning the store to its initial empty
// shape. Used on logout and in test teardown.
func (s *Store) Reset() {
	s.mu.Lock()
	s.playlists = nil
	s.songs = make(map[string]Song)
	s.albums = make(map[string]Album)
	s.artists = make(map[string]Artist)
	s.mu.Unlock()
	s.notify()
}

// SetPlaylists replaces the playlist list with the incoming summaries.
//
// A summary that arrives without songs keeps the prior local copy's entry
// list and FetchedAllSongs flag when one exists; otherwise it starts empty
// and unfetched. This never fetches songs itself.
func (s *Store) SetPlaylists(summaries []Playlist) {
	s.mu.Lock()
	next := make([]Playlist, 0, len(summaries))
	for _, incoming := range summaries {
		pl := incoming.Clone()
		if len(pl.Songs) == 0 {
			if prior, ok := s.findPlaylist(pl.PlaylistID); ok && len(prior.Songs) > 0 {
				pl.Songs = append([]PlaylistEntry(nil), prior.Songs...)
				pl.FetchedAllSongs = prior.FetchedAllSongs
			} else {
				pl.Songs = []PlaylistEntry{}
				pl.FetchedAllSongs = false
			}
		}
		pl.NumSongs = len(pl.Songs)
		next = append(next, pl)
	}
	s.playlists = next
	s.mu.Unlock()
	s.notify()
}

// SetSongsForPlaylist replaces the playlist's song list with the given raw
// listing and merges every song into the canonical map.
//
// The input order establishes the canonical play order: entry index = list
// position. forceRefresh overwrites canonical songs even when the merge
// heuristic would keep the cached copy.
func (s *Store) SetSongsForPlaylist(playlistID string, songs []RawSong, forceRefresh bool) error {
	s.mu.Lock()
	pl, ok := s.findPlaylist(playlistID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	// Strip this playlist's stale memberships from every canonical song
	// before rebuilding them from the fresh listing, so songs dropped
	// remotely lose their membership here.
	for _, entry := range pl.Songs {
		s.stripMembership(entry.VideoID, playlistID, "")
	}

	entries := make([]PlaylistEntry, len(songs))
	for i, raw := range songs {
		s.mergeSong(raw, forceRefresh)
		entries[i] = PlaylistEntry{
			VideoID:    raw.VideoID,
			SetVideoID: raw.SetVideoID,
			Index:      i,
			IsDupe:     raw.IsDupe,
		}
		s.ensureMembership(raw.VideoID, Membership{
			PlaylistID:   playlistID,
			PlaylistName: pl.Title,
			VideoID:      raw.VideoID,
			SetVideoID:   raw.SetVideoID,
			Index:        i,
		})
	}

	pl.Songs = entries
	pl.NumSongs = len(entries)
	pl.FetchedAllSongs = true
	pl.LastUpdated = time.Now()

	s.recomputeDerived()
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddSongsToPlaylist appends memberships for songs just added remotely. The
// songs must already exist in the canonical map (they were fetched through a
// playlist listing before the user could select them); a missing song is a
// sequencing bug and fails loudly.
func (s *Store) AddSongsToPlaylist(playlistID string, songs []RawSong) error {
	s.mu.Lock()
	pl, ok := s.findPlaylist(playlistID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	for _, raw := range songs {
		if _, exists := s.songs[raw.VideoID]; !exists {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", shared.ErrUnknownSong, raw.VideoID)
		}
	}

	for _, raw := range songs {
		index := len(pl.Songs)
		pl.Songs = append(pl.Songs, PlaylistEntry{
			VideoID:    raw.VideoID,
			SetVideoID: raw.SetVideoID,
			Index:      index,
			IsDupe:     raw.IsDupe,
		})
		s.ensureMembership(raw.VideoID, Membership{
			PlaylistID:   playlistID,
			PlaylistName: pl.Title,
			VideoID:      raw.VideoID,
			SetVideoID:   raw.SetVideoID,
			Index:        index,
		})
	}
	pl.NumSongs = len(pl.Songs)

	s.recomputeDerived()
	s.mu.Unlock()
	s.notify()
	return nil
}

// RemoveSongsFromPlaylist removes the given memberships, matching by
// setVideoId on both the playlist entry list and the canonical songs.
// Removing an already-absent membership is a no-op, not an error.
func (s *Store) RemoveSongsFromPlaylist(playlistID string, refs []SongRef) error {
	s.mu.Lock()
	pl, ok := s.findPlaylist(playlistID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	removed := lo.SliceToMap(refs, func(ref SongRef) (string, bool) { return ref.SetVideoID, true })
	pl.Songs = lo.Filter(pl.Songs, func(entry PlaylistEntry, _ int) bool {
		return !removed[entry.SetVideoID]
	})
	pl.NumSongs = len(pl.Songs)

	for _, ref := range refs {
		s.stripMembership(ref.VideoID, playlistID, ref.SetVideoID)
	}

	s.recomputeDerived()
	s.mu.Unlock()
	s.notify()
	return nil
}

// SortSongsForPlaylist rewrites the playlist's entry order to match the
// given order without touching canonical song content.
func (s *Store) SortSongsForPlaylist(playlistID string, ordered []PlaylistEntry) error {
	s.mu.Lock()
	pl, ok := s.findPlaylist(playlistID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	if !pl.FetchedAllSongs {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrSongsNotLoaded, playlistID)
	}

	pl.Songs = append([]PlaylistEntry(nil), ordered...)
	pl.NumSongs = len(pl.Songs)
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetAlbum merges an album fetch into the cache. The cached copy is
// overwritten only when forceRefresh is set, the album is new, its
// description changed, or the incoming song count is at least the cached
// one, so a late partial fetch never clobbers a full one.
func (s *Store) SetAlbum(album Album, forceRefresh bool) {
	s.mu.Lock()
	album.FetchedAllData = true
	s.mergeAlbum(album, forceRefresh)
	s.recomputeDerived()
	s.mu.Unlock()
	s.notify()
}

// SetArtist caches an artist and feeds its embedded albums and singles into
// the album cache under the same monotonic-growth merge policy.
func (s *Store) SetArtist(artist Artist, forceRefresh bool) {
	s.mu.Lock()
	artist.FetchedAllData = true
	s.artists[artist.ID] = artist
	for _, album := range artist.Albums {
		s.mergeAlbum(album, forceRefresh)
	}
	for _, single := range artist.Singles {
		s.mergeAlbum(single, forceRefresh)
	}
	s.recomputeDerived()
	s.mu.Unlock()
	s.notify()
}

// DuplicateCount reports how many entries in the playlist carry the backend
// supplied isDupe flag. The flag is opaque input; it is never recomputed
// locally.
func (s *Store) DuplicateCount(playlistID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl, ok := s.findPlaylist(playlistID)
	if !ok {
		return 0
	}
	return lo.CountBy(pl.Songs, func(entry PlaylistEntry) bool { return entry.IsDupe })
}

// Playlists returns a copy of the ordered playlist list.
func (s *Store) Playlists() []Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(s.playlists, func(pl Playlist, _ int) Playlist { return pl.Clone() })
}

// PlaylistByID returns a copy of one playlist.
func (s *Store) PlaylistByID(playlistID string) (Playlist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl, ok := s.findPlaylist(playlistID)
	if !ok {
		return Playlist{}, false
	}
	return pl.Clone(), true
}

// SongByID returns a deep copy of one canonical song.
func (s *Store) SongByID(videoID string) (Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	song, ok := s.songs[videoID]
	if !ok {
		return Song{}, false
	}
	return song.Clone(), true
}

// AlbumByID returns a copy of one canonical album.
func (s *Store) AlbumByID(albumID string) (Album, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	album, ok := s.albums[albumID]
	if !ok {
		return Album{}, false
	}
	album.Songs = append([]RawSong(nil), album.Songs...)
	return album, true
}

// ArtistByID returns a copy of one canonical artist.
func (s *Store) ArtistByID(artistID string) (Artist, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	artist, ok := s.artists[artistID]
	if !ok {
		return Artist{}, false
	}
	return artist, true
}

// SongCount reports the size of the canonical song map.
func (s *Store) SongCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.songs)
}

// findPlaylist returns a pointer into the playlist slice. Callers must hold
// the lock and must not retain the pointer past unlock.
func (s *Store) findPlaylist(playlistID string) (*Playlist, bool) {
	for i := range s.playlists {
		if s.playlists[i].PlaylistID == playlistID {
			return &s.playlists[i], true
		}
	}
	return nil, false
}

// mergeSong merges a raw song into the canonical map. The cached copy wins
// unless forceRefresh is set, the song is new, its membership count changed,
// or its thumbnail changed; this keeps locally accumulated memberships from
// being wiped by a stale fetch response.
func (s *Store) mergeSong(raw RawSong, forceRefresh bool) {
	existing, exists := s.songs[raw.VideoID]
	shouldUpdate := forceRefresh ||
		!exists ||
		len(existing.Playlists) != len(raw.Playlists) ||
		differentThumbnails(raw.Thumbnail, existing.Thumbnail)
	if !shouldUpdate {
		return
	}

	canonical := raw.Canonical()
	if exists && len(canonical.Playlists) == 0 {
		// Listing responses may omit the memberships block; keep what we
		// accumulated locally rather than zeroing it.
		canonical.Playlists = existing.Playlists
	}
	s.songs[raw.VideoID] = canonical
}

func differentThumbnails(a, b *Thumbnail) bool {
	if (a == nil) != (b == nil) {
		return true
	}
	return a != nil && b != nil && a.URL != b.URL
}

// ensureMembership upserts a membership on the canonical song, keyed by
// (playlistId, setVideoId).
func (s *Store) ensureMembership(videoID string, m Membership) {
	song, ok := s.songs[videoID]
	if !ok {
		return
	}
	for i, existing := range song.Playlists {
		if existing.PlaylistID == m.PlaylistID && existing.SetVideoID == m.SetVideoID {
			song.Playlists[i] = m
			s.songs[videoID] = song
			return
		}
	}
	song.Playlists = append(song.Playlists, m)
	s.songs[videoID] = song
}

// stripMembership removes memberships for a playlist from a canonical song.
// An empty setVideoID strips all of that playlist's memberships.
func (s *Store) stripMembership(videoID, playlistID, setVideoID string) {
	song, ok := s.songs[videoID]
	if !ok {
		return
	}
	song.Playlists = lo.Filter(song.Playlists, func(m Membership, _ int) bool {
		if m.PlaylistID != playlistID {
			return true
		}
		return setVideoID != "" && m.SetVideoID != setVideoID
	})
	s.songs[videoID] = song
}

// mergeAlbum applies the monotonic album merge policy. Callers hold the lock.
func (s *Store) mergeAlbum(album Album, forceRefresh bool) {
	existing, exists := s.albums[album.ID]
	shouldUpdate := forceRefresh ||
		!exists ||
		existing.Description != album.Description ||
		len(album.Songs) >= len(existing.Songs)
	if shouldUpdate {
		s.albums[album.ID] = album
	}
}

// recomputeDerived rebuilds the derived display strings on every canonical
// song. Total: a missing artist list or album yields empty strings and a nil
// thumbnail, never an error. Callers hold the lock.
func (s *Store) recomputeDerived() {
	for id, song := range s.songs {
		names := lo.Map(song.Artists, func(a ArtistRef, _ int) string { return a.Name })
		song.ArtistsString = strings.Join(names, ", ")

		playlistNames := lo.Map(song.Playlists, func(m Membership, _ int) string { return m.PlaylistName })
		song.PlaylistsString = strings.Join(playlistNames, " ")

		if song.Album != nil {
			song.AlbumString = song.Album.Title
			song.Thumbnail = copyThumbnail(song.Album.Thumbnail)
		} else {
			song.AlbumString = ""
			song.Thumbnail = nil
		}

		s.songs[id] = song
	}
}
