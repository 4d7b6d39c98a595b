// package library implements the normalized client-side cache of the remote
// YouTube Music catalog.
//
// The Store holds one canonical copy of every song, album, and artist, keyed
// by stable id, plus an ordered list of playlists. Playlists never hold song
// copies: they hold lightweight entries ({videoId, setVideoId, index, isDupe})
// that resolve against the canonical song map. Every mutation keeps the
// playlist-side entry list and the song-side membership list consistent with
// each other.
package library

import "time"

// Thumbnail is either a remote image URL or a reference to a locally cached
// file, whichever the proxy handed out.
type Thumbnail struct {
	URL      string `json:"url,omitempty"`
	Filepath string `json:"filepath,omitempty"`
}

// ArtistRef is a lightweight pointer to an artist carried inside songs.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AlbumRef is a lightweight pointer to an album carried inside songs.
// PlaylistID is the album's audio playlist id on YouTube Music, used to
// build links back to the album page.
type AlbumRef struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	PlaylistID string     `json:"playlist_id,omitempty"`
	Thumbnail  *Thumbnail `json:"thumbnail,omitempty"`
}

// Membership records that a song appears in a playlist at a position. It is
// the song-side mirror of a PlaylistEntry; SetVideoID is the playlist-scoped
// identifier, distinct from the song's global VideoID.
type Membership struct {
	PlaylistID   string `json:"playlistId"`
	PlaylistName string `json:"playlistName"`
	VideoID      string `json:"videoId"`
	SetVideoID   string `json:"setVideoId"`
	Index        int    `json:"index"`
}

// Song is the canonical, context-free representation of a track. Playlist
// scoped fields (setVideoId, index, isDupe) never appear here; they live on
// the PlaylistEntry and Membership records.
//
// ArtistsString, AlbumString, PlaylistsString, and Thumbnail are derived and
// recomputed after every structural mutation; they are never merged from
// incoming data.
type Song struct {
	VideoID     string       `json:"videoId"`
	Title       string       `json:"title"`
	Duration    string       `json:"duration"`
	DurationSec int          `json:"duration_seconds"`
	Thumbnail   *Thumbnail   `json:"thumbnail,omitempty"`
	Artists     []ArtistRef  `json:"artists"`
	Album       *AlbumRef    `json:"album,omitempty"`
	Playlists   []Membership `json:"playlists"`

	ArtistsString   string `json:"artistsString,omitempty"`
	AlbumString     string `json:"albumString,omitempty"`
	PlaylistsString string `json:"playlistsString,omitempty"`
}

// RawSong is the denormalized shape the proxy returns: song data plus the
// playlist-scoped fields of the listing it arrived in. The store strips the
// playlist-scoped fields before caching the song canonically.
type RawSong struct {
	VideoID     string       `json:"videoId"`
	Title       string       `json:"title"`
	Duration    string       `json:"duration"`
	DurationSec int          `json:"duration_seconds"`
	Thumbnail   *Thumbnail   `json:"thumbnail,omitempty"`
	Artists     []ArtistRef  `json:"artists"`
	Album       *AlbumRef    `json:"album,omitempty"`
	Playlists   []Membership `json:"playlists,omitempty"`

	SetVideoID string `json:"setVideoId,omitempty"`
	Index      int    `json:"index"`
	IsDupe     bool   `json:"isDupe,omitempty"`
}

// Canonical returns the context-free Song for a raw listing entry, with all
// playlist-scoped fields stripped.
func (r RawSong) Canonical() Song {
	return Song{
		VideoID:     r.VideoID,
		Title:       r.Title,
		Duration:    r.Duration,
		DurationSec: r.DurationSec,
		Thumbnail:   r.Thumbnail,
		Artists:     r.Artists,
		Album:       r.Album,
		Playlists:   r.Playlists,
	}
}

// SongRef identifies one playlist membership for removal requests.
type SongRef struct {
	VideoID    string `json:"videoId"`
	SetVideoID string `json:"setVideoId"`
}

// PlaylistEntry is the playlist-side pointer to a canonical song. IsDupe is
// authoritative backend input; the store preserves it through merges and
// never recomputes it from videoId collisions.
type PlaylistEntry struct {
	VideoID    string `json:"videoId"`
	SetVideoID string `json:"setVideoId"`
	Index      int    `json:"index"`
	IsDupe     bool   `json:"isDupe,omitempty"`
}

// Playlist is a playlist summary plus its ordered entry list.
// FetchedAllSongs stays false until the proxy has returned the full song
// list at least once.
type Playlist struct {
	PlaylistID      string          `json:"playlistId"`
	Title           string          `json:"title"`
	Songs           []PlaylistEntry `json:"songs"`
	NumSongs        int             `json:"numSongs"`
	FetchedAllSongs bool            `json:"fetchedAllSongs"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// Album is a canonical album. Songs hold the album's track listing as raw
// songs (albums carry no setVideoIds).
type Album struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	PlaylistID     string     `json:"playlist_id,omitempty"`
	ReleaseType    string     `json:"release_type,omitempty"`
	Thumbnail      *Thumbnail `json:"thumbnail,omitempty"`
	Songs          []RawSong  `json:"songs"`
	FetchedAllData bool       `json:"fetchedAllData"`
}

// Artist is a canonical artist. Fetching an artist also feeds its embedded
// albums and singles into the album cache.
type Artist struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Thumbnail      *Thumbnail `json:"thumbnail,omitempty"`
	Albums         []Album    `json:"albums"`
	Singles        []Album    `json:"singles"`
	Songs          []RawSong  `json:"songs,omitempty"`
	FetchedAllData bool       `json:"fetchedAllData"`
}

func copyThumbnail(t *Thumbnail) *Thumbnail {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyAlbumRef(a *AlbumRef) *AlbumRef {
	if a == nil {
		return nil
	}
	c := *a
	c.Thumbnail = copyThumbnail(a.Thumbnail)
	return &c
}

// Clone returns a deep copy of the song, safe to hand to readers without
// aliasing the store's canonical maps.
func (s Song) Clone() Song {
	c := s
	c.Thumbnail = copyThumbnail(s.Thumbnail)
	c.Album = copyAlbumRef(s.Album)
	c.Artists = append([]ArtistRef(nil), s.Artists...)
	c.Playlists = append([]Membership(nil), s.Playlists...)
	return c
}

// Clone returns a deep copy of the playlist and its entry list.
func (p Playlist) Clone() Playlist {
	c := p
	c.Songs = append([]PlaylistEntry(nil), p.Songs...)
	return c
}
