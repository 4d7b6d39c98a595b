// package services defines interface Service for talking to the ytmusicapi
// proxy over HTTP.
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/shared"
)

// Service is the remote catalog behind the library cache: playlist and song
// listings plus the two playlist mutations. Implementations never touch the
// cache; callers apply results to it.
type Service interface {
	// GetLibrary retrieves the user's playlist summaries. ignoreCache asks
	// the proxy to bypass its own response cache.
	GetLibrary(ctx context.Context, ignoreCache bool) ([]library.Playlist, error)

	// GetPlaylist retrieves one playlist with its full song list.
	GetPlaylist(ctx context.Context, playlistID string, ignoreCache bool) (*library.Playlist, []library.RawSong, error)

	// GetAlbum retrieves an album with its track listing.
	GetAlbum(ctx context.Context, albumID string) (*library.Album, error)

	// GetArtist retrieves an artist with embedded albums and singles.
	GetArtist(ctx context.Context, artistID string) (*library.Artist, error)

	// GetHistory retrieves the play history. History entries carry no
	// setVideoIds.
	GetHistory(ctx context.Context) ([]library.RawSong, error)

	// AddSongs submits video ids for addition to a playlist. The result
	// partitions the ids into success / already_there / failed; a partial
	// failure is a normal result, not an error.
	AddSongs(ctx context.Context, playlistID string, videoIDs []string, shuffle bool) (*AddSongsResult, error)

	// RemoveSongs submits (videoId, setVideoId) pairs for removal.
	RemoveSongs(ctx context.Context, playlistID string, refs []library.SongRef) error

	// Name returns the service name for logs and messages.
	Name() string
}

// AddSongsResult partitions an add-songs submission per id. Success carries
// full song payloads (with fresh setVideoIds) so the caller can append the
// new memberships locally without a refetch.
type AddSongsResult struct {
	Success      []library.RawSong `json:"success"`
	AlreadyThere []string          `json:"already_there"`
	Failed       []string          `json:"failed"`
}

// HTTPError is a non-2xx proxy response, carrying the status and raw body so
// the presentation layer can surface the backend's message.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("proxy returned status %d: %s", e.StatusCode, shared.Truncate(string(e.Body), 200))
	}
	return fmt.Sprintf("proxy returned status %d", e.StatusCode)
}

// Unwrap lets callers match with errors.Is(err, shared.ErrAPIRequest).
func (e *HTTPError) Unwrap() error {
	return shared.ErrAPIRequest
}
