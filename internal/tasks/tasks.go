// package tasks orchestrates operations between the ytmusicapi proxy and the
// library cache.
//
// The core abstraction is LibraryEngine, which fetches remote data, applies
// it to the cache, and resyncs after failed mutations. Operations emit
// progress updates via channels for non-blocking status reporting to CLI/UI
// layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/services"
	"github.com/desertthunder/ytmb/internal/shared"
)

// Engine defines the operations the CLI and TUI run against the proxy.
type Engine interface {
	// RefreshPlaylists fetches playlist summaries and applies them to the cache.
	RefreshPlaylists(ctx context.Context, progress chan<- ProgressUpdate, ignoreCache bool) ([]library.Playlist, error)

	// LoadPlaylistSongs fetches one playlist's full song list and applies it
	// to the cache, discarding stale completions.
	LoadPlaylistSongs(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, forceRefresh bool) (*library.Playlist, error)

	// LoadAlbum fetches an album into the cache.
	LoadAlbum(ctx context.Context, albumID string, forceRefresh bool) (*library.Album, error)

	// LoadArtist fetches an artist into the cache.
	LoadArtist(ctx context.Context, artistID string, forceRefresh bool) (*library.Artist, error)

	// LoadHistory fetches the play history. History is not cached; entries
	// carry no setVideoIds and change on every play.
	LoadHistory(ctx context.Context) ([]library.RawSong, error)

	// AddToPlaylist submits an add and applies the success subset to the cache.
	AddToPlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, videoIDs []string, shuffle bool) (*services.AddSongsResult, error)

	// RemoveFromPlaylist submits a removal and applies it to the cache,
	// resyncing the playlist when the backend rejects the mutation.
	RemoveFromPlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, refs []library.SongRef) error
}

// LibraryEngine implements Engine over a Service and the library cache.
type LibraryEngine struct {
	service services.Service
	store   *library.Store
	logger  *log.Logger

	// Per-playlist fetch sequencing: a completion older than the last
	// applied one is discarded instead of clobbering newer data.
	mu      sync.Mutex
	issued  map[string]uint64
	applied map[string]uint64
}

// NewLibraryEngine creates an engine over the given service and cache.
func NewLibraryEngine(service services.Service, store *library.Store, logger *log.Logger) *LibraryEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LibraryEngine{
		service: service,
		store:   store,
		logger:  logger.With("component", "tasks"),
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// nextSeq issues a fetch sequence number for a playlist.
func (e *LibraryEngine) nextSeq(playlistID string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.issued[playlistID]++
	return e.issued[playlistID]
}

// tryApply claims the apply slot for a completed fetch. It reports false
// when a newer fetch has already been applied.
func (e *LibraryEngine) tryApply(playlistID string, seq uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq < e.applied[playlistID] {
		return false
	}
	e.applied[playlistID] = seq
	return true
}

// RefreshPlaylists fetches the playlist library and applies it to the cache.
func (e *LibraryEngine) RefreshPlaylists(ctx context.Context, progress chan<- ProgressUpdate, ignoreCache bool) ([]library.Playlist, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchLibraryUpdate())

	playlists, err := e.service.GetLibrary(ctx, ignoreCache)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch library: %w", err)
	}

	e.store.SetPlaylists(playlists)
	e.logger.Debug("refreshed playlist library", "count", len(playlists))
	return e.store.Playlists(), nil
}

// LoadPlaylistSongs fetches one playlist's songs and applies them to the
// cache. A completion that arrives after a newer fetch has already been
// applied is discarded; the caller gets the cached copy either way.
func (e *LibraryEngine) LoadPlaylistSongs(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, forceRefresh bool) (*library.Playlist, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchSongsUpdate(1, 1, playlistID))
	seq := e.nextSeq(playlistID)

	remote, songs, err := e.service.GetPlaylist(ctx, playlistID, forceRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist %s: %w", playlistID, err)
	}

	if !e.tryApply(playlistID, seq) {
		e.logger.Warn("discarding stale playlist fetch", "playlist", playlistID, "seq", seq)
	} else {
		e.ensurePlaylistKnown(remote)
		if err := e.store.SetSongsForPlaylist(playlistID, songs, forceRefresh); err != nil {
			return nil, err
		}
	}

	pl, ok := e.store.PlaylistByID(playlistID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}
	return &pl, nil
}

// ensurePlaylistKnown registers a playlist fetched directly by id before its
// summary was ever loaded, so the song apply has a home.
func (e *LibraryEngine) ensurePlaylistKnown(remote *library.Playlist) {
	if remote == nil {
		return
	}
	if _, ok := e.store.PlaylistByID(remote.PlaylistID); ok {
		return
	}
	summaries := append(e.store.Playlists(), *remote)
	e.store.SetPlaylists(summaries)
}

// LoadAlbum fetches an album and merges it into the cache.
func (e *LibraryEngine) LoadAlbum(ctx context.Context, albumID string, forceRefresh bool) (*library.Album, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	album, err := e.service.GetAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", albumID, err)
	}

	e.store.SetAlbum(*album, forceRefresh)
	cached, ok := e.store.AlbumByID(albumID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrAlbumNotFound, albumID)
	}
	return &cached, nil
}

// LoadArtist fetches an artist and merges it, with its embedded albums and
// singles, into the cache.
func (e *LibraryEngine) LoadArtist(ctx context.Context, artistID string, forceRefresh bool) (*library.Artist, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	artist, err := e.service.GetArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artist %s: %w", artistID, err)
	}

	e.store.SetArtist(*artist, forceRefresh)
	cached, ok := e.store.ArtistByID(artistID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrArtistNotFound, artistID)
	}
	return &cached, nil
}

// LoadHistory fetches the play history.
func (e *LibraryEngine) LoadHistory(ctx context.Context) ([]library.RawSong, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	songs, err := e.service.GetHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return songs, nil
}

// AddToPlaylist submits an add and applies only the success subset to the
// cache. A partial failure is a normal result; the caller branches on the
// partition to build its notification.
func (e *LibraryEngine) AddToPlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, videoIDs []string, shuffle bool) (*services.AddSongsResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, addSongsUpdate(len(videoIDs), playlistID))

	result, err := e.service.AddSongs(ctx, playlistID, videoIDs, shuffle)
	if err != nil {
		return nil, fmt.Errorf("failed to add songs: %w", err)
	}

	if len(result.Success) > 0 {
		if err := e.store.AddSongsToPlaylist(playlistID, result.Success); err != nil {
			// The backend applied the add but the local apply failed, so the
			// cache is behind. Resync rather than leave it diverged.
			e.logger.Warn("local add failed, resyncing", "playlist", playlistID, "err", err)
			e.resync(ctx, progress, playlistID)
		}
	}

	e.logger.Debug("added songs",
		"playlist", playlistID,
		"success", len(result.Success),
		"already_there", len(result.AlreadyThere),
		"failed", len(result.Failed))
	return result, nil
}

// RemoveFromPlaylist submits a removal and strips the memberships from the
// cache. A backend failure leaves the cache untouched but triggers a resync
// so displayed state converges with the backend.
func (e *LibraryEngine) RemoveFromPlaylist(ctx context.Context, progress chan<- ProgressUpdate, playlistID string, refs []library.SongRef) error {
	if e.service == nil {
		return fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, removeSongsUpdate(len(refs), playlistID))

	if err := e.service.RemoveSongs(ctx, playlistID, refs); err != nil {
		e.resync(ctx, progress, playlistID)
		return fmt.Errorf("failed to remove songs: %w", err)
	}

	return e.store.RemoveSongsFromPlaylist(playlistID, refs)
}

// resync refetches a playlist after a failed mutation. Best effort: a resync
// failure is logged, not returned, since the original error is what the
// caller needs.
func (e *LibraryEngine) resync(ctx context.Context, progress chan<- ProgressUpdate, playlistID string) {
	e.sendProgress(progress, resyncUpdate(playlistID))
	if _, err := e.LoadPlaylistSongs(ctx, progress, playlistID, true); err != nil {
		e.logger.Error("resync failed", "playlist", playlistID, "err", err)
	}
}
