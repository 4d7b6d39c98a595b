package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/shared"
	"golang.org/x/time/rate"
)

// RefreshOpts configures a full-library refresh.
type RefreshOpts struct {
	ForceRefresh bool    // Bypass the proxy's response cache
	NumWorkers   int     // Concurrent playlist fetches (default: 3)
	RateLimit    float64 // Requests per second (default: 2)
}

// PlaylistRefreshResult is the outcome of refreshing one playlist.
type PlaylistRefreshResult struct {
	PlaylistID   string
	PlaylistName string
	SongCount    int
	Success      bool
	Error        error
}

// RefreshResult summarizes a full-library refresh.
type RefreshResult struct {
	TotalPlaylists int
	SuccessCount   int
	FailedCount    int
	Results        []PlaylistRefreshResult
}

// RefreshAll fetches the playlist library and then every playlist's songs,
// rate limited against the proxy. Individual playlist failures are recorded
// in the result rather than aborting the refresh.
func (e *LibraryEngine) RefreshAll(ctx context.Context, progress chan<- ProgressUpdate, opts RefreshOpts) (*RefreshResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 5 {
		opts.NumWorkers = 5
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	playlists, err := e.RefreshPlaylists(ctx, progress, opts.ForceRefresh)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{
		TotalPlaylists: len(playlists),
		Results:        make([]PlaylistRefreshResult, 0, len(playlists)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan library.Playlist, len(playlists))
	results := make(chan PlaylistRefreshResult, len(playlists))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pl := range jobs {
				results <- e.refreshOne(ctx, limiter, pl, opts.ForceRefresh)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, pl := range playlists {
			select {
			case <-ctx.Done():
				return
			case jobs <- pl:
				e.sendProgress(progress, fetchSongsUpdate(i+1, len(playlists), pl.Title))
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.Success {
			result.SuccessCount++
		} else {
			result.FailedCount++
		}
		result.Results = append(result.Results, res)
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (e *LibraryEngine) refreshOne(ctx context.Context, limiter *rate.Limiter, pl library.Playlist, force bool) PlaylistRefreshResult {
	res := PlaylistRefreshResult{PlaylistID: pl.PlaylistID, PlaylistName: pl.Title}

	if err := limiter.Wait(ctx); err != nil {
		res.Error = err
		return res
	}

	loaded, err := e.LoadPlaylistSongs(ctx, nil, pl.PlaylistID, force)
	if err != nil {
		res.Error = err
		return res
	}

	res.Success = true
	res.SongCount = loaded.NumSongs
	return res
}
