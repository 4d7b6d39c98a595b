package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistAdd adds songs to a playlist by video id. The backend partitions
// the outcome per id; partial failure prints the partition rather than
// erroring.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist")
	videoIDs := cmd.StringSlice("song")
	if len(videoIDs) == 0 {
		return fmt.Errorf("%w: at least one --song is required", shared.ErrMissingArgument)
	}

	// The cache must know the target playlist and the songs being added;
	// the add applies memberships locally from the success response.
	if _, err := r.engine.RefreshPlaylists(ctx, nil, false); err != nil {
		return err
	}
	if _, err := r.engine.LoadPlaylistSongs(ctx, nil, playlistID, false); err != nil {
		return err
	}

	result, err := r.engine.AddToPlaylist(ctx, nil, playlistID, videoIDs, cmd.Bool("shuffle"))
	if err != nil {
		return err
	}

	r.writePlainln("✓ Added: %d", len(result.Success))
	if len(result.AlreadyThere) > 0 {
		r.writePlainln("  Already there: %v", result.AlreadyThere)
	}
	if len(result.Failed) > 0 {
		r.writePlainln("  ✗ Failed: %v", result.Failed)
	}
	return nil
}

// PlaylistRemove removes song memberships from a playlist by setVideoId.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("playlist")
	setVideoIDs := cmd.StringSlice("set-video-id")
	if len(setVideoIDs) == 0 {
		return fmt.Errorf("%w: at least one --set-video-id is required", shared.ErrMissingArgument)
	}

	if _, err := r.engine.RefreshPlaylists(ctx, nil, false); err != nil {
		return err
	}
	pl, err := r.engine.LoadPlaylistSongs(ctx, nil, playlistID, false)
	if err != nil {
		return err
	}

	refs := make([]library.SongRef, 0, len(setVideoIDs))
	for _, setVideoID := range setVideoIDs {
		ref, ok := findEntry(pl.Songs, setVideoID)
		if !ok {
			return fmt.Errorf("%w: no entry with setVideoId %s in %s", shared.ErrInvalidArgument, setVideoID, pl.Title)
		}
		refs = append(refs, ref)
	}

	if err := r.engine.RemoveFromPlaylist(ctx, nil, playlistID, refs); err != nil {
		return err
	}

	r.writePlainln("✓ Removed %d songs from %s", len(refs), pl.Title)
	return nil
}

func findEntry(entries []library.PlaylistEntry, setVideoID string) (library.SongRef, bool) {
	for _, entry := range entries {
		if entry.SetVideoID == setVideoID {
			return library.SongRef{VideoID: entry.VideoID, SetVideoID: entry.SetVideoID}, true
		}
	}
	return library.SongRef{}, false
}
