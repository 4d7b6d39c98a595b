package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytmb/internal/shared"
	"github.com/urfave/cli/v3"
)

// Open opens a song, playlist, or album on music.youtube.com in the default
// browser.
func (r *Runner) Open(ctx context.Context, cmd *cli.Command) error {
	var url string
	switch {
	case cmd.String("song") != "":
		url = shared.SongURL(cmd.String("song"))
	case cmd.String("playlist") != "":
		url = shared.PlaylistURL(cmd.String("playlist"))
	case cmd.String("album") != "":
		// Album pages resolve through their audio playlist id.
		album, ok := r.store.AlbumByID(cmd.String("album"))
		if ok && album.PlaylistID != "" {
			url = shared.PlaylistURL(album.PlaylistID)
			break
		}
		loaded, err := r.engine.LoadAlbum(ctx, cmd.String("album"), false)
		if err != nil {
			return err
		}
		if loaded.PlaylistID == "" {
			return fmt.Errorf("album %s has no audio playlist id", cmd.String("album"))
		}
		url = shared.PlaylistURL(loaded.PlaylistID)
	default:
		return fmt.Errorf("%w: one of --song, --playlist, or --album is required", shared.ErrMissingArgument)
	}

	r.logger.Info("opening browser", "url", url)
	return shared.OpenBrowser(url)
}
