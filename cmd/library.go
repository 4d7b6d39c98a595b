package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytmb/internal/formatter"
	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/projection"
	"github.com/desertthunder/ytmb/internal/tasks"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

// LibraryPlaylists lists the user's playlists.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	playlists, err := r.engine.RefreshPlaylists(ctx, nil, cmd.Bool("force"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	for _, pl := range playlists {
		r.writePlainln("%s  %s (%d songs)", pl.PlaylistID, pl.Title, pl.NumSongs)
	}
	r.writePlainln("\n%d playlists", len(playlists))
	return nil
}

// projectionConfig builds the view config from the command's flags.
func projectionConfig(cmd *cli.Command) projection.Config {
	return projection.Config{
		SearchFilter:  cmd.String("search"),
		SortKey:       cmd.String("sort"),
		SortAscending: !cmd.Bool("desc"),
		FilterByDupes: cmd.Bool("dupes"),
		AlbumView:     cmd.Bool("albums"),
		HideSingles:   cmd.Bool("hide-singles"),
		HideAlbums:    cmd.Bool("hide-albums"),
	}
}

// LibrarySongs loads a playlist and prints its projected song list.
func (r *Runner) LibrarySongs(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("playlist ID is required")
	}

	pl, err := r.engine.LoadPlaylistSongs(ctx, nil, playlistID, cmd.Bool("force"))
	if err != nil {
		return err
	}

	result := projection.Project(pl.Songs, r.store, projectionConfig(cmd))

	if output := cmd.String("output"); output != "" {
		if err := formatter.WriteExport(cmd.String("format"), pl.Title, output, result.Rows); err != nil {
			return err
		}
		r.writePlainln("✓ Exported %d songs to %s", len(result.Rows), output)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(result.Rows, cmd.Bool("pretty"))
	}

	if result.Config.AlbumView {
		return r.printGroups(pl.Title, result.Groups)
	}
	return r.printRows(pl.Title, result)
}

func (r *Runner) printRows(title string, result projection.Result) error {
	r.writePlainln("%s", title)
	for _, row := range result.Rows {
		dupe := ""
		if row.IsDupe {
			dupe = "  [dupe]"
		}
		r.writePlainln("%3d. %s - %s  [%s]%s", row.Index+1, row.ArtistsString, row.Title, row.Duration, dupe)
	}
	r.writePlainln("\n%d songs", len(result.Rows))
	return nil
}

func (r *Runner) printGroups(title string, groups []projection.AlbumGroup) error {
	r.writePlainln("%s", title)
	for _, group := range groups {
		r.writePlainln("%s — %s (%d tracks)", group.Title, group.ArtistsString, group.TrackCount)
		for _, child := range group.Children {
			r.writePlainln("    %s  [%s]", child.Title, child.Duration)
		}
	}
	r.writePlainln("\n%d albums", len(groups))
	return nil
}

// LibraryDupes lists the duplicate memberships in a playlist.
func (r *Runner) LibraryDupes(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("playlist ID is required")
	}

	pl, err := r.engine.LoadPlaylistSongs(ctx, nil, playlistID, cmd.Bool("force"))
	if err != nil {
		return err
	}

	count := r.store.DuplicateCount(playlistID)
	if count == 0 {
		r.writePlainln("No duplicates in %s", pl.Title)
		return nil
	}

	result := projection.Project(pl.Songs, r.store, projection.Config{FilterByDupes: true})
	r.writePlainln("%d duplicates in %s", count, pl.Title)
	for _, row := range result.Rows {
		r.writePlainln("  %s - %s (%s)", row.ArtistsString, row.Title, row.SetVideoID)
	}
	return nil
}

// LibraryRefresh fetches every playlist's songs into the cache.
func (r *Runner) LibraryRefresh(ctx context.Context, cmd *cli.Command) error {
	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
		}
	}()

	result, err := r.engine.RefreshAll(ctx, progress, r.refreshOpts(cmd.Bool("force")))
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("✓ Refreshed %d/%d playlists (%d songs cached)",
		result.SuccessCount, result.TotalPlaylists, r.store.SongCount())
	for _, res := range result.Results {
		if !res.Success {
			r.writePlainln("  ✗ %s: %v", res.PlaylistName, res.Error)
		}
	}
	return nil
}

// LibraryHistory prints the play history. History entries have no
// setVideoIds, so rows key on videoId.
func (r *Runner) LibraryHistory(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.engine.LoadHistory(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	for i, song := range songs {
		r.writePlainln("%3d. %s - %s", i+1, artistNames(song), song.Title)
	}
	r.writePlainln("\n%d plays", len(songs))
	return nil
}

func artistNames(song library.RawSong) string {
	names := lo.Map(song.Artists, func(a library.ArtistRef, _ int) string { return a.Name })
	return strings.Join(names, ", ")
}
