package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytmb/internal/repositories"
	"github.com/urfave/cli/v3"
)

// SnapshotSave refreshes the library and persists the cache to the snapshot
// database.
func (r *Runner) SnapshotSave(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("cached") {
		if _, err := r.engine.RefreshAll(ctx, nil, r.refreshOpts(cmd.Bool("force"))); err != nil {
			return err
		}
	}

	data, err := r.store.Snapshot()
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	if err := repo.Save(repositories.DefaultSnapshotKey, data); err != nil {
		return err
	}

	r.writePlainln("✓ Snapshot saved (%d songs, %d bytes)", r.store.SongCount(), len(data))
	return nil
}

// SnapshotLoad restores the cache from the snapshot database and prints a
// summary.
func (r *Runner) SnapshotLoad(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	data, err := repo.Load(repositories.DefaultSnapshotKey)
	if err != nil {
		return err
	}

	if err := r.store.RestoreSnapshot(data); err != nil {
		return err
	}

	savedAt, err := repo.SavedAt(repositories.DefaultSnapshotKey)
	if err != nil {
		return err
	}

	playlists := r.store.Playlists()
	r.writePlainln("✓ Snapshot from %s restored", savedAt.Format("2006-01-02 15:04"))
	r.writePlainln("  %d playlists, %d songs", len(playlists), r.store.SongCount())

	if cmd.Bool("list") {
		for _, pl := range playlists {
			r.writePlainln("  %s  %s (%d songs)", pl.PlaylistID, pl.Title, pl.NumSongs)
		}
	}
	return nil
}

// SnapshotClear deletes the persisted snapshot.
func (r *Runner) SnapshotClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSnapshotRepository(db)
	if err := repo.Clear(repositories.DefaultSnapshotKey); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	r.writePlainln("✓ Snapshot cleared")
	return nil
}
