// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		setupCommand(r),
		libraryCommand(r),
		playlistCommand(r),
		snapshotCommand(r),
		apiCommand(r),
		openCommand(r),
		tuiCommand(r),
	}
}

// setupCommand handles setup operations for database and authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize snapshot database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:    "youtube",
				Aliases: []string{"yt", "ytmusic"},
				Usage:   "Configure YouTube Music authentication from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for headers_auth.json (default: ~/.ytmb/headers_auth.json)",
					},
				},
				Action: r.SetupYouTube,
			},
		},
	}
}

// viewFlags are the projection options shared by the song-list commands.
func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Filter songs; separate alternatives with |",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort key (title, artistsString, albumString, duration, index)",
		},
		&cli.BoolFlag{
			Name:  "desc",
			Usage: "Sort descending",
		},
		&cli.BoolFlag{
			Name:  "dupes",
			Usage: "Show only duplicate entries",
		},
		&cli.BoolFlag{
			Name:  "albums",
			Usage: "Group songs by album",
		},
		&cli.BoolFlag{
			Name:  "hide-singles",
			Usage: "Hide single-song albums in album view",
		},
		&cli.BoolFlag{
			Name:  "hide-albums",
			Usage: "Hide multi-song albums in album view",
		},
	}
}

// libraryCommand handles library browsing operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse the cached music library",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Bypass the proxy cache",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LibraryPlaylists,
			},
			{
				Name:  "songs",
				Usage: "List a playlist's songs with search, sort, and grouping",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: append(viewFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-fetch even if the playlist is cached",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, markdown, txt)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Export file path",
					},
				),
				Action: r.LibrarySongs,
			},
			{
				Name:  "dupes",
				Usage: "List duplicate entries in a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-fetch even if the playlist is cached",
					},
				},
				Action: r.LibraryDupes,
			},
			{
				Name:  "refresh",
				Usage: "Fetch every playlist's songs into the cache",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Bypass the proxy cache",
					},
				},
				Action: r.LibraryRefresh,
			},
			{
				Name:  "history",
				Usage: "Show recently played songs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LibraryHistory,
			},
		},
	}
}

// playlistCommand handles playlist mutations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Modify playlists",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add songs to a playlist by video id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Target playlist ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "song",
						Usage: "Video ID to add (repeatable)",
					},
					&cli.BoolFlag{
						Name:  "shuffle",
						Usage: "Shuffle the songs before adding",
					},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove entries from a playlist by setVideoId",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Aliases:  []string{"p"},
						Usage:    "Target playlist ID",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "set-video-id",
						Usage: "Playlist entry setVideoId to remove (repeatable)",
					},
				},
				Action: r.PlaylistRemove,
			},
		},
	}
}

// snapshotCommand handles cache persistence
func snapshotCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Persist and restore the library cache",
		Commands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Refresh the library and save it to the snapshot database",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Save the in-memory cache without refreshing",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Bypass the proxy cache when refreshing",
					},
				},
				Action: r.SnapshotSave,
			},
			{
				Name:  "load",
				Usage: "Restore the library cache from the snapshot database",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "list",
						Usage: "List the restored playlists",
					},
				},
				Action: r.SnapshotLoad,
			},
			{
				Name:   "clear",
				Usage:  "Delete the persisted snapshot",
				Action: r.SnapshotClear,
			},
		},
	}
}

// apiCommand handles direct (proxy) API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the ytmusicapi proxy",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the proxy, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:  "put",
				Usage: "Direct PUT with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIPut,
			},
		},
	}
}

// openCommand opens library entities on music.youtube.com
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Open a song, playlist, or album in the browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "song",
				Usage: "Video ID to open",
			},
			&cli.StringFlag{
				Name:  "playlist",
				Usage: "Playlist ID to open",
			},
			&cli.StringFlag{
				Name:  "album",
				Usage: "Album browse ID to open",
			},
		},
		Action: r.Open,
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing the library",
		Action:  r.TUI,
	}
}
