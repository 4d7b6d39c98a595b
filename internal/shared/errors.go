package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Local invariant violations. These indicate a sequencing bug in the
	// caller (e.g. mutating a playlist whose songs were never loaded), not a
	// transient condition, and are never retried.
	ErrPlaylistNotFound = fmt.Errorf("playlist not found in library")
	ErrSongsNotLoaded   = fmt.Errorf("playlist songs not loaded")
	ErrUnknownSong      = fmt.Errorf("song not present in canonical map")

	// Snapshot persistence errors
	ErrSnapshotNotFound = fmt.Errorf("no library snapshot saved")
	ErrSnapshotCorrupt  = fmt.Errorf("library snapshot is not decodable")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAlbumNotFound      = fmt.Errorf("album not found")
	ErrArtistNotFound     = fmt.Errorf("artist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
