package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchLibrary Phase = iota
	FetchSongs
	FetchAlbum
	FetchArtist
	FetchHistory
	AddSongs
	RemoveSongs
	Resync
)

func (p Phase) String() string {
	switch p {
	case FetchLibrary:
		return "fetch_library"
	case FetchSongs:
		return "fetch_songs"
	case FetchAlbum:
		return "fetch_album"
	case FetchArtist:
		return "fetch_artist"
	case FetchHistory:
		return "fetch_history"
	case AddSongs:
		return "add_songs"
	case RemoveSongs:
		return "remove_songs"
	case Resync:
		return "resync"
	default:
		return ""
	}
}

func fetchLibraryUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLibrary,
		Step:    1,
		Total:   1,
		Message: "Fetching playlist library...",
	}
}

func fetchSongsUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching songs (%s)...", name),
	}
}

func addSongsUpdate(count int, playlist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddSongs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Adding %d songs to %s...", count, playlist),
	}
}

func removeSongsUpdate(count int, playlist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RemoveSongs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Removing %d songs from %s...", count, playlist),
	}
}

func resyncUpdate(playlist string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Resync,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Re-syncing %s after a failed mutation...", playlist),
	}
}
