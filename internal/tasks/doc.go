// Package tasks orchestrates library operations against the ytmusicapi proxy
// with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] interface covers the fetch paths (library, playlist songs,
// album, artist, history) and the two playlist mutations (add, remove).
// Fetches apply their results to the [library.Store]; mutations apply only
// what the backend confirmed.
//
// # Staleness
//
// Playlist fetches carry per-playlist sequence numbers. A fetch that
// completes after a newer fetch has already been applied is discarded, so a
// slow response never clobbers fresher data. Album and artist fetches rely
// on the store's monotonic merge policy instead.
//
// # Failure Recovery
//
// A failed remove, or an add whose local apply fails, triggers an automatic
// force-refresh of the affected playlist so displayed state converges with
// the backend. The resync is best effort; the original error is what the
// caller sees.
//
// # Progress Reporting
//
// All operations accept an optional progress channel. Updates use select
// with default so a full or absent channel never blocks an operation.
//
// # Bulk Refresh
//
// [LibraryEngine.RefreshAll] walks every playlist with a small worker pool
// behind a rate.Limiter, recording per-playlist outcomes instead of aborting
// on the first failure.
package tasks
