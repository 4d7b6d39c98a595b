// Package services implements the HTTP boundary between the library cache
// and the ytmusicapi proxy.
//
// # Service Interface
//
// [Service] covers the five read endpoints (library, playlist, album,
// artist, history) and the two playlist mutations (add, remove). [YTMService]
// implements it against the Flask proxy; tests substitute mocks.
//
// # Partial Success
//
// Adding songs is the one operation with a three-way outcome: the proxy
// partitions the submitted ids into success / already_there / failed and
// reports a partial failure as HTTP 500 with the partition still in the
// body. [YTMService.AddSongs] decodes that body into a normal
// [AddSongsResult] so callers branch on the partition rather than on an
// error.
//
// # Error Handling
//
// Non-2xx responses surface as [*HTTPError] carrying the status code and
// raw body; errors.Is matches them against [shared.ErrAPIRequest]. The
// client never mutates local state, so a failed call leaves nothing to roll
// back.
//
// # Raw Access
//
// [APIService] exposes Get/Post/Put passthroughs for proxy endpoints the
// typed client does not model, used by the api command.
package services
