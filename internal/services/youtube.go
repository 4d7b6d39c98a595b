// YouTube Music [Service] implementation
//
// Communicates with the Flask proxy server wrapping the ytmusicapi Python
// library. The proxy owns authentication (browser headers uploaded at setup
// time); this client only speaks its JSON endpoints.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/ytmb/internal/library"
)

const defaultBaseURL string = "http://localhost:5050"

// ytImage is a thumbnail variant in proxy responses, smallest first.
type ytImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// largest returns the biggest thumbnail variant as a library thumbnail.
func largest(images []ytImage) *library.Thumbnail {
	if len(images) == 0 {
		return nil
	}
	return &library.Thumbnail{URL: images[len(images)-1].URL}
}

// ytSong is the raw song shape in playlist, album, and history responses.
type ytSong struct {
	VideoID     string              `json:"videoId"`
	Title       string              `json:"title"`
	Artists     []library.ArtistRef `json:"artists"`
	Album       *library.AlbumRef   `json:"album"`
	Duration    string              `json:"duration"`
	DurationSec int                 `json:"duration_seconds"`
	Thumbnails  []ytImage           `json:"thumbnails"`
	SetVideoID  string              `json:"setVideoId,omitempty"`
	IsDupe      bool                `json:"isDupe,omitempty"`
}

func (s ytSong) toRaw(index int) library.RawSong {
	return library.RawSong{
		VideoID:     s.VideoID,
		Title:       s.Title,
		Duration:    s.Duration,
		DurationSec: s.DurationSec,
		Thumbnail:   largest(s.Thumbnails),
		Artists:     s.Artists,
		Album:       s.Album,
		SetVideoID:  s.SetVideoID,
		Index:       index,
		IsDupe:      s.IsDupe,
	}
}

func toRawSongs(songs []ytSong) []library.RawSong {
	out := make([]library.RawSong, len(songs))
	for i, s := range songs {
		out[i] = s.toRaw(i)
	}
	return out
}

// YTMService implements Service against the ytmusicapi proxy.
type YTMService struct {
	baseURL    string
	httpClient *http.Client
}

// NewYTMService creates a proxy client. An empty baseURL falls back to the
// local default.
func NewYTMService(baseURL string) *YTMService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &YTMService{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Name returns the service name.
func (y *YTMService) Name() string {
	return "YouTube Music"
}

func (y *YTMService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := y.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return &HTTPError{StatusCode: resp.StatusCode, Body: data}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func cacheParam(ignoreCache bool) string {
	if ignoreCache {
		return "?ignoreCache=true"
	}
	return ""
}

// GetLibrary retrieves playlist summaries via GET /library.
func (y *YTMService) GetLibrary(ctx context.Context, ignoreCache bool) ([]library.Playlist, error) {
	var ytPlaylists []struct {
		PlaylistID string    `json:"playlistId"`
		Title      string    `json:"title"`
		Count      int       `json:"count"`
		Thumbnails []ytImage `json:"thumbnails"`
	}

	if err := y.doRequest(ctx, http.MethodGet, "/library"+cacheParam(ignoreCache), nil, &ytPlaylists); err != nil {
		return nil, err
	}

	playlists := make([]library.Playlist, len(ytPlaylists))
	for i, ytp := range ytPlaylists {
		playlists[i] = library.Playlist{
			PlaylistID: ytp.PlaylistID,
			Title:      ytp.Title,
			NumSongs:   ytp.Count,
		}
	}

	return playlists, nil
}

// GetPlaylist retrieves one playlist with tracks via GET /playlist/{id}.
func (y *YTMService) GetPlaylist(ctx context.Context, playlistID string, ignoreCache bool) (*library.Playlist, []library.RawSong, error) {
	var ytPlaylist struct {
		PlaylistID string   `json:"id"`
		Title      string   `json:"title"`
		TrackCount int      `json:"trackCount"`
		Tracks     []ytSong `json:"tracks"`
	}

	endpoint := fmt.Sprintf("/playlist/%s%s", url.PathEscape(playlistID), cacheParam(ignoreCache))
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytPlaylist); err != nil {
		return nil, nil, err
	}

	playlist := &library.Playlist{
		PlaylistID: ytPlaylist.PlaylistID,
		Title:      ytPlaylist.Title,
		NumSongs:   ytPlaylist.TrackCount,
	}

	return playlist, toRawSongs(ytPlaylist.Tracks), nil
}

// GetAlbum retrieves an album via GET /album/{id}.
func (y *YTMService) GetAlbum(ctx context.Context, albumID string) (*library.Album, error) {
	var ytAlbum struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		PlaylistID  string    `json:"audioPlaylistId"`
		Type        string    `json:"type"`
		Thumbnails  []ytImage `json:"thumbnails"`
		Tracks      []ytSong  `json:"tracks"`
	}

	endpoint := fmt.Sprintf("/album/%s", url.PathEscape(albumID))
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytAlbum); err != nil {
		return nil, err
	}

	return &library.Album{
		ID:          albumID,
		Title:       ytAlbum.Title,
		Description: ytAlbum.Description,
		PlaylistID:  ytAlbum.PlaylistID,
		ReleaseType: ytAlbum.Type,
		Thumbnail:   largest(ytAlbum.Thumbnails),
		Songs:       toRawSongs(ytAlbum.Tracks),
	}, nil
}

// GetArtist retrieves an artist via GET /artist/{id}. Albums and singles
// arrive as summaries without track listings; the caller fetches each album
// separately when it needs the songs.
func (y *YTMService) GetArtist(ctx context.Context, artistID string) (*library.Artist, error) {
	var ytArtist struct {
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Thumbnails  []ytImage `json:"thumbnails"`
		Albums      struct {
			Results []ytRelease `json:"results"`
		} `json:"albums"`
		Singles struct {
			Results []ytRelease `json:"results"`
		} `json:"singles"`
		Songs struct {
			Results []ytSong `json:"results"`
		} `json:"songs"`
	}

	endpoint := fmt.Sprintf("/artist/%s", url.PathEscape(artistID))
	if err := y.doRequest(ctx, http.MethodGet, endpoint, nil, &ytArtist); err != nil {
		return nil, err
	}

	return &library.Artist{
		ID:          artistID,
		Name:        ytArtist.Name,
		Description: ytArtist.Description,
		Thumbnail:   largest(ytArtist.Thumbnails),
		Albums:      toAlbums(ytArtist.Albums.Results),
		Singles:     toAlbums(ytArtist.Singles.Results),
		Songs:       toRawSongs(ytArtist.Songs.Results),
	}, nil
}

// ytRelease is an album or single summary inside an artist response.
type ytRelease struct {
	BrowseID   string    `json:"browseId"`
	Title      string    `json:"title"`
	Year       string    `json:"year"`
	Thumbnails []ytImage `json:"thumbnails"`
}

func toAlbums(releases []ytRelease) []library.Album {
	out := make([]library.Album, len(releases))
	for i, r := range releases {
		out[i] = library.Album{
			ID:        r.BrowseID,
			Title:     r.Title,
			Thumbnail: largest(r.Thumbnails),
		}
	}
	return out
}

// GetHistory retrieves the play history via GET /history.
func (y *YTMService) GetHistory(ctx context.Context) ([]library.RawSong, error) {
	var ytSongs []ytSong
	if err := y.doRequest(ctx, http.MethodGet, "/history", nil, &ytSongs); err != nil {
		return nil, err
	}
	return toRawSongs(ytSongs), nil
}

// AddSongs submits an add via PUT /addSongs. The proxy answers a partial
// failure with a 500 whose body still carries the per-id partition, so that
// case decodes into a normal result instead of an error.
func (y *YTMService) AddSongs(ctx context.Context, playlistID string, videoIDs []string, shuffle bool) (*AddSongsResult, error) {
	req := struct {
		Playlist string   `json:"playlist"`
		Songs    []string `json:"songs"`
		Shuffle  bool     `json:"shuffle"`
	}{
		Playlist: playlistID,
		Songs:    videoIDs,
		Shuffle:  shuffle,
	}

	var result struct {
		AddSongsResult
		Success []ytSong `json:"success"`
	}
	err := y.doRequest(ctx, http.MethodPut, "/addSongs", req, &result)
	if err != nil {
		var httpErr *HTTPError
		if !errors.As(err, &httpErr) || !parseResult(httpErr.Body, &result) {
			return nil, err
		}
	}

	out := result.AddSongsResult
	out.Success = toRawSongs(result.Success)
	return &out, nil
}

// parseResult decodes a failed response body as an add result. A body that
// does not carry the partition fields is a plain error, not a result.
func parseResult(body []byte, result any) bool {
	var probe map[string]json.RawMessage
	if json.Unmarshal(body, &probe) != nil {
		return false
	}
	if _, ok := probe["failed"]; !ok {
		return false
	}
	return json.Unmarshal(body, result) == nil
}

// RemoveSongs submits a removal via PUT /removeSongs.
func (y *YTMService) RemoveSongs(ctx context.Context, playlistID string, refs []library.SongRef) error {
	req := struct {
		Playlist string            `json:"playlist"`
		Songs    []library.SongRef `json:"songs"`
	}{
		Playlist: playlistID,
		Songs:    refs,
	}

	return y.doRequest(ctx, http.MethodPut, "/removeSongs", req, nil)
}
