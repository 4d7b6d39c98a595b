// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/ytmb/internal/library"
	"github.com/desertthunder/ytmb/internal/services"
)

// MockService is a no-op test double for [services.Service]
type MockService struct{}

func (m *MockService) GetLibrary(ctx context.Context, ignoreCache bool) ([]library.Playlist, error) {
	return []library.Playlist{}, nil
}

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string, ignoreCache bool) (*library.Playlist, []library.RawSong, error) {
	return &library.Playlist{PlaylistID: playlistID}, nil, nil
}

func (m *MockService) GetAlbum(ctx context.Context, albumID string) (*library.Album, error) {
	return &library.Album{ID: albumID}, nil
}

func (m *MockService) GetArtist(ctx context.Context, artistID string) (*library.Artist, error) {
	return &library.Artist{ID: artistID}, nil
}

func (m *MockService) GetHistory(ctx context.Context) ([]library.RawSong, error) {
	return []library.RawSong{}, nil
}

func (m *MockService) AddSongs(ctx context.Context, playlistID string, videoIDs []string, shuffle bool) (*services.AddSongsResult, error) {
	return &services.AddSongsResult{}, nil
}

func (m *MockService) RemoveSongs(ctx context.Context, playlistID string, refs []library.SongRef) error {
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("File %s does not contain %q", path, substr)
	}
}
