package library

import (
	"encoding/json"
	"fmt"

	"github.com/desertthunder/ytmb/internal/shared"
)

// Snapshot is the serializable form of the full cache state.
type Snapshot struct {
	Playlists []Playlist        `json:"playlists"`
	Songs     map[string]Song   `json:"songs"`
	Albums    map[string]Album  `json:"albums"`
	Artists   map[string]Artist `json:"artists"`
}

// Snapshot serializes the current cache state to JSON.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	snap := Snapshot{
		Playlists: make([]Playlist, 0, len(s.playlists)),
		Songs:     make(map[string]Song, len(s.songs)),
		Albums:    s.albums,
		Artists:   s.artists,
	}
	for _, pl := range s.playlists {
		snap.Playlists = append(snap.Playlists, pl.Clone())
	}
	for id, song := range s.songs {
		snap.Songs[id] = song.Clone()
	}
	data, err := json.Marshal(snap)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// RestoreSnapshot replaces the entire cache state with a previously saved
// snapshot. Derived fields are recomputed rather than trusted from disk.
func (s *Store) RestoreSnapshot(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSnapshotCorrupt, err)
	}

	s.mu.Lock()
	s.playlists = snap.Playlists
	s.songs = snap.Songs
	s.albums = snap.Albums
	s.artists = snap.Artists
	if s.songs == nil {
		s.songs = make(map[string]Song)
	}
	if s.albums == nil {
		s.albums = make(map[string]Album)
	}
	if s.artists == nil {
		s.artists = make(map[string]Artist)
	}
	s.recomputeDerived()
	s.mu.Unlock()
	s.notify()
	return nil
}
