package projection

import (
	"reflect"
	"testing"

	"github.com/desertthunder/ytmb/internal/library"
)

func selectionRows() []ViewRow {
	return []ViewRow{
		{Song: library.Song{VideoID: "v1"}, ID: "sv1"},
		{Song: library.Song{VideoID: "v2"}, ID: "sv2"},
		{Song: library.Song{VideoID: "v3"}, ID: "sv3"},
	}
}

func selectionGroups() []AlbumGroup {
	rows := selectionRows()
	return []AlbumGroup{
		{ID: "al1", Children: rows[:2]},
		{ID: "al2", Children: rows[1:]},
	}
}

func TestSelectionApply(t *testing.T) {
	t.Run("plain rows toggle individually", func(t *testing.T) {
		sel := NewSelection()
		sel.Apply([]string{"sv1", "sv3"}, nil)

		if !reflect.DeepEqual(sel.IDs(), []string{"sv1", "sv3"}) {
			t.Errorf("unexpected selection: %v", sel.IDs())
		}

		sel.Apply([]string{"sv3"}, nil)
		if !reflect.DeepEqual(sel.IDs(), []string{"sv3"}) {
			t.Errorf("deselect failed: %v", sel.IDs())
		}
	})

	t.Run("selecting a group expands to its children", func(t *testing.T) {
		sel := NewSelection()
		sel.Apply([]string{"al1"}, selectionGroups())

		for _, id := range []string{"al1", "sv1", "sv2"} {
			if !sel.Contains(id) {
				t.Errorf("%s should be selected", id)
			}
		}
		if sel.Contains("sv3") {
			t.Error("sv3 belongs to an unselected group")
		}
	})

	t.Run("expansion skips already-selected children", func(t *testing.T) {
		sel := NewSelection()
		sel.Apply([]string{"sv2"}, selectionGroups())
		sel.Apply([]string{"sv2", "al1"}, selectionGroups())

		if !reflect.DeepEqual(sel.IDs(), []string{"sv2", "al1", "sv1"}) {
			t.Errorf("selection order should keep first selection first: %v", sel.IDs())
		}
	})

	t.Run("deselecting a group collapses its children", func(t *testing.T) {
		groups := selectionGroups()
		sel := NewSelection()
		sel.Apply([]string{"al1"}, groups)
		sel.Apply([]string{}, groups)

		if sel.Len() != 0 {
			t.Errorf("expected empty selection, got %v", sel.IDs())
		}
	})

	t.Run("collapse keeps children covered by another selected group", func(t *testing.T) {
		groups := selectionGroups()
		sel := NewSelection()
		sel.Apply([]string{"al1", "al2"}, groups)
		sel.Apply([]string{"al2", "sv1", "sv2", "sv3"}, groups)

		if sel.Contains("al1") {
			t.Error("al1 should be deselected")
		}
		if sel.Contains("sv1") {
			t.Error("sv1 was only covered by al1 and should collapse with it")
		}
		// sv2 is a child of both groups; al2 still covers it.
		for _, id := range []string{"sv2", "sv3", "al2"} {
			if !sel.Contains(id) {
				t.Errorf("%s should remain selected", id)
			}
		}
	})
}

func TestSelectionPrune(t *testing.T) {
	sel := NewSelection()
	sel.Apply([]string{"sv1", "sv2", "sv3"}, nil)
	sel.Prune([]string{"sv2"})

	if !reflect.DeepEqual(sel.IDs(), []string{"sv2"}) {
		t.Errorf("prune left %v", sel.IDs())
	}
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection()
	sel.Apply([]string{"sv1", "sv2"}, nil)
	sel.Clear()

	if sel.Len() != 0 || sel.Contains("sv1") {
		t.Error("clear left state behind")
	}
}

func TestSelectedSongs(t *testing.T) {
	rows := selectionRows()

	t.Run("selection order", func(t *testing.T) {
		sel := NewSelection()
		sel.Apply([]string{"sv3"}, nil)
		sel.Apply([]string{"sv3", "sv1"}, nil)

		songs := sel.SelectedSongs(rows, true)
		if len(songs) != 2 || songs[0].VideoID != "v3" || songs[1].VideoID != "v1" {
			t.Errorf("expected click order, got %+v", songs)
		}
	})

	t.Run("display order", func(t *testing.T) {
		sel := NewSelection()
		sel.Apply([]string{"sv3", "sv1"}, nil)

		songs := sel.SelectedSongs(rows, false)
		if len(songs) != 2 || songs[0].VideoID != "v1" || songs[1].VideoID != "v3" {
			t.Errorf("expected list order, got %+v", songs)
		}
	})

	t.Run("dedups by videoId", func(t *testing.T) {
		dupeRows := append(selectionRows(), ViewRow{Song: library.Song{VideoID: "v1"}, ID: "sv9"})
		sel := NewSelection()
		sel.Apply([]string{"sv1", "sv9"}, nil)

		songs := sel.SelectedSongs(dupeRows, false)
		if len(songs) != 1 {
			t.Errorf("expected 1 song after videoId dedup, got %d", len(songs))
		}
	})
}

func TestSelectedGroups(t *testing.T) {
	groups := selectionGroups()
	sel := NewSelection()
	sel.Apply([]string{"al2"}, groups)

	selected := sel.SelectedGroups(groups)
	if len(selected) != 1 || selected[0].ID != "al2" {
		t.Errorf("unexpected groups: %+v", selected)
	}
}
