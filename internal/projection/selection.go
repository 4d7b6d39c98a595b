package projection

import "github.com/samber/lo"

// Selection tracks the ordered set of selected row ids for one page. Order
// is insertion order, which batch-add requests use so playlist position
// matches click order.
//
// Group rows participate by id like song rows, with expansion semantics:
// selecting a group also selects its children, and deselecting a group drops
// children that no other selected group still covers.
type Selection struct {
	ids     []string
	members map[string]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{members: make(map[string]bool)}
}

// Apply reconciles the selection with the ids now selected in the view.
// Newly selected group ids expand to their children; group ids dropped from
// the selection collapse, deselecting children unless another still-selected
// group covers them.
func (s *Selection) Apply(selected []string, groups []AlbumGroup) {
	byID := lo.SliceToMap(groups, func(g AlbumGroup) (string, AlbumGroup) { return g.ID, g })
	next := lo.SliceToMap(selected, func(id string) (string, bool) { return id, true })

	// Collapse groups dropped from the selection first. Their children are
	// force-deselected even though the view still reports them checked, so
	// the add pass must not put them back.
	collapsed := make(map[string]bool)
	for _, id := range s.IDs() {
		group, isGroup := byID[id]
		if next[id] || !isGroup {
			continue
		}
		for _, child := range group.Children {
			if !coveredByGroup(child.ID, next, groups) {
				s.remove(child.ID)
				collapsed[child.ID] = true
			}
		}
	}

	for _, id := range s.IDs() {
		if !next[id] {
			s.remove(id)
		}
	}

	for _, id := range selected {
		if collapsed[id] {
			continue
		}
		s.add(id)
		if group, ok := byID[id]; ok {
			for _, child := range group.Children {
				s.add(child.ID)
			}
		}
	}
}

// coveredByGroup reports whether some still-selected group contains the row.
func coveredByGroup(rowID string, selected map[string]bool, groups []AlbumGroup) bool {
	for _, group := range groups {
		if !selected[group.ID] {
			continue
		}
		for _, child := range group.Children {
			if child.ID == rowID {
				return true
			}
		}
	}
	return false
}

func (s *Selection) add(id string) {
	if s.members[id] {
		return
	}
	s.members[id] = true
	s.ids = append(s.ids, id)
}

func (s *Selection) remove(id string) {
	if !s.members[id] {
		return
	}
	delete(s.members, id)
	s.ids = lo.Without(s.ids, id)
}

// Contains reports whether a row id is selected.
func (s *Selection) Contains(id string) bool {
	return s.members[id]
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len reports the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear drops the whole selection.
func (s *Selection) Clear() {
	s.ids = nil
	s.members = make(map[string]bool)
}

// Prune drops selected ids no longer present in the refreshed view.
func (s *Selection) Prune(valid []string) {
	validSet := lo.SliceToMap(valid, func(id string) (string, bool) { return id, true })
	for _, id := range s.IDs() {
		if !validSet[id] {
			s.remove(id)
		}
	}
}

// SelectedSongs returns the selected song rows. preserveOrder=true returns
// them in the order the user selected them; otherwise in list-display order.
// Rows selected through multiple memberships collapse to one entry per
// videoId.
func (s *Selection) SelectedSongs(rows []ViewRow, preserveOrder bool) []ViewRow {
	byID := lo.SliceToMap(rows, func(r ViewRow) (string, ViewRow) { return r.ID, r })

	var out []ViewRow
	seen := make(map[string]bool)
	appendRow := func(row ViewRow) {
		if seen[row.VideoID] {
			return
		}
		seen[row.VideoID] = true
		out = append(out, row)
	}

	if preserveOrder {
		for _, id := range s.ids {
			if row, ok := byID[id]; ok {
				appendRow(row)
			}
		}
		return out
	}

	for _, row := range rows {
		if s.members[row.ID] {
			appendRow(row)
		}
	}
	return out
}

// SelectedGroups returns the selected album group rows in display order, for
// bulk operations that act on the group identity rather than its expansion.
func (s *Selection) SelectedGroups(groups []AlbumGroup) []AlbumGroup {
	return lo.Filter(groups, func(g AlbumGroup, _ int) bool { return s.members[g.ID] })
}
