package listing

import "sort"

// Selection is the set of row ids chosen for a bulk action.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether id is selected
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// ToggleAll switches between "every visible row" and nothing. Rows outside
// visible are never selected by it.
func (s *Selection) ToggleAll(visible []string) {
	allSelected := len(visible) > 0 && len(s.ids) == len(visible)
	if allSelected {
		for _, id := range visible {
			if !s.Has(id) {
				allSelected = false
				break
			}
		}
	}

	s.Clear()
	if allSelected {
		return
	}
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// IDs returns the selected ids in sorted order
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
