package state

import "sync"

// Selection is one comparison slot.
type Selection struct {
	Id     uint
	Locked bool
}

// SelectionStore holds up to two entities picked for side by side
// comparison. A locked slot can't be evicted by a new selection.
type SelectionStore struct {
	mu     sync.Mutex
	slots  []Selection
	oldest int
}

// NewSelectionStore creates an empty selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{}
}

// Selected returns a copy of the current slots, in insertion order.
func (s *SelectionStore) Selected() []Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Selection(nil), s.slots...)
}

// IsSelected reports whether the id occupies a slot.
func (s *SelectionStore) IsSelected(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Select toggles the entity in or out of the comparison. When both slots
// are taken, the oldest unlocked one is replaced. It returns false only
// when both slots are locked and the selection was rejected.
func (s *SelectionStore) Select(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Selecting an already selected entity deselects it.
	if i := s.indexOf(id); i >= 0 {
		s.slots = append(s.slots[:i], s.slots[i+1:]...)
		s.oldest = 0
		return true
	}

	if len(s.slots) < 2 {
		s.slots = append(s.slots, Selection{Id: id})
		return true
	}

	// Both slots taken. Replace the oldest unless it's locked, then the
	// other one, and reject when both are pinned.
	if !s.slots[s.oldest].Locked {
		s.slots[s.oldest] = Selection{Id: id}
		s.oldest = 1 - s.oldest
		return true
	}

	other := 1 - s.oldest
	if !s.slots[other].Locked {
		s.slots[other] = Selection{Id: id}
		return true
	}

	return false
}

// SetLocked pins or unpins a selected entity. Unselected ids are ignored.
func (s *SelectionStore) SetLocked(id uint, locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.slots[i].Locked = locked
	}
}

// Clear drops every selection. Used when the view mode switches.
func (s *SelectionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = nil
	s.oldest = 0
}

func (s *SelectionStore) indexOf(id uint) int {
	for i, slot := range s.slots {
		if slot.Id == id {
			return i
		}
	}
	return -1
}
