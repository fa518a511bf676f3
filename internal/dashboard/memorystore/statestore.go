package memorystore

import "sync/atomic"

// StateStore publishes the latest State. Readers always see a complete cycle.
type StateStore struct {
	current atomic.Pointer[State]
}

func NewStateStore() *StateStore {
	return &StateStore{}
}

// Store publishes s. The caller must not modify s afterwards.
func (s *StateStore) Store(st *State) {
	s.current.Store(st)
}

// Load returns the latest published state, or nil before the first refresh.
func (s *StateStore) Load() *State {
	return s.current.Load()
}
