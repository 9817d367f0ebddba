package handler

import (
	"sort"
	"sync"
)

// inflightSet tracks booking ids with a status update currently in
// flight, so duplicate approval clicks from a single admin session are
// rejected until the first update settles.  This is an advisory,
// process-local guard, not a distributed lock; the store's
// last-write-wins semantics still apply to updates that raced past it.
type inflightSet struct {
	mu  sync.Mutex
	ids map[uint64]struct{}
}

func newInflightSet() *inflightSet {
	return &inflightSet{ids: make(map[uint64]struct{})}
}

// Begin marks the id as processing.  It returns false when an update
// for the id is already in flight.
func (s *inflightSet) Begin(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// End clears the id once its update has settled, success or failure.
func (s *inflightSet) End(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Active returns the ids currently processing, sorted for stable
// responses.
func (s *inflightSet) Active() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
