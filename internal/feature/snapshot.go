package feature

import "sort"

// Snapshot is the immutable result of one resolution pass. Once published it
// is never mutated, so it is safe for unsynchronized concurrent reads.
type Snapshot struct {
	states map[string]Status
}

func newSnapshot(states map[string]Status) *Snapshot {
	return &Snapshot{states: states}
}

// Enabled reports whether the given feature resolved to Enabled. Unknown IDs
// yield false, never an error: capability checks must be safe to make
// speculatively for subsystems that were never registered.
func (s *Snapshot) Enabled(id string) bool {
	return s.states[id].State == StateEnabled
}

// Status returns the resolved status for id. Unknown IDs report an
// Unresolved status and ok=false.
func (s *Snapshot) Status(id string) (Status, bool) {
	st, ok := s.states[id]
	return st, ok
}

// IDs returns every resolved feature ID in sorted order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
