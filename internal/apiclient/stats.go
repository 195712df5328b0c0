package apiclient

import "sync"

// Snapshot is a consistent view of the call counters.
type Snapshot struct {
	Total   int64 `json:"total" yaml:"total"`
	Success int64 `json:"successful" yaml:"successful"`
	Failure int64 `json:"failed" yaml:"failed"`
}

// SuccessRate returns the success percentage, 0 before any call.
func (s Snapshot) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Total) * 100
}

// Stats counts calls made through a Client. Total always equals
// Success+Failure in any snapshot.
type Stats struct {
	mu   sync.Mutex
	snap Snapshot
}

func (s *Stats) record(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Total++
	if ok {
		s.snap.Success++
	} else {
		s.snap.Failure++
	}
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
