// Package viewstate tracks which page is active and which page loads are
// still allowed to land.
package viewstate

import (
	"time"

	"github.com/tinytelemetry/heimdall/internal/model"
)

// Outcome is the terminal state of one page load.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLoading
	OutcomeSuccess
	OutcomeFailure
	OutcomeFallback
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeFallback:
		return "fallback"
	case OutcomeStale:
		return "stale"
	default:
		return "none"
	}
}

// Task identifies one page load. A task is current while its page is
// active and no newer load of the page has started.
type Task struct {
	Page       model.PageID
	Generation uint64
}

// PageState is the load bookkeeping for one page.
type PageState struct {
	Generation uint64
	InFlight   bool
	Outcome    Outcome
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
	Loads      int
}

// Store holds the navigation state: the current page, whether startup
// navigation happened, and per-page load generations. It belongs to the UI
// loop and is not safe for concurrent use.
type Store struct {
	current     model.PageID
	initialized bool
	pages       map[model.PageID]*PageState
	now         func() time.Time
}

// New returns a store with no current page.
func New() *Store {
	return &Store{
		pages: make(map[model.PageID]*PageState),
		now:   time.Now,
	}
}

// Current returns the active page and whether one has been set.
func (s *Store) Current() (model.PageID, bool) {
	return s.current, s.initialized
}

// IsActive reports whether p is the current page.
func (s *Store) IsActive(p model.PageID) bool {
	return s.initialized && s.current == p
}

// SetCurrent records p as the active page.
func (s *Store) SetCurrent(p model.PageID) {
	s.current = p
	s.initialized = true
}

func (s *Store) page(p model.PageID) *PageState {
	ps, ok := s.pages[p]
	if !ok {
		ps = &PageState{}
		s.pages[p] = ps
	}
	return ps
}

// Begin starts a new load of p, superseding any load still in flight.
func (s *Store) Begin(p model.PageID) Task {
	return s.begin(p)
}

// TryBegin starts a load of p unless one is already in flight.
func (s *Store) TryBegin(p model.PageID) (Task, bool) {
	if s.page(p).InFlight {
		return Task{}, false
	}
	return s.begin(p), true
}

func (s *Store) begin(p model.PageID) Task {
	ps := s.page(p)
	ps.Generation++
	ps.InFlight = true
	ps.Outcome = OutcomeLoading
	ps.StartedAt = s.now()
	ps.Loads++
	return Task{Page: p, Generation: ps.Generation}
}

// IsCurrent reports whether results of t may still be applied.
func (s *Store) IsCurrent(t Task) bool {
	if !s.initialized || s.current != t.Page {
		return false
	}
	ps, ok := s.pages[t.Page]
	return ok && ps.Generation == t.Generation
}

// Finish records the terminal outcome of t. Only the latest generation of
// a page is recorded, and only once; Finish reports whether it was.
func (s *Store) Finish(t Task, o Outcome, err error) bool {
	ps, ok := s.pages[t.Page]
	if !ok || ps.Generation != t.Generation || !ps.InFlight {
		return false
	}
	ps.InFlight = false
	ps.Outcome = o
	ps.FinishedAt = s.now()
	ps.LastError = ""
	if err != nil {
		ps.LastError = err.Error()
	}
	return true
}

// State returns a copy of p's bookkeeping.
func (s *Store) State(p model.PageID) PageState {
	if ps, ok := s.pages[p]; ok {
		return *ps
	}
	return PageState{}
}

// AnyInFlight reports whether any page load is pending.
func (s *Store) AnyInFlight() bool {
	for _, ps := range s.pages {
		if ps.InFlight {
			return true
		}
	}
	return false
}
