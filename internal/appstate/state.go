// Package appstate holds the board state shared between the search bar and
// the listing view: the loaded jobs, the current search filter, and whether a
// search has been submitted.
package appstate

import (
	"slices"
	"sync"

	"github.com/amishk599/jobboard/internal/model"
)

// State is safe for concurrent use and its zero value is ready to use.
// Subscribers are called synchronously
// after every setter, outside the lock, even when the value did not change.
type State struct {
	mu       sync.Mutex
	jobs     []model.Job
	search   model.SearchFilter
	searched bool

	nextID int
	subs   map[int]func()
}

// New returns an empty state.
func New() *State {
	return &State{subs: make(map[int]func())}
}

// Jobs returns a copy of the loaded job list in source order.
func (s *State) Jobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.jobs)
}

// SetJobs replaces the job list.
func (s *State) SetJobs(jobs []model.Job) {
	s.mu.Lock()
	s.jobs = slices.Clone(jobs)
	s.mu.Unlock()
	s.notify()
}

// SearchFilter returns the current free-text filter.
func (s *State) SearchFilter() model.SearchFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetSearchFilter replaces the search filter without touching the searched flag.
func (s *State) SetSearchFilter(f model.SearchFilter) {
	s.mu.Lock()
	s.search = f
	s.mu.Unlock()
	s.notify()
}

// Search submits f from the search bar and marks the state as searched.
func (s *State) Search(f model.SearchFilter) {
	s.mu.Lock()
	s.search = f
	s.searched = true
	s.mu.Unlock()
	s.notify()
}

// IsSearched reports whether a search has ever been submitted.
func (s *State) IsSearched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searched
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription; calling it more than once is harmless.
func (s *State) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *State) notify() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
