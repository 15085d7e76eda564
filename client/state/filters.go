package state

import "sync"

// Filters is a snapshot of the filter store.
type Filters struct {
	Leagues  []uint
	Roles    []string
	MinGames int
	ViewMode string
	Sort     string
	Search   string
	Page     int
}

// FilterStore tracks the leaderboard filters. Any filter change resets the
// page back to the first one.
type FilterStore struct {
	mu      sync.RWMutex
	filters Filters
}

// NewFilterStore creates a filter store on the defaults.
func NewFilterStore() *FilterStore {
	return &FilterStore{
		filters: Filters{
			ViewMode: "players",
			Sort:     "games",
			Page:     1,
		},
	}
}

// Snapshot returns a copy of the current filters.
func (s *FilterStore) Snapshot() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.filters
	snapshot.Leagues = append([]uint(nil), s.filters.Leagues...)
	snapshot.Roles = append([]string(nil), s.filters.Roles...)
	return snapshot
}

// SetLeagues replaces the league filter.
func (s *FilterStore) SetLeagues(leagues []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Leagues = append([]uint(nil), leagues...)
	s.filters.Page = 1
}

// SetRoles replaces the role filter.
func (s *FilterStore) SetRoles(roles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Roles = append([]string(nil), roles...)
	s.filters.Page = 1
}

// SetMinGames sets the minimum games threshold.
func (s *FilterStore) SetMinGames(minGames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.MinGames = minGames
	s.filters.Page = 1
}

// SetViewMode switches between the team and player views.
func (s *FilterStore) SetViewMode(viewMode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if viewMode == s.filters.ViewMode {
		return
	}

	s.filters.ViewMode = viewMode
	s.filters.Page = 1
}

// SetSort sets the leaderboard sort column.
func (s *FilterStore) SetSort(sort string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Sort = sort
	s.filters.Page = 1
}

// SetSearch sets the name search.
func (s *FilterStore) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Search = search
	s.filters.Page = 1
}

// SetPage moves to the given page.
func (s *FilterStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	s.filters.Page = page
}
