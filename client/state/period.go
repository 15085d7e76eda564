// Package state holds the client side dashboard state, the period and
// filter stores, the comparison selection machine and the URL sync.
package state

import (
	"sync"
	"time"

	"leaguedash/pkg/daterange"
)

// PeriodStore tracks the selected period and reference date and resolves
// them into a concrete window. Navigation is clamped between the minimum
// data date and today.
type PeriodStore struct {
	mu        sync.RWMutex
	period    daterange.Period
	reference time.Time
	custom    daterange.Range
	minDate   time.Time
	now       func() time.Time
}

// NewPeriodStore creates a period store on the rolling window, referenced
// on today.
func NewPeriodStore(minDate time.Time) *PeriodStore {
	now := time.Now
	return &PeriodStore{
		period:    daterange.PeriodDay,
		reference: daterange.DateOnly(now()),
		minDate:   daterange.DateOnly(minDate),
		now:       now,
	}
}

// Period returns the selected period.
func (s *PeriodStore) Period() daterange.Period {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.period
}

// SetPeriod switches the period, keeping the reference date.
func (s *PeriodStore) SetPeriod(period daterange.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if period != daterange.PeriodCustom {
		if _, err := daterange.Resolve(period, s.reference); err != nil {
			return err
		}
	}

	s.period = period
	return nil
}

// SetCustom switches to an explicit custom window.
func (s *PeriodStore) SetCustom(start, end time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.period = daterange.PeriodCustom
	s.custom = daterange.Custom(start, end, s.now())
}

// SetReference moves the reference date without changing the period.
func (s *PeriodStore) SetReference(reference time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reference = daterange.DateOnly(reference)
}

// Range resolves the current selection into a concrete window.
func (s *PeriodStore) Range() daterange.Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolve()
}

func (s *PeriodStore) resolve() daterange.Range {
	if s.period == daterange.PeriodCustom {
		return s.custom
	}

	// The period was validated on the way in, Resolve can't fail here.
	rng, _ := daterange.Resolve(s.period, s.reference)
	return rng
}

// Prev moves the window one full length back, clamped on the minimum
// data date.
func (s *PeriodStore) Prev() {
	s.navigate(daterange.Prev)
}

// Next moves the window one full length forward, clamped on today.
func (s *PeriodStore) Next() {
	s.navigate(daterange.Next)
}

func (s *PeriodStore) navigate(dir daterange.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.resolve().Days()
	today := daterange.DateOnly(s.now())

	if s.period == daterange.PeriodCustom {
		end := daterange.Navigate(s.custom.End, dir, step, s.minDate, today)
		s.custom = daterange.Custom(end.AddDate(0, 0, -(step-1)), end, s.now())
		return
	}

	s.reference = daterange.Navigate(s.reference, dir, step, s.minDate, today)
}
