package types

import (
	"sort"
	"time"
)

// NavPoint is a single published net asset value for a fund.
type NavPoint struct {
	Date time.Time
	Nav  float64
}

// NavSeries holds the published NAV history of a fund ordered by date.
// Dates are normalized to midnight UTC so that lookups by calendar day
// are exact regardless of the timezone the caller used.
type NavSeries struct {
	points []NavPoint
	index  map[time.Time]int
}

// Day strips the time-of-day and timezone from t.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NewNavSeries builds a series from points in any order. Duplicate dates
// keep the last point seen.
func NewNavSeries(points []NavPoint) *NavSeries {
	byDate := make(map[time.Time]float64, len(points))
	for _, p := range points {
		byDate[Day(p.Date)] = p.Nav
	}
	sorted := make([]NavPoint, 0, len(byDate))
	for d, nav := range byDate {
		sorted = append(sorted, NavPoint{Date: d, Nav: nav})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	index := make(map[time.Time]int, len(sorted))
	for i, p := range sorted {
		index[p.Date] = i
	}
	return &NavSeries{points: sorted, index: index}
}

// Len returns the number of trading days in the series.
func (s *NavSeries) Len() int {
	return len(s.points)
}

// HasDate reports whether the fund traded on the given day.
func (s *NavSeries) HasDate(t time.Time) bool {
	_, ok := s.index[Day(t)]
	return ok
}

// NavOn returns the NAV published exactly on the given day.
func (s *NavSeries) NavOn(t time.Time) (float64, bool) {
	i, ok := s.index[Day(t)]
	if !ok {
		return 0, false
	}
	return s.points[i].Nav, true
}

// NavOnOrBefore returns the most recent NAV published on or before the
// given day. It returns false when the day precedes the whole series.
func (s *NavSeries) NavOnOrBefore(t time.Time) (float64, bool) {
	d := Day(t)
	i := sort.Search(len(s.points), func(i int) bool {
		return s.points[i].Date.After(d)
	})
	if i == 0 {
		return 0, false
	}
	return s.points[i-1].Nav, true
}

// FirstDateOnOrAfter returns the first trading day on or after the
// given day. It returns false when the series ends before that day.
func (s *NavSeries) FirstDateOnOrAfter(t time.Time) (time.Time, bool) {
	d := Day(t)
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Date.Before(d)
	})
	if i == len(s.points) {
		return time.Time{}, false
	}
	return s.points[i].Date, true
}

// Dates returns every trading day in the inclusive range [from, to].
func (s *NavSeries) Dates(from, to time.Time) []time.Time {
	lo, hi := Day(from), Day(to)
	var out []time.Time
	for _, p := range s.points {
		if p.Date.Before(lo) {
			continue
		}
		if p.Date.After(hi) {
			break
		}
		out = append(out, p.Date)
	}
	return out
}

// FirstDate returns the earliest trading day in the series.
func (s *NavSeries) FirstDate() time.Time {
	if len(s.points) == 0 {
		return time.Time{}
	}
	return s.points[0].Date
}

// LastDate returns the latest trading day in the series.
func (s *NavSeries) LastDate() time.Time {
	if len(s.points) == 0 {
		return time.Time{}
	}
	return s.points[len(s.points)-1].Date
}

// Points returns a copy of the ordered series.
func (s *NavSeries) Points() []NavPoint {
	out := make([]NavPoint, len(s.points))
	copy(out, s.points)
	return out
}
