package types

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testSeries() *NavSeries {
	return NewNavSeries([]NavPoint{
		{Date: day(2023, 1, 2), Nav: 10},
		{Date: day(2023, 1, 3), Nav: 10.5},
		// 4th and 5th are holidays
		{Date: day(2023, 1, 6), Nav: 11},
	})
}

func TestNavSeriesSortsUnorderedInput(t *testing.T) {
	s := NewNavSeries([]NavPoint{
		{Date: day(2023, 1, 6), Nav: 11},
		{Date: day(2023, 1, 2), Nav: 10},
	})
	if got := s.FirstDate(); !got.Equal(day(2023, 1, 2)) {
		t.Errorf("FirstDate = %v, want 2023-01-02", got)
	}
	if got := s.LastDate(); !got.Equal(day(2023, 1, 6)) {
		t.Errorf("LastDate = %v, want 2023-01-06", got)
	}
}

func TestNavOnNormalizesTime(t *testing.T) {
	s := testSeries()
	ist := time.FixedZone("IST", 5*3600+1800)
	nav, ok := s.NavOn(time.Date(2023, 1, 3, 15, 30, 0, 0, ist))
	if !ok || nav != 10.5 {
		t.Errorf("NavOn = %v, %v, want 10.5, true", nav, ok)
	}
}

func TestNavOnOrBefore(t *testing.T) {
	s := testSeries()
	tests := []struct {
		name string
		date time.Time
		nav  float64
		ok   bool
	}{
		{"exact day", day(2023, 1, 3), 10.5, true},
		{"holiday falls back", day(2023, 1, 5), 10.5, true},
		{"after series end", day(2023, 2, 1), 11, true},
		{"before series start", day(2023, 1, 1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, ok := s.NavOnOrBefore(tt.date)
			if nav != tt.nav || ok != tt.ok {
				t.Errorf("NavOnOrBefore(%v) = %v, %v, want %v, %v", tt.date, nav, ok, tt.nav, tt.ok)
			}
		})
	}
}

func TestFirstDateOnOrAfter(t *testing.T) {
	s := testSeries()
	got, ok := s.FirstDateOnOrAfter(day(2023, 1, 4))
	if !ok || !got.Equal(day(2023, 1, 6)) {
		t.Errorf("FirstDateOnOrAfter = %v, %v, want 2023-01-06, true", got, ok)
	}
	if _, ok := s.FirstDateOnOrAfter(day(2023, 1, 7)); ok {
		t.Error("expected no trading day after series end")
	}
}

func TestDatesRange(t *testing.T) {
	s := testSeries()
	got := s.Dates(day(2023, 1, 3), day(2023, 1, 6))
	if len(got) != 2 || !got[0].Equal(day(2023, 1, 3)) || !got[1].Equal(day(2023, 1, 6)) {
		t.Errorf("Dates = %v, want [2023-01-03 2023-01-06]", got)
	}
}
