package types

import (
	"testing"
	"time"
)

func TestParseFrequency(t *testing.T) {
	if _, err := ParseFrequency("fortnightly"); err == nil {
		t.Error("expected error for unknown frequency")
	}
	f, err := ParseFrequency(" Monthly ")
	if err != nil || f != Monthly {
		t.Errorf("ParseFrequency = %v, %v, want monthly", f, err)
	}
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		freq Frequency
		date time.Time
		want string
	}{
		{Daily, day(2023, 3, 15), "2023-03-15"},
		{Weekly, day(2023, 1, 2), "2023-W01"},
		{Weekly, day(2023, 1, 1), "2022-W52"}, // ISO week of prior year
		{Monthly, day(2023, 3, 15), "2023-03"},
		{Quarterly, day(2023, 4, 1), "2023-Q2"},
		{SemiAnnually, day(2023, 6, 30), "2023-H1"},
		{SemiAnnually, day(2023, 7, 1), "2023-H2"},
		{Annually, day(2023, 12, 31), "2023"},
	}
	for _, tt := range tests {
		if got := tt.freq.PeriodKey(tt.date); got != tt.want {
			t.Errorf("%s.PeriodKey(%v) = %q, want %q", tt.freq, tt.date, got, tt.want)
		}
	}
}

func TestPeriodKeyChangesAcrossMonthBoundary(t *testing.T) {
	a := Monthly.PeriodKey(day(2023, 1, 31))
	b := Monthly.PeriodKey(day(2023, 2, 1))
	if a == b {
		t.Errorf("expected different keys across month boundary, got %q", a)
	}
}
