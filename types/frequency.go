package types

import (
	"fmt"
	"strings"
	"time"
)

// Frequency describes how often a recurring action fires.
type Frequency string

const (
	Daily        Frequency = "daily"
	Weekly       Frequency = "weekly"
	Monthly      Frequency = "monthly"
	Quarterly    Frequency = "quarterly"
	SemiAnnually Frequency = "semi-annually"
	Annually     Frequency = "annually"
)

// ParseFrequency converts a config string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	case Quarterly:
		return Quarterly, nil
	case SemiAnnually:
		return SemiAnnually, nil
	case Annually:
		return Annually, nil
	}
	return "", fmt.Errorf("unknown frequency %q", s)
}

// PeriodKey maps a day to the period it belongs to. A recurring action
// fires on the first trading day whose key differs from the last fired
// key, which keeps schedules aligned across weekends and holidays.
func (f Frequency) PeriodKey(t time.Time) string {
	d := Day(t)
	switch f {
	case Daily:
		return d.Format("2006-01-02")
	case Weekly:
		year, week := d.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case Monthly:
		return d.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", d.Year(), (int(d.Month())-1)/3+1)
	case SemiAnnually:
		half := 1
		if d.Month() > time.June {
			half = 2
		}
		return fmt.Sprintf("%04d-H%d", d.Year(), half)
	case Annually:
		return d.Format("2006")
	}
	return d.Format("2006-01-02")
}
