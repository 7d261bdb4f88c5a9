package metrics

import (
	"time"

	"github.com/Bhuvanesh09/mfsim/types"
)

// Snapshot is the completed run a metric measures. Transactions are in
// execution order; NavData must cover every fund they touch.
type Snapshot struct {
	Transactions  []types.Transaction
	RealizedGains []types.RealizedGain
	OpenLots      []types.Lot
	Holdings      map[string]float64
	EndDate       time.Time
	NavData       map[string]*types.NavSeries
	BenchmarkFund string
}

// ValuePoint is the portfolio's market value on one calendar day.
type ValuePoint struct {
	Date  time.Time
	Value float64
}

// Invested returns the sum of money put in across all buys.
func (s *Snapshot) Invested() float64 {
	var total float64
	for _, tx := range s.Transactions {
		if tx.Amount > 0 {
			total += tx.Amount
		}
	}
	return total
}

// Withdrawn returns the sum of money taken out across all sells.
func (s *Snapshot) Withdrawn() float64 {
	var total float64
	for _, tx := range s.Transactions {
		if tx.Amount < 0 {
			total += -tx.Amount
		}
	}
	return total
}

// NetInvested returns the signed sum of all transaction amounts. Money
// recycled through a rebalance nets out to zero, so only contributions
// and withdrawals move it.
func (s *Snapshot) NetInvested() float64 {
	var total float64
	for _, tx := range s.Transactions {
		total += tx.Amount
	}
	return total
}

// FinalValue prices current holdings at the last NAV on or before the
// end date.
func (s *Snapshot) FinalValue() float64 {
	var total float64
	for fund, units := range s.Holdings {
		if nav, ok := s.NavData[fund].NavOnOrBefore(s.EndDate); ok {
			total += units * nav
		}
	}
	return total
}

// ValueHistory reconstructs the daily portfolio value from the first
// transaction through the end date. Unit balances carry forward between
// transactions and NAVs fall back to the last published value, so the
// series covers holidays as well as trading days.
func (s *Snapshot) ValueHistory() []ValuePoint {
	if len(s.Transactions) == 0 {
		return nil
	}
	units := make(map[string]float64)
	txIdx := 0
	var history []ValuePoint
	for day := types.Day(s.Transactions[0].Date); !day.After(s.EndDate); day = day.AddDate(0, 0, 1) {
		for txIdx < len(s.Transactions) && !s.Transactions[txIdx].Date.After(day) {
			tx := s.Transactions[txIdx]
			units[tx.FundName] += tx.Units
			txIdx++
		}
		var value float64
		for fund, u := range units {
			if nav, ok := s.NavData[fund].NavOnOrBefore(day); ok {
				value += u * nav
			}
		}
		history = append(history, ValuePoint{Date: day, Value: value})
	}
	return history
}

// dailyReturns converts a value history into simple day-over-day returns,
// skipping days where the prior value is zero.
func dailyReturns(history []ValuePoint) []float64 {
	var out []float64
	for i := 1; i < len(history); i++ {
		prev := history[i-1].Value
		if prev <= 0 {
			continue
		}
		out = append(out, history[i].Value/prev-1)
	}
	return out
}
