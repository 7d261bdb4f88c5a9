package metrics

import (
	"math"

	"github.com/Bhuvanesh09/mfsim/types"
)

const (
	riskFreeRate   = 0.06
	periodsPerYear = 252
)

// Metric computes a single measurement over a completed run. Calculate
// returns NaN when the measurement is undefined for the snapshot, for
// example a volatility ratio over fewer than two returns.
type Metric interface {
	Name() string
	Calculate(snap *Snapshot) float64
}

// TotalReturn is the simple gain on the net money put in. Rebalance
// churn and withdrawals net out of the denominator rather than
// inflating it.
type TotalReturn struct{}

func (TotalReturn) Name() string { return "TotalReturn" }

func (TotalReturn) Calculate(snap *Snapshot) float64 {
	invested := snap.NetInvested()
	if invested <= 0 {
		return math.NaN()
	}
	return snap.FinalValue()/invested - 1
}

// SharpeRatio is the annualized excess return per unit of volatility.
type SharpeRatio struct{}

func (SharpeRatio) Name() string { return "SharpeRatio" }

func (SharpeRatio) Calculate(snap *Snapshot) float64 {
	returns := dailyReturns(snap.ValueHistory())
	if len(returns) < 2 {
		return math.NaN()
	}
	excess := mean(returns) - riskFreeRate/periodsPerYear
	sd := stddev(returns)
	if sd == 0 {
		return math.NaN()
	}
	return excess / sd * math.Sqrt(periodsPerYear)
}

// SortinoRatio penalizes only downside volatility.
type SortinoRatio struct{}

func (SortinoRatio) Name() string { return "SortinoRatio" }

func (SortinoRatio) Calculate(snap *Snapshot) float64 {
	returns := dailyReturns(snap.ValueHistory())
	if len(returns) < 2 {
		return math.NaN()
	}
	threshold := riskFreeRate / periodsPerYear
	var downside []float64
	for _, r := range returns {
		if r < threshold {
			downside = append(downside, r-threshold)
		}
	}
	if len(downside) < 2 {
		return math.NaN()
	}
	dd := stddev(downside)
	if dd == 0 {
		return math.NaN()
	}
	return (mean(returns) - threshold) / dd * math.Sqrt(periodsPerYear)
}

// MaximumDrawdown is the worst peak-to-trough decline, as a non-positive
// fraction of the peak.
type MaximumDrawdown struct{}

func (MaximumDrawdown) Name() string { return "MaximumDrawdown" }

func (MaximumDrawdown) Calculate(snap *Snapshot) float64 {
	history := snap.ValueHistory()
	if len(history) == 0 {
		return math.NaN()
	}
	peak := history[0].Value
	worst := 0.0
	for _, p := range history {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			if dd := p.Value/peak - 1; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// Alpha is the portfolio's annualized return in excess of holding the
// benchmark over the same window.
type Alpha struct {
	BenchmarkFund string
}

func (Alpha) Name() string { return "Alpha" }

func (m Alpha) Calculate(snap *Snapshot) float64 {
	portfolio := (XIRR{}).Calculate(snap)
	bench := benchmarkCAGR(snap, m.BenchmarkFund)
	if math.IsNaN(portfolio) || math.IsNaN(bench) {
		return math.NaN()
	}
	return portfolio - bench
}

// TrackingError is the annualized volatility of the daily return gap
// against the benchmark.
type TrackingError struct {
	BenchmarkFund string
}

func (TrackingError) Name() string { return "TrackingError" }

func (m TrackingError) Calculate(snap *Snapshot) float64 {
	diffs := returnDiffs(snap, m.BenchmarkFund)
	if len(diffs) < 2 {
		return math.NaN()
	}
	return stddev(diffs) * math.Sqrt(periodsPerYear)
}

// InformationRatio is the mean return gap against the benchmark per
// unit of tracking error.
type InformationRatio struct {
	BenchmarkFund string
}

func (InformationRatio) Name() string { return "InformationRatio" }

func (m InformationRatio) Calculate(snap *Snapshot) float64 {
	diffs := returnDiffs(snap, m.BenchmarkFund)
	if len(diffs) < 2 {
		return math.NaN()
	}
	sd := stddev(diffs)
	if sd == 0 {
		return math.NaN()
	}
	return mean(diffs) / sd * math.Sqrt(periodsPerYear)
}

func benchmarkCAGR(snap *Snapshot, fund string) float64 {
	series := snap.NavData[fund]
	if series == nil || len(snap.Transactions) == 0 {
		return math.NaN()
	}
	start := types.Day(snap.Transactions[0].Date)
	first, ok1 := series.NavOnOrBefore(start)
	last, ok2 := series.NavOnOrBefore(snap.EndDate)
	if !ok1 || !ok2 || first <= 0 {
		return math.NaN()
	}
	years := snap.EndDate.Sub(start).Hours() / 24 / 365.25
	if years <= 0 {
		return math.NaN()
	}
	return math.Pow(last/first, 1/years) - 1
}

// returnDiffs pairs portfolio and benchmark daily returns over the same
// calendar days.
func returnDiffs(snap *Snapshot, fund string) []float64 {
	series := snap.NavData[fund]
	if series == nil {
		return nil
	}
	history := snap.ValueHistory()
	var diffs []float64
	for i := 1; i < len(history); i++ {
		prevVal := history[i-1].Value
		if prevVal <= 0 {
			continue
		}
		prevNav, ok1 := series.NavOnOrBefore(history[i-1].Date)
		curNav, ok2 := series.NavOnOrBefore(history[i].Date)
		if !ok1 || !ok2 || prevNav <= 0 {
			continue
		}
		diffs = append(diffs, (history[i].Value/prevVal-1)-(curNav/prevNav-1))
	}
	return diffs
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stddev is the sample standard deviation.
func stddev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return math.Sqrt(sq / float64(len(xs)-1))
}
