package metrics

import (
	"math"
	"time"

	"github.com/Bhuvanesh09/mfsim/types"
)

// flowTolerance drops negligible cash flows from the XIRR schedule.
const flowTolerance = 1e-8

type cashFlow struct {
	date   time.Time
	amount float64
}

// XIRR is the annualized money-weighted return over the run's irregular
// cash flow schedule. Contributions are outflows, withdrawals and the
// final portfolio value inflows.
type XIRR struct{}

func (XIRR) Name() string { return "XIRR" }

func (XIRR) Calculate(snap *Snapshot) float64 {
	flows := snap.cashFlows()
	if len(flows) < 2 {
		return math.NaN()
	}
	return xirr(flows)
}

func (s *Snapshot) cashFlows() []cashFlow {
	var flows []cashFlow
	for _, tx := range s.Transactions {
		if math.Abs(tx.Amount) < flowTolerance {
			continue
		}
		flows = append(flows, cashFlow{date: types.Day(tx.Date), amount: -tx.Amount})
	}
	if final := s.FinalValue(); final > flowTolerance {
		flows = append(flows, cashFlow{date: s.EndDate, amount: final})
	}
	return flows
}

// xirr solves net present value for the annual rate, Newton first and a
// bisection sweep when Newton wanders. NaN means no root was found.
func xirr(flows []cashFlow) float64 {
	rate := 0.10
	for i := 0; i < 100; i++ {
		value, derivative := npv(flows, rate)
		if derivative == 0 {
			break
		}
		next := rate - value/derivative
		if next <= -1 {
			break
		}
		if math.Abs(next-rate) < 1e-9 {
			return next
		}
		rate = next
	}

	lo, hi := -0.9999, 10.0
	flo, _ := npv(flows, lo)
	fhi, _ := npv(flows, hi)
	if flo*fhi > 0 {
		return math.NaN()
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fmid, _ := npv(flows, mid)
		if math.Abs(fmid) < 1e-9 {
			return mid
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return (lo + hi) / 2
}

func npv(flows []cashFlow, rate float64) (value, derivative float64) {
	t0 := flows[0].date
	for _, f := range flows {
		years := f.date.Sub(t0).Hours() / 24 / 365
		discount := math.Pow(1+rate, years)
		value += f.amount / discount
		derivative -= years * f.amount / (discount * (1 + rate))
	}
	return value, derivative
}
