// Package strategies holds shared allocation helpers used by the
// shipped strategy implementations.
package strategies

import (
	"sort"

	"github.com/Bhuvanesh09/mfsim/internal/engine"
	"github.com/Bhuvanesh09/mfsim/types"
)

// DefaultMetrics is the standard measurement set strategies report
// when none is configured.
var DefaultMetrics = []string{
	"Total Return", "XIRR", "Maximum Drawdown", "Sharpe Ratio", "Sortino Ratio",
}

// minOrderAmount drops dust orders a rebalance would otherwise emit.
const minOrderAmount = 1.0

// EqualAllocation splits an amount evenly across funds.
func EqualAllocation(funds []string, amount float64) map[string]float64 {
	out := make(map[string]float64, len(funds))
	for _, fund := range funds {
		out[fund] = amount / float64(len(funds))
	}
	return out
}

// WeightedAllocation splits an amount by target weight.
func WeightedAllocation(weights map[string]float64, amount float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for fund, pct := range weights {
		out[fund] = amount * pct
	}
	return out
}

// TargetOrders emits the buys and sells that move current holdings to
// the target weights, valuing funds at the last available NAV. Funds
// without NAV history on the snapshot date are left untouched, and
// orders under one rupee are skipped.
func TargetOrders(snap engine.Snapshot, targetWeights map[string]float64) []types.Order {
	navs := make(map[string]float64, len(targetWeights))
	var totalValue float64
	for fund := range targetWeights {
		series := snap.NavData[fund]
		if series == nil {
			continue
		}
		nav, ok := series.NavOnOrBefore(snap.Date)
		if !ok || nav == 0 {
			continue
		}
		navs[fund] = nav
		totalValue += snap.Holdings[fund] * nav
	}

	funds := make([]string, 0, len(targetWeights))
	for fund := range targetWeights {
		funds = append(funds, fund)
	}
	sort.Strings(funds)

	var orders []types.Order
	for _, fund := range funds {
		nav, ok := navs[fund]
		if !ok {
			continue
		}
		diff := totalValue*targetWeights[fund] - snap.Holdings[fund]*nav
		if diff > minOrderAmount || diff < -minOrderAmount {
			orders = append(orders, types.Order{FundName: fund, Amount: diff})
		}
	}
	return orders
}
