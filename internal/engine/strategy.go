package engine

import (
	"time"

	"github.com/Bhuvanesh09/mfsim/types"
)

// Snapshot is the read-only view of the simulation a strategy sees when
// it is asked for orders.
type Snapshot struct {
	Date     time.Time
	Holdings map[string]float64
	Values   map[string]float64
	NavData  map[string]*types.NavSeries
}

// TotalValue returns the combined market value of all holdings.
func (s Snapshot) TotalValue() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Strategy decides where contributions go and how holdings are reshaped
// over time. Implementations must be deterministic for a given snapshot.
type Strategy interface {
	// FundList names the funds the strategy trades. The first entry is
	// the lead fund whose trading calendar drives the simulation.
	FundList() []string

	// Frequency is the calendar rebalance schedule.
	Frequency() types.Frequency

	// Metrics names the measurements to compute for the strategy's run.
	Metrics() []string

	// AllocateMoney splits a contribution across funds. Amounts must be
	// non-negative and sum to no more than the contribution.
	AllocateMoney(amount float64, snap Snapshot) map[string]float64

	// Rebalance returns the orders to execute on a rebalance day. An
	// empty slice means the strategy is content with current holdings.
	Rebalance(snap Snapshot) []types.Order

	// UpdateSIPAmount lets the strategy step up the recurring
	// contribution. It receives the current amount and returns the
	// amount to invest from this contribution on.
	UpdateSIPAmount(current float64, date time.Time) float64
}

// RebalanceTrigger is implemented by strategies that also rebalance in
// response to market conditions between scheduled dates.
type RebalanceTrigger interface {
	ShouldRebalance(snap Snapshot) bool
}
