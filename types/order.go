package types

import "time"

// Order asks the simulator to move money in or out of a fund. A positive
// Amount buys, a negative Amount sells.
type Order struct {
	FundName string
	Amount   float64
}

// RebalanceEvent records that a strategy rebalanced and why.
type RebalanceEvent struct {
	Date time.Time
	Type RebalanceType
}

// RebalanceType distinguishes calendar rebalances from trigger-driven ones.
type RebalanceType string

const (
	RebalanceScheduled RebalanceType = "scheduled"
	RebalanceTriggered RebalanceType = "triggered"
)
