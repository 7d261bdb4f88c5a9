// Package momentumvalue rotates between a value and a momentum index
// fund by comparing their trailing returns.
package momentumvalue

import (
	"math"
	"time"

	"github.com/Bhuvanesh09/mfsim/internal/engine"
	"github.com/Bhuvanesh09/mfsim/strategies"
	"github.com/Bhuvanesh09/mfsim/types"
)

// Config describes the rotation. MomentumPeriodDays is the trailing
// window the funds are compared over and ShiftFraction the share of
// the lagging fund's value moved on each rebalance. TriggerEnabled
// additionally fires a rebalance whenever the leader flips, subject to
// the cooldown and the minimum lead threshold.
type Config struct {
	ValueFund          string
	MomentumFund       string
	Frequency          types.Frequency
	Metrics            []string
	MomentumPeriodDays int
	ShiftFraction      float64
	TriggerEnabled     bool
	CooldownDays       int
	Threshold          float64
}

func (c Config) withDefaults() Config {
	if c.Frequency == "" {
		c.Frequency = types.Monthly
	}
	if len(c.Metrics) == 0 {
		c.Metrics = strategies.DefaultMetrics
	}
	if c.MomentumPeriodDays == 0 {
		c.MomentumPeriodDays = 180
	}
	if c.ShiftFraction == 0 {
		c.ShiftFraction = 0.10
	}
	if c.CooldownDays == 0 {
		c.CooldownDays = 21
	}
	return c
}

type Strategy struct {
	cfg Config

	signalSeen   bool
	lastLeader   bool // true when momentum led at the last observation
	lastTrigger  time.Time
	triggerCount int
}

var (
	_ engine.Strategy         = (*Strategy)(nil)
	_ engine.RebalanceTrigger = (*Strategy)(nil)
)

func New(cfg Config) *Strategy {
	return &Strategy{cfg: cfg.withDefaults()}
}

func (s *Strategy) FundList() []string {
	return []string{s.cfg.ValueFund, s.cfg.MomentumFund}
}

func (s *Strategy) Frequency() types.Frequency { return s.cfg.Frequency }

func (s *Strategy) Metrics() []string { return s.cfg.Metrics }

func (s *Strategy) UpdateSIPAmount(current float64, _ time.Time) float64 { return current }

func (s *Strategy) AllocateMoney(amount float64, _ engine.Snapshot) map[string]float64 {
	return strategies.EqualAllocation(s.FundList(), amount)
}

// TriggerCount reports how many trigger-driven rebalances have fired.
func (s *Strategy) TriggerCount() int { return s.triggerCount }

// Rebalance shifts a slice of the lagging fund into the leader. With no
// usable trailing window it leaves holdings alone.
func (s *Strategy) Rebalance(snap engine.Snapshot) []types.Order {
	diff, ok := s.trailingReturnGap(snap)
	if !ok {
		return nil
	}
	// The scheduled rebalance observes the same signal the trigger
	// watches, so record it to avoid re-firing on old news.
	momentumLeads := diff > 0
	s.signalSeen = true
	s.lastLeader = momentumLeads

	from, to := s.cfg.MomentumFund, s.cfg.ValueFund
	if momentumLeads {
		from, to = s.cfg.ValueFund, s.cfg.MomentumFund
	}
	nav, ok := navOnOrBefore(snap, from)
	if !ok {
		return nil
	}
	shift := s.cfg.ShiftFraction * snap.Holdings[from] * nav
	if shift <= 1 {
		return nil
	}
	return []types.Order{
		{FundName: from, Amount: -shift},
		{FundName: to, Amount: shift},
	}
}

// ShouldRebalance fires when the trailing-return leader flips by more
// than the threshold and the cooldown since the last trigger has passed.
// The first observation only records the signal.
func (s *Strategy) ShouldRebalance(snap engine.Snapshot) bool {
	if !s.cfg.TriggerEnabled {
		return false
	}
	diff, ok := s.trailingReturnGap(snap)
	if !ok {
		return false
	}
	momentumLeads := diff > 0
	if !s.signalSeen {
		s.signalSeen = true
		s.lastLeader = momentumLeads
		return false
	}
	if momentumLeads == s.lastLeader {
		return false
	}
	if math.Abs(diff) < s.cfg.Threshold {
		return false
	}
	if !s.lastTrigger.IsZero() && snap.Date.Sub(s.lastTrigger).Hours()/24 < float64(s.cfg.CooldownDays) {
		return false
	}
	s.lastLeader = momentumLeads
	s.lastTrigger = snap.Date
	s.triggerCount++
	return true
}

// trailingReturnGap is the momentum fund's trailing return minus the
// value fund's over the configured window.
func (s *Strategy) trailingReturnGap(snap engine.Snapshot) (float64, bool) {
	windowStart := snap.Date.AddDate(0, 0, -s.cfg.MomentumPeriodDays)
	momentum, ok := trailingReturn(snap, s.cfg.MomentumFund, windowStart)
	if !ok {
		return 0, false
	}
	value, ok := trailingReturn(snap, s.cfg.ValueFund, windowStart)
	if !ok {
		return 0, false
	}
	return momentum - value, true
}

func trailingReturn(snap engine.Snapshot, fund string, windowStart time.Time) (float64, bool) {
	series := snap.NavData[fund]
	if series == nil {
		return 0, false
	}
	startDate, ok := series.FirstDateOnOrAfter(windowStart)
	if !ok || startDate.After(snap.Date) {
		return 0, false
	}
	startNav, ok := series.NavOn(startDate)
	if !ok || startNav == 0 {
		return 0, false
	}
	endNav, ok := series.NavOnOrBefore(snap.Date)
	if !ok {
		return 0, false
	}
	return endNav/startNav - 1, true
}

func navOnOrBefore(snap engine.Snapshot, fund string) (float64, bool) {
	series := snap.NavData[fund]
	if series == nil {
		return 0, false
	}
	return series.NavOnOrBefore(snap.Date)
}
