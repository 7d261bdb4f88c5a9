// Package fixedalloc ships the buy-and-hold and calendar-rebalancing
// strategies over a fixed target allocation.
package fixedalloc

import (
	"math"
	"time"

	"github.com/Bhuvanesh09/mfsim/internal/engine"
	"github.com/Bhuvanesh09/mfsim/strategies"
	"github.com/Bhuvanesh09/mfsim/types"
)

// Config describes a fixed-allocation strategy. Weights must sum to 1
// over Funds; a nil Weights map means equal weighting. SIPIncreasePct
// steps the SIP amount up once per calendar year.
type Config struct {
	Funds          []string
	Weights        map[string]float64
	Frequency      types.Frequency
	Metrics        []string
	SIPIncreasePct float64
}

func (c Config) withDefaults() Config {
	if c.Frequency == "" {
		c.Frequency = types.Annually
	}
	if len(c.Metrics) == 0 {
		c.Metrics = strategies.DefaultMetrics
	}
	if c.Weights == nil {
		c.Weights = make(map[string]float64, len(c.Funds))
		for _, fund := range c.Funds {
			c.Weights[fund] = 1 / float64(len(c.Funds))
		}
	}
	return c
}

// Strategy invests contributions at fixed weights and never rebalances.
type Strategy struct {
	cfg    Config
	stepUp *sipStepUp
}

var (
	_ engine.Strategy = (*Strategy)(nil)
	_ engine.Strategy = (*Rebalancing)(nil)
)

func New(cfg Config) *Strategy {
	cfg = cfg.withDefaults()
	return &Strategy{cfg: cfg, stepUp: &sipStepUp{pct: cfg.SIPIncreasePct}}
}

func (s *Strategy) FundList() []string { return s.cfg.Funds }

func (s *Strategy) Frequency() types.Frequency { return s.cfg.Frequency }

func (s *Strategy) Metrics() []string { return s.cfg.Metrics }

func (s *Strategy) AllocateMoney(amount float64, _ engine.Snapshot) map[string]float64 {
	return strategies.WeightedAllocation(s.cfg.Weights, amount)
}

func (s *Strategy) Rebalance(engine.Snapshot) []types.Order { return nil }

func (s *Strategy) UpdateSIPAmount(current float64, date time.Time) float64 {
	return s.stepUp.amount(current, date)
}

// Rebalancing invests at fixed weights and pulls holdings back to them
// on the configured schedule.
type Rebalancing struct {
	cfg    Config
	stepUp *sipStepUp
}

func NewRebalancing(cfg Config) *Rebalancing {
	cfg = cfg.withDefaults()
	return &Rebalancing{cfg: cfg, stepUp: &sipStepUp{pct: cfg.SIPIncreasePct}}
}

func (s *Rebalancing) FundList() []string { return s.cfg.Funds }

func (s *Rebalancing) Frequency() types.Frequency { return s.cfg.Frequency }

func (s *Rebalancing) Metrics() []string { return s.cfg.Metrics }

func (s *Rebalancing) AllocateMoney(amount float64, _ engine.Snapshot) map[string]float64 {
	return strategies.WeightedAllocation(s.cfg.Weights, amount)
}

func (s *Rebalancing) Rebalance(snap engine.Snapshot) []types.Order {
	return strategies.TargetOrders(snap, s.cfg.Weights)
}

func (s *Rebalancing) UpdateSIPAmount(current float64, date time.Time) float64 {
	return s.stepUp.amount(current, date)
}

// sipStepUp compounds the initial SIP amount once per calendar year.
// The baseline is taken from the first amount it sees.
type sipStepUp struct {
	pct       float64
	started   bool
	startYear int
	initial   float64
}

func (s *sipStepUp) amount(current float64, date time.Time) float64 {
	if s.pct == 0 {
		return current
	}
	if !s.started {
		s.started = true
		s.startYear = date.Year()
		s.initial = current
	}
	years := date.Year() - s.startYear
	return s.initial * math.Pow(1+s.pct, float64(years))
}
