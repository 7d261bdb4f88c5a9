package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Bhuvanesh09/mfsim/types"
)

var AlreadyRanErr = errors.New("simulator has already run")
var MissingNavDataErr = errors.New("missing nav data for fund")
var NoTradingDaysErr = errors.New("no trading days in the simulation window")

const (
	defaultStampDutyRate = 0.00005
)

// stampDutyDefaultStart is when the purchase levy came into force.
var stampDutyDefaultStart = time.Date(2020, time.July, 1, 0, 0, 0, 0, time.UTC)

// Options configures a simulation run. StampDutyRate and StampDutyStart
// fall back to the statutory defaults when left zero.
type Options struct {
	StartDate         time.Time
	EndDate           time.Time
	InitialInvestment float64
	SIPAmount         float64
	SIPFrequency      types.Frequency
	BenchmarkFund     string
	StampDutyRate     float64
	StampDutyStart    time.Time
	Logger            *zap.Logger
	ShowProgress      bool
}

// Result is everything a run produced, in execution order.
type Result struct {
	StartDate       time.Time
	EndDate         time.Time
	Transactions    []types.Transaction
	RealizedGains   []types.RealizedGain
	OpenLots        []types.Lot
	Holdings        map[string]float64
	RebalanceEvents []types.RebalanceEvent
	TotalInvested   float64
	StampDutyPaid   float64
	FinalValue      float64
}

// Simulator replays a strategy against historical NAV series day by day
// on the lead fund's trading calendar.
type Simulator struct {
	strategy Strategy
	navData  map[string]*types.NavSeries
	opts     Options
	logger   *zap.Logger

	tracker *LotTracker
	result  *Result
	ran     bool

	sipAmount    float64
	lastSIPKey   string
	lastRebalKey string
	leadFund     string
}

// NewSimulator validates the options against the strategy's fund list
// and snaps the start date forward to the lead fund's first trading day.
func NewSimulator(strat Strategy, navData map[string]*types.NavSeries, opts Options) (*Simulator, error) {
	funds := strat.FundList()
	if len(funds) == 0 {
		return nil, errors.New("strategy trades no funds")
	}
	for _, fund := range funds {
		if navData[fund] == nil {
			return nil, fmt.Errorf("%w: %q", MissingNavDataErr, fund)
		}
	}
	if opts.BenchmarkFund != "" && navData[opts.BenchmarkFund] == nil {
		return nil, fmt.Errorf("%w: benchmark %q", MissingNavDataErr, opts.BenchmarkFund)
	}
	if opts.StampDutyRate == 0 {
		opts.StampDutyRate = defaultStampDutyRate
	}
	if opts.StampDutyStart.IsZero() {
		opts.StampDutyStart = stampDutyDefaultStart
	}
	if opts.SIPFrequency == "" {
		opts.SIPFrequency = types.Monthly
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	lead := funds[0]
	start, ok := navData[lead].FirstDateOnOrAfter(opts.StartDate)
	if !ok || start.After(types.Day(opts.EndDate)) {
		return nil, fmt.Errorf("%w: %s to %s", NoTradingDaysErr,
			opts.StartDate.Format("2006-01-02"), opts.EndDate.Format("2006-01-02"))
	}
	opts.StartDate = start
	opts.EndDate = types.Day(opts.EndDate)

	return &Simulator{
		strategy:  strat,
		navData:   navData,
		opts:      opts,
		logger:    opts.Logger,
		tracker:   NewLotTracker(),
		leadFund:  lead,
		sipAmount: opts.SIPAmount,
	}, nil
}

// StartDate returns the effective start after snapping to a trading day.
func (s *Simulator) StartDate() time.Time {
	return s.opts.StartDate
}

// Run replays the strategy across the window and returns the outcome.
// A simulator runs at most once.
func (s *Simulator) Run() (*Result, error) {
	if s.ran {
		return nil, AlreadyRanErr
	}
	s.ran = true
	s.result = &Result{StartDate: s.opts.StartDate, EndDate: s.opts.EndDate}

	days := s.navData[s.leadFund].Dates(s.opts.StartDate, s.opts.EndDate)
	if len(days) == 0 {
		return nil, NoTradingDaysErr
	}

	// The opening contribution lands on day one. Seeding the period
	// markers from the same day keeps the first SIP and rebalance in
	// the following period instead of doubling up at the start.
	s.lastSIPKey = s.opts.SIPFrequency.PeriodKey(days[0])
	s.lastRebalKey = s.strategy.Frequency().PeriodKey(days[0])
	if s.opts.InitialInvestment > 0 {
		if err := s.contribute(days[0], s.opts.InitialInvestment); err != nil {
			return nil, err
		}
	}

	var bar *progressbar.ProgressBar
	if s.opts.ShowProgress {
		bar = progressbar.Default(int64(len(days)), "simulating")
	}

	for _, day := range days {
		if err := s.step(day); err != nil {
			return nil, err
		}
		if bar != nil {
			bar.Add(1)
		}
	}

	last := days[len(days)-1]
	s.result.Holdings = s.tracker.GetAllHoldings()
	s.result.RealizedGains = s.tracker.RealizedGains()
	s.result.OpenLots = s.tracker.GetAllLots()
	s.result.FinalValue = s.portfolioValue(last)
	s.logger.Info("simulation complete",
		zap.Time("start", s.opts.StartDate),
		zap.Time("end", last),
		zap.Float64("invested", s.result.TotalInvested),
		zap.Float64("final_value", s.result.FinalValue),
		zap.Int("transactions", len(s.result.Transactions)))
	return s.result, nil
}

func (s *Simulator) step(day time.Time) error {
	s.sipAmount = s.strategy.UpdateSIPAmount(s.sipAmount, day)

	if key := s.opts.SIPFrequency.PeriodKey(day); key != s.lastSIPKey {
		s.lastSIPKey = key
		if s.sipAmount > 0 {
			if err := s.contribute(day, s.sipAmount); err != nil {
				return err
			}
		}
	}

	if key := s.strategy.Frequency().PeriodKey(day); key != s.lastRebalKey {
		s.lastRebalKey = key
		if err := s.rebalance(day, types.RebalanceScheduled); err != nil {
			return err
		}
	}

	// A scheduled rebalance does not preempt a trigger firing the same
	// day; both are recorded so runs can be audited event by event.
	if trigger, ok := s.strategy.(RebalanceTrigger); ok {
		if trigger.ShouldRebalance(s.snapshot(day)) {
			if err := s.rebalance(day, types.RebalanceTriggered); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Simulator) contribute(day time.Time, amount float64) error {
	allocations := s.strategy.AllocateMoney(amount, s.snapshot(day))
	funds := make([]string, 0, len(allocations))
	for fund := range allocations {
		funds = append(funds, fund)
	}
	sort.Strings(funds)
	for _, fund := range funds {
		if allocations[fund] <= 0 {
			continue
		}
		if err := s.buy(fund, day, allocations[fund]); err != nil {
			return err
		}
	}
	s.result.TotalInvested += amount
	return nil
}

func (s *Simulator) rebalance(day time.Time, kind types.RebalanceType) error {
	orders := s.strategy.Rebalance(s.snapshot(day))
	if len(orders) == 0 {
		return nil
	}
	// Sells free up the money the buys in the same batch spend.
	for _, order := range orders {
		if order.Amount < 0 {
			if err := s.sell(order.FundName, day, -order.Amount); err != nil {
				return err
			}
		}
	}
	for _, order := range orders {
		if order.Amount > 0 {
			if err := s.buy(order.FundName, day, order.Amount); err != nil {
				return err
			}
		}
	}
	s.result.RebalanceEvents = append(s.result.RebalanceEvents, types.RebalanceEvent{Date: day, Type: kind})
	s.logger.Info("rebalanced",
		zap.Time("date", day),
		zap.String("type", string(kind)),
		zap.Int("orders", len(orders)))
	return nil
}

// buy converts a gross contribution into units, deducting stamp duty on
// purchases made after the levy came into force.
func (s *Simulator) buy(fund string, day time.Time, gross float64) error {
	nav, ok := s.navData[fund].NavOn(day)
	if !ok {
		return fmt.Errorf("%w: %q has no nav on %s", MissingNavDataErr, fund, day.Format("2006-01-02"))
	}
	net := gross
	if !day.Before(s.opts.StampDutyStart) {
		duty := gross * s.opts.StampDutyRate
		net = gross - duty
		s.result.StampDutyPaid += duty
	}
	units := net / nav
	s.tracker.Buy(fund, day, units, nav)
	s.result.Transactions = append(s.result.Transactions, types.Transaction{
		FundName: fund,
		Date:     day,
		Units:    units,
		Nav:      nav,
		Amount:   net,
	})
	s.logger.Debug("buy",
		zap.String("fund", fund),
		zap.Time("date", day),
		zap.Float64("units", units),
		zap.Float64("nav", nav))
	return nil
}

func (s *Simulator) sell(fund string, day time.Time, amount float64) error {
	nav, ok := s.navData[fund].NavOn(day)
	if !ok {
		return fmt.Errorf("%w: %q has no nav on %s", MissingNavDataErr, fund, day.Format("2006-01-02"))
	}
	units := amount / nav
	gains, err := s.tracker.Sell(fund, day, units, nav)
	if err != nil {
		return err
	}
	s.result.Transactions = append(s.result.Transactions, types.Transaction{
		FundName: fund,
		Date:     day,
		Units:    -units,
		Nav:      nav,
		Amount:   -amount,
	})
	s.logger.Debug("sell",
		zap.String("fund", fund),
		zap.Time("date", day),
		zap.Float64("units", units),
		zap.Float64("nav", nav),
		zap.Int("lots_consumed", len(gains)))
	return nil
}

func (s *Simulator) snapshot(day time.Time) Snapshot {
	holdings := s.tracker.GetAllHoldings()
	values := make(map[string]float64, len(holdings))
	for fund, units := range holdings {
		if nav, ok := s.navData[fund].NavOnOrBefore(day); ok {
			values[fund] = units * nav
		}
	}
	return Snapshot{
		Date:     day,
		Holdings: holdings,
		Values:   values,
		NavData:  s.navData,
	}
}

func (s *Simulator) portfolioValue(day time.Time) float64 {
	var total float64
	for fund, units := range s.tracker.GetAllHoldings() {
		if nav, ok := s.navData[fund].NavOnOrBefore(day); ok {
			total += units * nav
		}
	}
	return total
}
