package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Bhuvanesh09/mfsim/internal/config"
	"github.com/Bhuvanesh09/mfsim/internal/engine"
	"github.com/Bhuvanesh09/mfsim/internal/metrics"
	"github.com/Bhuvanesh09/mfsim/internal/navdata"
	"github.com/Bhuvanesh09/mfsim/internal/report"
	"github.com/Bhuvanesh09/mfsim/internal/repository"
	"github.com/Bhuvanesh09/mfsim/strategies/fixedalloc"
	"github.com/Bhuvanesh09/mfsim/strategies/momentumvalue"
	"github.com/Bhuvanesh09/mfsim/types"
)

func main() {
	configPath := flag.String("config", "run.yaml", "path to the run configuration yaml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "mfsim: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loader, closeLoader, err := buildLoader(cfg.DataLoader, logger)
	if err != nil {
		return err
	}
	defer closeLoader()

	strat, err := buildStrategy(cfg)
	if err != nil {
		return err
	}

	funds := strat.FundList()
	if bench := cfg.Simulation.BenchmarkFund; bench != "" && !contains(funds, bench) {
		funds = append(append([]string{}, funds...), bench)
	}
	navData, err := navdata.LoadAll(loader, funds)
	if err != nil {
		return err
	}

	sipFreq, err := types.ParseFrequency(cfg.Simulation.SIPFrequency)
	if err != nil {
		return err
	}

	sim, err := engine.NewSimulator(strat, navData, engine.Options{
		StartDate:         cfg.Simulation.StartDate.Time,
		EndDate:           cfg.Simulation.EndDate.Time,
		InitialInvestment: cfg.Simulation.InitialInvestment,
		SIPAmount:         cfg.Simulation.SIPAmount,
		SIPFrequency:      sipFreq,
		BenchmarkFund:     cfg.Simulation.BenchmarkFund,
		Logger:            logger,
		ShowProgress:      cfg.Simulation.ShowProgress,
	})
	if err != nil {
		return err
	}
	result, err := sim.Run()
	if err != nil {
		return err
	}

	snap := &metrics.Snapshot{
		Transactions:  result.Transactions,
		RealizedGains: result.RealizedGains,
		OpenLots:      result.OpenLots,
		Holdings:      result.Holdings,
		EndDate:       result.EndDate,
		NavData:       navData,
		BenchmarkFund: cfg.Simulation.BenchmarkFund,
	}
	values := make(map[string]float64)
	for _, name := range strat.Metrics() {
		metric, err := metrics.Lookup(name, cfg.Simulation.BenchmarkFund)
		if err != nil {
			logger.Warn("skipping metric", zap.String("name", name), zap.Error(err))
			continue
		}
		values[metric.Name()] = metric.Calculate(snap)
	}

	summary := report.Summary{
		StrategyName: cfg.Strategy.Name,
		Result:       result,
		Metrics:      values,
	}
	if err := report.WriteSummary(os.Stdout, summary); err != nil {
		return err
	}
	return writeOutputs(cfg.Report, result, snap, logger)
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// buildLoader returns the nav data source the configuration names and a
// close func releasing whatever it holds open.
func buildLoader(cfg config.DataLoaderConfig, logger *zap.Logger) (navdata.Loader, func(), error) {
	noop := func() {}
	switch cfg.Type {
	case "mfapi":
		funds, err := navdata.LoadSchemeList(cfg.SchemeListPath)
		if err != nil {
			return nil, nil, err
		}
		opts := navdata.MfAPIOptions{Logger: logger}
		closeCache := noop
		if cfg.CacheDir != "" {
			cache, err := navdata.OpenNavCache(filepath.Join(cfg.CacheDir, "navcache.db"), cfg.CacheTTL())
			if err != nil {
				return nil, nil, err
			}
			opts.Cache = cache
			closeCache = func() { cache.Close() }
		}
		return navdata.NewMfAPILoader(funds, opts), closeCache, nil
	case "nsecsv":
		loader, err := navdata.NewNSECSVLoader(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return loader, noop, nil
	case "postgres":
		db, err := repository.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db.NavLoader(context.Background()), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data_loader type %q", cfg.Type)
	}
}

func buildStrategy(cfg *config.Config) (engine.Strategy, error) {
	rebalFreq, err := types.ParseFrequency(cfg.Strategy.RebalanceFrequency)
	if err != nil {
		return nil, err
	}
	switch cfg.Strategy.Name {
	case "fixed_allocation":
		return fixedalloc.New(fixedalloc.Config{
			Funds:          cfg.Strategy.Funds,
			Weights:        cfg.Strategy.Weights,
			Frequency:      rebalFreq,
			Metrics:        cfg.Metrics,
			SIPIncreasePct: cfg.SIPStepUp.AnnualIncreasePct,
		}), nil
	case "rebalancing":
		return fixedalloc.NewRebalancing(fixedalloc.Config{
			Funds:          cfg.Strategy.Funds,
			Weights:        cfg.Strategy.Weights,
			Frequency:      rebalFreq,
			Metrics:        cfg.Metrics,
			SIPIncreasePct: cfg.SIPStepUp.AnnualIncreasePct,
		}), nil
	case "momentum_value":
		if len(cfg.Strategy.Funds) != 2 {
			return nil, errors.New("momentum_value needs exactly two funds, value first then momentum")
		}
		return momentumvalue.New(momentumvalue.Config{
			ValueFund:          cfg.Strategy.Funds[0],
			MomentumFund:       cfg.Strategy.Funds[1],
			Frequency:          rebalFreq,
			Metrics:            cfg.Metrics,
			MomentumPeriodDays: cfg.Strategy.MomentumPeriodDays,
			ShiftFraction:      cfg.Strategy.ShiftFraction,
			TriggerEnabled:     cfg.Strategy.Trigger.Enabled,
			CooldownDays:       cfg.Strategy.Trigger.CooldownDays,
			Threshold:          cfg.Strategy.Trigger.Threshold,
		}), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy.Name)
	}
}

func writeOutputs(cfg config.ReportConfig, result *engine.Result, snap *metrics.Snapshot, logger *zap.Logger) error {
	if !cfg.WriteCSV && !cfg.WriteCharts {
		return nil
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if cfg.WriteCSV {
		txPath := filepath.Join(outDir, "transactions.csv")
		if err := report.WriteTransactionsCSVFile(txPath, result.Transactions); err != nil {
			return err
		}
		gainsPath := filepath.Join(outDir, "realized_gains.csv")
		if err := report.WriteRealizedGainsCSVFile(gainsPath, result.RealizedGains); err != nil {
			return err
		}
		logger.Info("wrote csv reports", zap.String("dir", outDir))
	}
	if cfg.WriteCharts {
		history := snap.ValueHistory()
		if err := report.WriteEquityChart(filepath.Join(outDir, "equity.png"), history); err != nil {
			return err
		}
		if err := report.WriteDrawdownChart(filepath.Join(outDir, "drawdown.png"), history); err != nil {
			return err
		}
		logger.Info("wrote charts", zap.String("dir", outDir))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
