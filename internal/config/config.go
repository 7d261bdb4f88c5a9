package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Date unmarshals "2006-01-02" yaml scalars.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", value.Value)
	}
	d.Time = t
	return nil
}

// Config is one simulation run as described by a yaml file.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Strategy   StrategyConfig   `yaml:"strategy"`
	DataLoader DataLoaderConfig `yaml:"data_loader"`
	SIPStepUp  SIPStepUpConfig  `yaml:"sip_stepup"`
	Metrics    []string         `yaml:"metrics"`
	Report     ReportConfig     `yaml:"report"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type SimulationConfig struct {
	StartDate         Date    `yaml:"start_date"`
	EndDate           Date    `yaml:"end_date"`
	InitialInvestment float64 `yaml:"initial_investment"`
	SIPAmount         float64 `yaml:"sip_amount"`
	SIPFrequency      string  `yaml:"sip_frequency"`
	BenchmarkFund     string  `yaml:"benchmark_fund"`
	ShowProgress      bool    `yaml:"show_progress"`
}

type StrategyConfig struct {
	Name               string             `yaml:"name"`
	Funds              []string           `yaml:"funds"`
	Weights            map[string]float64 `yaml:"weights"`
	RebalanceFrequency string             `yaml:"rebalance_frequency"`
	MomentumPeriodDays int                `yaml:"momentum_period_days"`
	ShiftFraction      float64            `yaml:"shift_fraction"`
	Trigger            TriggerConfig      `yaml:"trigger"`
}

type TriggerConfig struct {
	Enabled      bool    `yaml:"enabled"`
	CooldownDays int     `yaml:"cooldown_days"`
	Threshold    float64 `yaml:"threshold"`
}

type DataLoaderConfig struct {
	Type           string `yaml:"type"`
	SchemeListPath string `yaml:"scheme_list_path"`
	CacheDir       string `yaml:"cache_dir"`
	CacheTTLHours  int    `yaml:"cache_ttl_hours"`
	DataDir        string `yaml:"data_dir"`
	DatabaseURL    string `yaml:"database_url"`
}

type SIPStepUpConfig struct {
	AnnualIncreasePct float64 `yaml:"annual_increase_pct"`
}

type ReportConfig struct {
	OutputDir   string `yaml:"output_dir"`
	WriteCSV    bool   `yaml:"write_csv"`
	WriteCharts bool   `yaml:"write_charts"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and validates a run configuration.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation.SIPFrequency == "" {
		c.Simulation.SIPFrequency = "monthly"
	}
	if c.Strategy.RebalanceFrequency == "" {
		c.Strategy.RebalanceFrequency = "annually"
	}
	if c.DataLoader.Type == "" {
		c.DataLoader.Type = "mfapi"
	}
	if c.DataLoader.CacheTTLHours == 0 {
		c.DataLoader.CacheTTLHours = 24
	}
	if len(c.Metrics) == 0 {
		c.Metrics = []string{"TotalReturn", "XIRR", "MaximumDrawdown"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate rejects configurations a run could not start from.
func (c *Config) Validate() error {
	if c.Simulation.StartDate.IsZero() || c.Simulation.EndDate.IsZero() {
		return errors.New("simulation start_date and end_date are required")
	}
	if !c.Simulation.StartDate.Before(c.Simulation.EndDate.Time) {
		return errors.New("start_date must precede end_date")
	}
	if c.Simulation.InitialInvestment <= 0 && c.Simulation.SIPAmount <= 0 {
		return errors.New("either initial_investment or sip_amount must be positive")
	}
	if len(c.Strategy.Funds) == 0 {
		return errors.New("strategy needs at least one fund")
	}
	switch c.DataLoader.Type {
	case "mfapi", "nsecsv", "postgres":
	default:
		return fmt.Errorf("unknown data_loader type %q", c.DataLoader.Type)
	}
	return nil
}

// CacheTTL returns the loader cache lifetime as a duration.
func (c *DataLoaderConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
