package metrics

import (
	"errors"
	"fmt"
	"strings"
)

var UnknownMetricErr = errors.New("unknown metric")
var MissingBenchmarkErr = errors.New("metric needs a benchmark fund")

// Lookup resolves a metric by name, ignoring case and spacing, so both
// "XIRR" and "Sharpe Ratio" style spellings work. Relative metrics fail
// when no benchmark fund is configured.
func Lookup(name, benchmarkFund string) (Metric, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
	switch key {
	case "totalreturn":
		return TotalReturn{}, nil
	case "xirr":
		return XIRR{}, nil
	case "sharperatio", "sharpe":
		return SharpeRatio{}, nil
	case "sortinoratio", "sortino":
		return SortinoRatio{}, nil
	case "maximumdrawdown", "maxdrawdown":
		return MaximumDrawdown{}, nil
	case "taxawarereturn":
		return TaxAwareReturn{Policy: DefaultIndiaTaxPolicy()}, nil
	case "alpha":
		if benchmarkFund == "" {
			return nil, fmt.Errorf("%w: %s", MissingBenchmarkErr, name)
		}
		return Alpha{BenchmarkFund: benchmarkFund}, nil
	case "trackingerror":
		if benchmarkFund == "" {
			return nil, fmt.Errorf("%w: %s", MissingBenchmarkErr, name)
		}
		return TrackingError{BenchmarkFund: benchmarkFund}, nil
	case "informationratio":
		if benchmarkFund == "" {
			return nil, fmt.Errorf("%w: %s", MissingBenchmarkErr, name)
		}
		return InformationRatio{BenchmarkFund: benchmarkFund}, nil
	}
	return nil, fmt.Errorf("%w: %q", UnknownMetricErr, name)
}

// Compute resolves and calculates each named metric, keyed by canonical
// metric name.
func Compute(names []string, benchmarkFund string, snap *Snapshot) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	for _, name := range names {
		metric, err := Lookup(name, benchmarkFund)
		if err != nil {
			return nil, err
		}
		out[metric.Name()] = metric.Calculate(snap)
	}
	return out, nil
}
