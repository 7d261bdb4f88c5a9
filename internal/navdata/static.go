package navdata

import (
	"fmt"

	"github.com/Bhuvanesh09/mfsim/types"
)

// StaticLoader serves NAV series from memory.
type StaticLoader struct {
	Series        map[string]*types.NavSeries
	ExpenseRatios map[string]float64
	ExitLoads     map[string]float64
}

func NewStaticLoader(series map[string]*types.NavSeries) *StaticLoader {
	return &StaticLoader{Series: series}
}

func (l *StaticLoader) LoadNavData(fundName string) (*types.NavSeries, error) {
	series, ok := l.Series[fundName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", UnknownFundErr, fundName)
	}
	return series, nil
}

func (l *StaticLoader) ExpenseRatio(fundName string) float64 {
	return l.ExpenseRatios[fundName]
}

func (l *StaticLoader) ExitLoad(fundName string) float64 {
	return l.ExitLoads[fundName]
}
