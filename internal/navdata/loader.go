package navdata

import (
	"errors"

	"github.com/Bhuvanesh09/mfsim/types"
)

var UnknownFundErr = errors.New("unknown fund")

// Loader supplies NAV history for funds by name. ExpenseRatio and
// ExitLoad return annualized fractions; sources without that data
// return zero.
type Loader interface {
	LoadNavData(fundName string) (*types.NavSeries, error)
	ExpenseRatio(fundName string) float64
	ExitLoad(fundName string) float64
}

// LoadAll fetches NAV history for every named fund.
func LoadAll(loader Loader, funds []string) (map[string]*types.NavSeries, error) {
	out := make(map[string]*types.NavSeries, len(funds))
	for _, fund := range funds {
		if _, ok := out[fund]; ok {
			continue
		}
		series, err := loader.LoadNavData(fund)
		if err != nil {
			return nil, err
		}
		out[fund] = series
	}
	return out, nil
}
