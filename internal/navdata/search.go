package navdata

import (
	"strings"

	"github.com/Bhuvanesh09/mfsim/types"
)

// SearchOptions narrows a fund search to particular plan variants.
type SearchOptions struct {
	GrowthOnly bool
	DirectOnly bool
}

// SearchFunds returns the funds whose names contain every keyword in
// the query, case-insensitively.
func SearchFunds(funds []types.Fund, query string, opts SearchOptions) []types.Fund {
	keywords := strings.Fields(strings.ToUpper(query))
	var results []types.Fund
	for _, fund := range funds {
		name := strings.ToUpper(fund.SchemeName)
		if !containsAll(name, keywords) {
			continue
		}
		if opts.GrowthOnly && !strings.Contains(name, "GROWTH") {
			continue
		}
		if opts.DirectOnly && !strings.Contains(name, "DIRECT") {
			continue
		}
		results = append(results, fund)
	}
	return results
}

func containsAll(name string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(name, kw) {
			return false
		}
	}
	return true
}
