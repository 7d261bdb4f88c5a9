package navdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bhuvanesh09/mfsim/types"
)

var searchCatalog = []types.Fund{
	{SchemeCode: 1, SchemeName: "Nippon India Nifty 50 Value 20 Index Fund - Direct Plan - Growth"},
	{SchemeCode: 2, SchemeName: "Nippon India Nifty 50 Value 20 Index Fund - Regular Plan - IDCW"},
	{SchemeCode: 3, SchemeName: "UTI Nifty 200 Momentum 30 Index Fund - Direct Plan - Growth"},
	{SchemeCode: 4, SchemeName: "HDFC Liquid Fund - Growth"},
}

func TestSearchFundsMatchesAllKeywords(t *testing.T) {
	got := SearchFunds(searchCatalog, "nifty value", SearchOptions{})
	assert.Len(t, got, 2)

	got = SearchFunds(searchCatalog, "nifty momentum", SearchOptions{})
	assert.Len(t, got, 1)
	assert.Equal(t, 3, got[0].SchemeCode)
}

func TestSearchFundsFilters(t *testing.T) {
	got := SearchFunds(searchCatalog, "nifty value", SearchOptions{DirectOnly: true})
	assert.Len(t, got, 1)
	assert.Equal(t, 1, got[0].SchemeCode)

	got = SearchFunds(searchCatalog, "fund", SearchOptions{GrowthOnly: true, DirectOnly: true})
	assert.Len(t, got, 2)
}

func TestSearchFundsNoMatch(t *testing.T) {
	assert.Empty(t, SearchFunds(searchCatalog, "smallcap quant", SearchOptions{}))
}

func TestStaticLoader(t *testing.T) {
	loader := NewStaticLoader(map[string]*types.NavSeries{
		"Fund A": types.NewNavSeries(nil),
	})
	_, err := loader.LoadNavData("Fund A")
	assert.NoError(t, err)
	_, err = loader.LoadNavData("Fund B")
	assert.ErrorIs(t, err, UnknownFundErr)
	assert.Zero(t, loader.ExpenseRatio("Fund A"))
	assert.Zero(t, loader.ExitLoad("Fund A"))
}
