package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Bhuvanesh09/mfsim/types"
)

var NoLotsErr = errors.New("no holdings to sell")
var OversellErr = errors.New("sell exceeds available units")

// unitTolerance absorbs float residue when a sale drains a lot.
const unitTolerance = 1e-10

// LotTracker keeps per-fund purchase lots in first-in-first-out order
// and records realized gains as sales consume them.
type LotTracker struct {
	lots      map[string][]*types.Lot
	fundOrder []string
	realized  []types.RealizedGain
}

func NewLotTracker() *LotTracker {
	return &LotTracker{
		lots: make(map[string][]*types.Lot),
	}
}

// Buy opens a new lot for the fund.
func (lt *LotTracker) Buy(fundName string, date time.Time, units, nav float64) *types.Lot {
	if _, ok := lt.lots[fundName]; !ok {
		lt.fundOrder = append(lt.fundOrder, fundName)
	}
	lot := &types.Lot{
		ID:           uuid.NewString()[:8],
		FundName:     fundName,
		PurchaseDate: types.Day(date),
		Units:        units,
		PurchaseNav:  nav,
	}
	lt.lots[fundName] = append(lt.lots[fundName], lot)
	return lot
}

// Sell consumes units from the oldest lots first and returns the gains
// realized against each consumed lot. The sale is atomic: when the fund
// holds fewer units than requested nothing is consumed and the tracker
// is left unchanged.
func (lt *LotTracker) Sell(fundName string, date time.Time, units, nav float64) ([]types.RealizedGain, error) {
	held := lt.GetHoldings(fundName)
	if held <= 0 {
		return nil, fmt.Errorf("%w: fund %q", NoLotsErr, fundName)
	}
	if units > held+unitTolerance {
		return nil, fmt.Errorf("%w: cannot sell %.4f units of %q, only %.4f available", OversellErr, units, fundName, held)
	}

	saleDate := types.Day(date)
	remaining := units
	var gains []types.RealizedGain
	queue := lt.lots[fundName]
	for remaining > unitTolerance && len(queue) > 0 {
		lot := queue[0]
		take := remaining
		if take > lot.Units {
			take = lot.Units
		}
		gains = append(gains, types.RealizedGain{
			LotID:        lot.ID,
			FundName:     fundName,
			Units:        take,
			PurchaseDate: lot.PurchaseDate,
			PurchaseNav:  lot.PurchaseNav,
			SaleDate:     saleDate,
			SaleNav:      nav,
			Gain:         take * (nav - lot.PurchaseNav),
			HoldingDays:  int(saleDate.Sub(lot.PurchaseDate).Hours() / 24),
		})
		lot.Units -= take
		remaining -= take
		if lot.Units <= unitTolerance {
			queue = queue[1:]
		}
	}
	lt.lots[fundName] = queue
	lt.realized = append(lt.realized, gains...)
	return gains, nil
}

// GetHoldings returns the units currently held in a fund.
func (lt *LotTracker) GetHoldings(fundName string) float64 {
	var total float64
	for _, lot := range lt.lots[fundName] {
		total += lot.Units
	}
	return total
}

// GetAllHoldings returns current units per fund, omitting drained funds.
func (lt *LotTracker) GetAllHoldings() map[string]float64 {
	out := make(map[string]float64)
	for fund := range lt.lots {
		if units := lt.GetHoldings(fund); units > unitTolerance {
			out[fund] = units
		}
	}
	return out
}

// GetLots returns copies of the open lots for a fund in purchase order.
func (lt *LotTracker) GetLots(fundName string) []types.Lot {
	out := make([]types.Lot, 0, len(lt.lots[fundName]))
	for _, lot := range lt.lots[fundName] {
		out = append(out, *lot)
	}
	return out
}

// GetAllLots returns copies of every open lot ordered by fund then purchase.
func (lt *LotTracker) GetAllLots() []types.Lot {
	funds := make([]string, len(lt.fundOrder))
	copy(funds, lt.fundOrder)
	sort.Strings(funds)
	var out []types.Lot
	for _, fund := range funds {
		out = append(out, lt.GetLots(fund)...)
	}
	return out
}

// RealizedGains returns every gain recorded so far in sale order.
func (lt *LotTracker) RealizedGains() []types.RealizedGain {
	out := make([]types.RealizedGain, len(lt.realized))
	copy(out, lt.realized)
	return out
}
