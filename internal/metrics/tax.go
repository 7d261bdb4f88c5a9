package metrics

import (
	"math"
	"time"

	"github.com/Bhuvanesh09/mfsim/types"
)

// TaxPolicy describes how capital gains are assessed. Realized gains
// are taxed per fiscal year; short-term losses offset short-term gains
// first and spill into long-term gains, and the long-term exemption
// applies once per year.
type TaxPolicy struct {
	FiscalYearStartMonth time.Month
	LongTermHoldingDays  int
	LongTermRate         float64
	ShortTermRate        float64
	LongTermExemption    float64
}

// DefaultIndiaTaxPolicy is the equity fund regime: April fiscal years,
// one year to long term, 10% over a 1 lakh exemption long term and a
// flat 15% short term.
func DefaultIndiaTaxPolicy() TaxPolicy {
	return TaxPolicy{
		FiscalYearStartMonth: time.April,
		LongTermHoldingDays:  365,
		LongTermRate:         0.10,
		ShortTermRate:        0.15,
		LongTermExemption:    100000,
	}
}

// FiscalYear returns the year the fiscal year containing t started in.
func (p TaxPolicy) FiscalYear(t time.Time) int {
	if t.Month() < p.FiscalYearStartMonth {
		return t.Year() - 1
	}
	return t.Year()
}

// taxOnBuckets settles one assessment period. Net short-term losses
// offset long-term gains before rates apply.
func (p TaxPolicy) taxOnBuckets(shortTerm, longTerm float64) float64 {
	if shortTerm < 0 {
		longTerm += shortTerm
		shortTerm = 0
	}
	var tax float64
	tax += p.ShortTermRate * shortTerm
	if taxable := longTerm - p.LongTermExemption; taxable > 0 {
		tax += p.LongTermRate * taxable
	}
	return tax
}

// RealizedTax assesses recorded gains fiscal year by fiscal year.
func (p TaxPolicy) RealizedTax(gains []types.RealizedGain) float64 {
	type buckets struct{ shortTerm, longTerm float64 }
	byYear := make(map[int]*buckets)
	for _, g := range gains {
		fy := p.FiscalYear(g.SaleDate)
		b := byYear[fy]
		if b == nil {
			b = &buckets{}
			byYear[fy] = b
		}
		if g.LongTerm(p.LongTermHoldingDays) {
			b.longTerm += g.Gain
		} else {
			b.shortTerm += g.Gain
		}
	}
	var total float64
	for _, b := range byYear {
		total += p.taxOnBuckets(b.shortTerm, b.longTerm)
	}
	return total
}

// UnrealizedTax prices a hypothetical liquidation of the open lots at
// the end date. The whole liquidation settles as one assessment.
func (p TaxPolicy) UnrealizedTax(lots []types.Lot, navData map[string]*types.NavSeries, endDate time.Time) float64 {
	var shortTerm, longTerm float64
	for _, lot := range lots {
		nav, ok := navData[lot.FundName].NavOnOrBefore(endDate)
		if !ok {
			continue
		}
		gain := lot.Units * (nav - lot.PurchaseNav)
		holdingDays := int(types.Day(endDate).Sub(lot.PurchaseDate).Hours() / 24)
		if holdingDays >= p.LongTermHoldingDays {
			longTerm += gain
		} else {
			shortTerm += gain
		}
	}
	return p.taxOnBuckets(shortTerm, longTerm)
}

// TaxAwareReturn is the total return after settling realized gains and
// the liability a liquidation at the end date would owe.
type TaxAwareReturn struct {
	Policy TaxPolicy
}

func (TaxAwareReturn) Name() string { return "TaxAwareReturn" }

func (m TaxAwareReturn) Calculate(snap *Snapshot) float64 {
	invested := snap.NetInvested()
	if invested <= 0 {
		return math.NaN()
	}
	policy := m.Policy
	if policy.LongTermHoldingDays == 0 {
		policy = DefaultIndiaTaxPolicy()
	}
	tax := policy.RealizedTax(snap.RealizedGains) +
		policy.UnrealizedTax(snap.OpenLots, snap.NavData, snap.EndDate)
	return (snap.FinalValue()-tax)/invested - 1
}
