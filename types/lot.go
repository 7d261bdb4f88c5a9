package types

import "time"

// Lot is an open purchase tracked for first-in-first-out cost basis.
type Lot struct {
	ID           string
	FundName     string
	PurchaseDate time.Time
	Units        float64
	PurchaseNav  float64
}

// CostBasis returns the amount paid for the units remaining in the lot.
func (l Lot) CostBasis() float64 {
	return l.Units * l.PurchaseNav
}

// RealizedGain records the outcome of consuming units from a lot on a sale.
type RealizedGain struct {
	LotID        string
	FundName     string
	Units        float64
	PurchaseDate time.Time
	PurchaseNav  float64
	SaleDate     time.Time
	SaleNav      float64
	Gain         float64
	HoldingDays  int
}

// LongTerm reports whether the holding period is at least thresholdDays.
func (g RealizedGain) LongTerm(thresholdDays int) bool {
	return g.HoldingDays >= thresholdDays
}
