package types

import "time"

// Transaction is an executed buy or sell. Units and Amount are signed:
// positive for buys, negative for sells. Amount is net of levies.
type Transaction struct {
	FundName string
	Date     time.Time
	Units    float64
	Nav      float64
	Amount   float64
}

// IsBuy reports whether the transaction added units.
func (t Transaction) IsBuy() bool {
	return t.Units > 0
}
