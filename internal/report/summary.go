package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Bhuvanesh09/mfsim/internal/engine"
)

// Summary bundles everything the run produced for presentation.
type Summary struct {
	StrategyName string
	Result       *engine.Result
	Metrics      map[string]float64
}

// WriteSummary prints the run outcome as a fixed-width text block.
func WriteSummary(w io.Writer, s Summary) error {
	r := s.Result
	lines := []string{
		"==================================================",
		fmt.Sprintf("Strategy        %s", s.StrategyName),
		fmt.Sprintf("Period          %s to %s",
			r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02")),
		fmt.Sprintf("Invested        %s", rupees(r.TotalInvested)),
		fmt.Sprintf("Withdrawn       %s", rupees(withdrawn(r))),
		fmt.Sprintf("Final value     %s", rupees(r.FinalValue)),
		fmt.Sprintf("Stamp duty      %s", rupees(r.StampDutyPaid)),
		fmt.Sprintf("Transactions    %d", len(r.Transactions)),
		fmt.Sprintf("Rebalances      %d", len(r.RebalanceEvents)),
		"--------------------------------------------------",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(s.Metrics))
	for name := range s.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := s.Metrics[name]
		rendered := "n/a"
		if !math.IsNaN(value) {
			rendered = fmt.Sprintf("%.4f", value)
		}
		if _, err := fmt.Fprintf(w, "%-16s%s\n", name, rendered); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "==================================================")
	return err
}

// rupees renders a money amount with two fixed decimals.
func rupees(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func withdrawn(r *engine.Result) float64 {
	var total float64
	for _, tx := range r.Transactions {
		if tx.Amount < 0 {
			total += -tx.Amount
		}
	}
	return total
}
