package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Bhuvanesh09/mfsim/types"
)

// WriteTransactionsCSVFile writes the transaction log to a CSV file at
// the given path.
func WriteTransactionsCSVFile(path string, transactions []types.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create transactions file: %w", err)
	}
	defer f.Close()

	return WriteTransactionsCSV(f, transactions)
}

// WriteTransactionsCSV writes transactions to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func WriteTransactionsCSV(w io.Writer, transactions []types.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date",
		"fund",
		"side", // "buy" or "sell"
		"units",
		"nav",
		"amount",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, tx := range transactions {
		side := "sell"
		if tx.IsBuy() {
			side = "buy"
		}
		record := []string{
			tx.Date.Format("2006-01-02"),
			tx.FundName,
			side,
			strconv.FormatFloat(tx.Units, 'f', 6, 64),
			strconv.FormatFloat(tx.Nav, 'f', 4, 64),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteRealizedGainsCSVFile writes realized gains to a CSV file at the
// given path.
func WriteRealizedGainsCSVFile(path string, gains []types.RealizedGain) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gains file: %w", err)
	}
	defer f.Close()

	return WriteRealizedGainsCSV(f, gains)
}

// WriteRealizedGainsCSV writes realized gains to any io.Writer as CSV.
func WriteRealizedGainsCSV(w io.Writer, gains []types.RealizedGain) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"fund",
		"units",
		"purchase_date",
		"purchase_nav",
		"sale_date",
		"sale_nav",
		"gain",
		"holding_days",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range gains {
		record := []string{
			g.FundName,
			strconv.FormatFloat(g.Units, 'f', 6, 64),
			g.PurchaseDate.Format("2006-01-02"),
			strconv.FormatFloat(g.PurchaseNav, 'f', 4, 64),
			g.SaleDate.Format("2006-01-02"),
			strconv.FormatFloat(g.SaleNav, 'f', 4, 64),
			strconv.FormatFloat(g.Gain, 'f', 2, 64),
			strconv.Itoa(g.HoldingDays),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
