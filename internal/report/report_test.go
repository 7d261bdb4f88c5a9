package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhuvanesh09/mfsim/internal/engine"
	"github.com/Bhuvanesh09/mfsim/internal/metrics"
	"github.com/Bhuvanesh09/mfsim/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleResult() *engine.Result {
	return &engine.Result{
		StartDate: day(2022, 1, 3),
		EndDate:   day(2023, 1, 2),
		Transactions: []types.Transaction{
			{FundName: "Fund A", Date: day(2022, 1, 3), Units: 1000, Nav: 10, Amount: 10000},
			{FundName: "Fund A", Date: day(2022, 7, 1), Units: -200, Nav: 12, Amount: -2400},
		},
		RealizedGains: []types.RealizedGain{
			{FundName: "Fund A", Units: 200, PurchaseDate: day(2022, 1, 3), PurchaseNav: 10,
				SaleDate: day(2022, 7, 1), SaleNav: 12, Gain: 400, HoldingDays: 179},
		},
		Holdings:      map[string]float64{"Fund A": 800},
		TotalInvested: 10000,
		StampDutyPaid: 0.5,
		FinalValue:    10400,
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, Summary{
		StrategyName: "fixed_allocation",
		Result:       sampleResult(),
		Metrics: map[string]float64{
			"XIRR":        0.2412,
			"SharpeRatio": math.NaN(),
			"TotalReturn": 0.28,
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "fixed_allocation")
	assert.Contains(t, out, "2022-01-03 to 2023-01-02")
	assert.Contains(t, out, "10000.00")
	assert.Contains(t, out, "Withdrawn       2400.00")
	assert.Contains(t, out, "Stamp duty      0.50")
	assert.Contains(t, out, "XIRR            0.2412")
	assert.Contains(t, out, "SharpeRatio     n/a", "NaN metrics should render as n/a")

	// Metric lines come out sorted by name.
	assert.Less(t, strings.Index(out, "SharpeRatio"), strings.Index(out, "TotalReturn"))
	assert.Less(t, strings.Index(out, "TotalReturn"), strings.Index(out, "XIRR"))
}

func TestWriteTransactionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactionsCSV(&buf, sampleResult().Transactions))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,fund,side,units,nav,amount", lines[0])
	assert.Contains(t, lines[1], "2022-01-03,Fund A,buy")
	assert.Contains(t, lines[2], "2022-07-01,Fund A,sell")
	assert.Contains(t, lines[2], "-2400.00")
}

func TestWriteRealizedGainsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRealizedGainsCSV(&buf, sampleResult().RealizedGains))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "fund,units,purchase_date,purchase_nav,sale_date,sale_nav,gain,holding_days", lines[0])
	assert.Contains(t, lines[1], "Fund A")
	assert.Contains(t, lines[1], "400.00")
	assert.Contains(t, lines[1], "179")
}

func TestWriteTransactionsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, WriteTransactionsCSVFile(path, sampleResult().Transactions))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "date,fund,side")
}

func chartHistory() []metrics.ValuePoint {
	history := make([]metrics.ValuePoint, 30)
	for i := range history {
		history[i] = metrics.ValuePoint{
			Date:  day(2022, 1, 1).AddDate(0, 0, i),
			Value: 10000 + float64(i*37%500),
		}
	}
	return history
}

func TestWriteEquityChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.png")
	require.NoError(t, WriteEquityChart(path, chartHistory()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteDrawdownChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawdown.png")
	require.NoError(t, WriteDrawdownChart(path, chartHistory()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestChartsRejectShortHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equity.png")
	assert.Error(t, WriteEquityChart(path, nil))
	assert.Error(t, WriteDrawdownChart(path, chartHistory()[:1]))
}
