package report

import (
	"fmt"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/Bhuvanesh09/mfsim/internal/metrics"
)

// WriteEquityChart renders the daily portfolio value as a PNG.
func WriteEquityChart(path string, history []metrics.ValuePoint) error {
	if len(history) < 2 {
		return fmt.Errorf("need at least two value points to chart, got %d", len(history))
	}
	dates, values := splitHistory(history)
	graph := chart.Chart{
		Title: "Portfolio Value",
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "value",
				XValues: dates,
				YValues: values,
			},
		},
	}
	return renderPNG(path, graph)
}

// WriteDrawdownChart renders the running drawdown from the peak as a PNG.
func WriteDrawdownChart(path string, history []metrics.ValuePoint) error {
	if len(history) < 2 {
		return fmt.Errorf("need at least two value points to chart, got %d", len(history))
	}
	dates, values := splitHistory(history)
	drawdowns := make([]float64, len(values))
	peak := values[0]
	for i, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			drawdowns[i] = v/peak - 1
		}
	}
	graph := chart.Chart{
		Title: "Drawdown",
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "drawdown",
				XValues: dates,
				YValues: drawdowns,
			},
		},
	}
	return renderPNG(path, graph)
}

func splitHistory(history []metrics.ValuePoint) ([]time.Time, []float64) {
	dates := make([]time.Time, len(history))
	values := make([]float64, len(history))
	for i, p := range history {
		dates[i] = p.Date
		values[i] = p.Value
	}
	return dates, values
}

func renderPNG(path string, graph chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
