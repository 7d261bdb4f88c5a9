package navdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Bhuvanesh09/mfsim/types"
)

// Matches: "INDEX NAME_Historical_PR_..." or "INDEX NAME_Historical_TRI_...",
// the naming NSE uses for its historical index downloads.
var nseFilenameRe = regexp.MustCompile(`(?i)^(.+?)_Historical_(PR|TRI)_.*\.csv$`)

// nseDateLayouts covers the date spellings seen across NSE downloads.
var nseDateLayouts = []string{"02-01-2006", "02 Jan 2006", "02-Jan-2006"}

// NSECSVLoader serves index NAV history from locally downloaded NSE
// CSV files. When both a Price Return and a Total Return Index file
// exist for the same index, the total return file wins since it
// includes dividend reinvestment.
type NSECSVLoader struct {
	files map[string]string
}

func NewNSECSVLoader(dataDir string) (*NSECSVLoader, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("scanning nse csv directory: %w", err)
	}
	files := make(map[string]string)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		m := nseFilenameRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		index := strings.TrimSpace(m[1])
		kind := strings.ToUpper(m[2])
		// TRI replaces PR for the same index; PR never displaces anything.
		if _, seen := files[index]; seen && kind != "TRI" {
			continue
		}
		files[index] = filepath.Join(dataDir, name)
	}
	return &NSECSVLoader{files: files}, nil
}

// ListAvailable returns the index names with a loaded CSV, sorted.
func (l *NSECSVLoader) ListAvailable() []string {
	out := make([]string, 0, len(l.files))
	for name := range l.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (l *NSECSVLoader) LoadNavData(fundName string) (*types.NavSeries, error) {
	path, ok := l.files[fundName]
	if !ok {
		return nil, fmt.Errorf("%w: no NSE csv for %q, available: %v", UnknownFundErr, fundName, l.ListAvailable())
	}
	return parseNSECSV(path)
}

func (l *NSECSVLoader) ExpenseRatio(string) float64 { return 0 }

func (l *NSECSVLoader) ExitLoad(string) float64 { return 0 }

func parseNSECSV(path string) (*types.NavSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	dateCol, navCol := -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "date":
			dateCol = i
		case "close", "closing index value":
			navCol = i
		}
	}
	if dateCol < 0 || navCol < 0 {
		return nil, fmt.Errorf("%s is missing date/close columns, got %v", path, records[0])
	}

	var points []types.NavPoint
	for _, row := range records[1:] {
		if len(row) <= dateCol || len(row) <= navCol {
			continue
		}
		date, ok := parseNSEDate(strings.TrimSpace(row[dateCol]))
		if !ok {
			continue
		}
		navStr := strings.ReplaceAll(strings.TrimSpace(row[navCol]), ",", "")
		nav, err := strconv.ParseFloat(navStr, 64)
		if err != nil {
			continue
		}
		points = append(points, types.NavPoint{Date: date, Nav: nav})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s has no parseable rows", path)
	}
	return types.NewNavSeries(points), nil
}

func parseNSEDate(s string) (time.Time, bool) {
	for _, layout := range nseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
