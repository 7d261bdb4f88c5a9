package navdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Bhuvanesh09/mfsim/types"
)

const defaultMfAPIBaseURL = "https://api.mfapi.in"

// navDateLayout is the DD-MM-YYYY format mfapi.in publishes.
const navDateLayout = "02-01-2006"

// LoadSchemeList reads an AMFI scheme catalog from a JSON file of
// {schemeCode, schemeName} records.
func LoadSchemeList(path string) ([]types.Fund, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scheme list: %w", err)
	}
	var funds []types.Fund
	if err := json.Unmarshal(raw, &funds); err != nil {
		return nil, fmt.Errorf("parsing scheme list %s: %w", path, err)
	}
	return funds, nil
}

// MfAPIOptions tunes the HTTP loader. Zero values fall back to the
// public endpoint, a 30 second client, no cache and a nop logger.
type MfAPIOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      *NavCache
	Logger     *zap.Logger
}

// MfAPILoader fetches fund NAV history from api.mfapi.in, resolving
// fund names to scheme codes through an AMFI scheme catalog.
type MfAPILoader struct {
	codes  map[string]int
	base   string
	client *http.Client
	cache  *NavCache
	logger *zap.Logger
}

func NewMfAPILoader(funds []types.Fund, opts MfAPIOptions) *MfAPILoader {
	codes := make(map[string]int, len(funds))
	for _, f := range funds {
		codes[f.SchemeName] = f.SchemeCode
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultMfAPIBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &MfAPILoader{
		codes:  codes,
		base:   opts.BaseURL,
		client: opts.HTTPClient,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

func (l *MfAPILoader) LoadNavData(fundName string) (*types.NavSeries, error) {
	code, ok := l.codes[fundName]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in scheme list", UnknownFundErr, fundName)
	}

	if l.cache != nil {
		if series, ok := l.cache.Get(code); ok {
			l.logger.Debug("nav cache hit", zap.String("fund", fundName), zap.Int("scheme_code", code))
			return series, nil
		}
	}

	series, err := l.fetch(code)
	if err != nil {
		return nil, fmt.Errorf("loading nav data for %q: %w", fundName, err)
	}
	l.logger.Info("fetched nav data",
		zap.String("fund", fundName),
		zap.Int("scheme_code", code),
		zap.Int("points", series.Len()))

	if l.cache != nil {
		if err := l.cache.Put(code, series); err != nil {
			l.logger.Warn("nav cache write failed", zap.Int("scheme_code", code), zap.Error(err))
		}
	}
	return series, nil
}

func (l *MfAPILoader) fetch(schemeCode int) (*types.NavSeries, error) {
	url := fmt.Sprintf("%s/mf/%d", l.base, schemeCode)
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	var payload struct {
		Data []struct {
			Date string `json:"date"`
			Nav  string `json:"nav"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", url, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("scheme %d has no nav history", schemeCode)
	}

	points := make([]types.NavPoint, 0, len(payload.Data))
	for _, row := range payload.Data {
		date, err := time.Parse(navDateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("bad nav date %q: %w", row.Date, err)
		}
		nav, err := strconv.ParseFloat(row.Nav, 64)
		if err != nil {
			return nil, fmt.Errorf("bad nav value %q on %s: %w", row.Nav, row.Date, err)
		}
		points = append(points, types.NavPoint{Date: date, Nav: nav})
	}
	return types.NewNavSeries(points), nil
}

// ExpenseRatio is not published by the API.
func (l *MfAPILoader) ExpenseRatio(string) float64 { return 0 }

// ExitLoad is not published by the API.
func (l *MfAPILoader) ExitLoad(string) float64 { return 0 }
