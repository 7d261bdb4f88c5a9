package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bhuvanesh09/mfsim/internal/navdata"
	"github.com/Bhuvanesh09/mfsim/types"
)

// GetNavSeries retrieves the full NAV history for a scheme. Stored navs
// are decimal and convert to float at this boundary.
func (db *Database) GetNavSeries(ctx context.Context, schemeName string) (*types.NavSeries, error) {
	fund, err := db.funds.GetFundBySchemeName(ctx, schemeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("scheme %s %w", schemeName, ErrFundNotFound)
		}
		return nil, err
	}

	navs, err := db.navs.GetNavHistory(ctx, fund.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoNavs
		}
		return nil, err
	}
	if len(navs) == 0 {
		return nil, ErrNoNavs
	}

	points := make([]types.NavPoint, len(navs))
	for i, row := range navs {
		points[i] = types.NavPoint{
			Date: row.NavDate,
			Nav:  row.Nav.InexactFloat64(),
		}
	}
	return types.NewNavSeries(points), nil
}

// NavLoader adapts the database to the loader shape the rest of the
// tool consumes.
func (db *Database) NavLoader(ctx context.Context) navdata.Loader {
	return &dbLoader{db: db, ctx: ctx}
}

type dbLoader struct {
	db  *Database
	ctx context.Context
}

func (l *dbLoader) LoadNavData(fundName string) (*types.NavSeries, error) {
	return l.db.GetNavSeries(l.ctx, fundName)
}

func (l *dbLoader) ExpenseRatio(string) float64 { return 0 }

func (l *dbLoader) ExitLoad(string) float64 { return 0 }
