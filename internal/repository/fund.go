package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Bhuvanesh09/mfsim/types"
)

// GetFundBySchemeName retrieves a types.Fund by its full scheme name.
func (db *Database) GetFundBySchemeName(ctx context.Context, schemeName string) (*types.Fund, error) {
	fund, err := db.funds.GetFundBySchemeName(ctx, schemeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("scheme %s %w", schemeName, ErrFundNotFound)
		}
		return nil, err
	}
	return &types.Fund{
		SchemeCode: int(fund.SchemeCode),
		SchemeName: fund.SchemeName,
	}, nil
}
