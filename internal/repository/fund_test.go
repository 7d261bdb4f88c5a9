package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type mockFundsRepository struct {
	sqlError error
}

func (m mockFundsRepository) GetFundBySchemeName(_ context.Context, schemeName string) (fundRow, error) {
	if m.sqlError != nil {
		return fundRow{}, m.sqlError
	}
	return fundRow{ID: 1, SchemeCode: 120828, SchemeName: schemeName}, nil
}

func TestDatabase_GetFundBySchemeName(t *testing.T) {
	type args struct {
		schemeName string
	}
	tests := []struct {
		name    string
		args    args
		sqlErr  error
		wantErr error
	}{
		{"should throw ErrFundNotFound", args{"Fund A"}, pgx.ErrNoRows, ErrFundNotFound},
		{"should return fund", args{"Fund A"}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &Database{
				funds: mockFundsRepository{
					sqlError: tt.sqlErr,
				},
			}
			got, err := db.GetFundBySchemeName(context.Background(), tt.args.schemeName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetFundBySchemeName() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetFundBySchemeName() unexpected error = %v", err)
			}
			if got.SchemeName != tt.args.schemeName {
				t.Errorf("GetFundBySchemeName() name = %v, want %v", got.SchemeName, tt.args.schemeName)
			}
			if got.SchemeCode != 120828 {
				t.Errorf("GetFundBySchemeName() code = %v, want 120828", got.SchemeCode)
			}
		})
	}
}

func TestDatabase_GetFundBySchemeNamePassesThroughErrors(t *testing.T) {
	dbErr := errors.New("connection reset")
	db := &Database{funds: mockFundsRepository{sqlError: dbErr}}
	_, err := db.GetFundBySchemeName(context.Background(), "Fund A")
	if !errors.Is(err, dbErr) {
		t.Errorf("GetFundBySchemeName() error = %v, want %v", err, dbErr)
	}
}
