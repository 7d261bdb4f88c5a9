package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrFundNotFound = errors.New("not found in datasource")
	ErrNoNavs       = errors.New("no nav rows found in datasource")
)

type fundsRepository interface {
	GetFundBySchemeName(ctx context.Context, schemeName string) (fundRow, error)
}
type navsRepository interface {
	GetNavHistory(ctx context.Context, fundID int32) ([]navRow, error)
}

type fundRow struct {
	ID         int32
	SchemeCode int32
	SchemeName string
}

type navRow struct {
	NavDate time.Time
	Nav     decimal.Decimal
}

// Database struct that holds the database connection and queries.
type Database struct {
	funds fundsRepository
	navs  navsRepository
	conn  *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	queries := &pgxQueries{pool: conn}
	return Database{
		funds: queries,
		navs:  queries,
		conn:  conn}, nil
}

// Close releases the connection pool.
func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}

type pgxQueries struct {
	pool *pgxpool.Pool
}

func (q *pgxQueries) GetFundBySchemeName(ctx context.Context, schemeName string) (fundRow, error) {
	var row fundRow
	err := q.pool.QueryRow(ctx,
		`SELECT id, scheme_code, scheme_name FROM funds WHERE scheme_name = $1`,
		schemeName,
	).Scan(&row.ID, &row.SchemeCode, &row.SchemeName)
	return row, err
}

func (q *pgxQueries) GetNavHistory(ctx context.Context, fundID int32) ([]navRow, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT nav_date, nav FROM navs WHERE fund_id = $1 ORDER BY nav_date`,
		fundID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []navRow
	for rows.Next() {
		var row navRow
		if err := rows.Scan(&row.NavDate, &row.Nav); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
