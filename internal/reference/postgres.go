package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// DBTX is the query surface needed to load reference data.
// Satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
}

// Tables names the PostgreSQL tables that hold reference data.
// The states table has columns (name, code); the zips table (state_code, zip).
type Tables struct {
	States string
	Zips   string
}

type stateRow struct {
	Name string
	Code string
}

type zipRow struct {
	StateCode string
	Zip       string
}

// quoteTable quotes a possibly schema-qualified table name.
func quoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func statesQuery(table string) string {
	return fmt.Sprintf("SELECT name, code FROM %s ORDER BY code", quoteTable(table))
}

func zipsQuery(table string) string {
	return fmt.Sprintf("SELECT state_code, zip FROM %s ORDER BY state_code, zip", quoteTable(table))
}

// LoadFromDatabase reads both directories from PostgreSQL.
func LoadFromDatabase(ctx context.Context, db DBTX, tables Tables) (*StateDirectory, *ZipDirectory, error) {
	rows, err := db.Query(ctx, statesQuery(tables.States))
	if err != nil {
		return nil, nil, fmt.Errorf("query states: %w", err)
	}
	stateRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[stateRow])
	if err != nil {
		return nil, nil, fmt.Errorf("scan states: %w", err)
	}

	names := make(map[string]string, len(stateRows))
	for _, r := range stateRows {
		if _, exists := names[r.Name]; exists {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateState, r.Name)
		}
		names[r.Name] = r.Code
	}
	states, err := NewStateDirectory(names)
	if err != nil {
		return nil, nil, err
	}

	rows, err = db.Query(ctx, zipsQuery(tables.Zips))
	if err != nil {
		return nil, nil, fmt.Errorf("query zips: %w", err)
	}
	zipRows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[zipRow])
	if err != nil {
		return nil, nil, fmt.Errorf("scan zips: %w", err)
	}

	zipsByState := make(ZipsFile)
	for _, r := range zipRows {
		zipsByState[r.StateCode] = append(zipsByState[r.StateCode], r.Zip)
	}
	zips, err := NewZipDirectory(zipsByState, states)
	if err != nil {
		return nil, nil, err
	}

	return states, zips, nil
}
