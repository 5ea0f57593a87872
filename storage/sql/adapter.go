package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sig-0/bankcaps/storage/types"
)

// DefaultTableName is the table the bank records are loaded into
const DefaultTableName = "Largest_banks"

var ErrInvalidTableName = errors.New("invalid table name")

var tableNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Storage struct {
	db      *sql.DB
	dialect Dialect
}

func NewStorage(db *sql.DB, dialect Dialect) *Storage {
	return &Storage{
		db:      db,
		dialect: dialect,
	}
}

// SaveBanks drops and recreates the table, then inserts all records.
// Everything runs in a single transaction
func (s *Storage) SaveBanks(
	ctx context.Context,
	table string,
	banks []*types.EnrichedBank,
) (err error) {
	if !tableNameRegex.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("unable to drop table %s: %w", table, err)
	}

	if _, err = tx.ExecContext(ctx, createTableStatement(table)); err != nil {
		return fmt.Errorf("unable to create table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.insertStatement(table))
	if err != nil {
		return fmt.Errorf("unable to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, bank := range banks {
		if _, err = stmt.ExecContext(
			ctx,
			bank.Name,
			bank.MarketCapUSD,
			bank.MarketCapGBP,
			bank.MarketCapEUR,
			bank.MarketCapINR,
		); err != nil {
			return fmt.Errorf("unable to insert bank %q: %w", bank.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("unable to commit transaction: %w", err)
	}

	return nil
}

func (s *Storage) ListBanks(ctx context.Context, table string) ([]*types.EnrichedBank, error) {
	if !tableNameRegex.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s",
		strings.Join(types.Columns, ", "),
		table,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch banks: %w", err)
	}
	defer rows.Close()

	out := make([]*types.EnrichedBank, 0)

	for rows.Next() {
		var bank types.EnrichedBank

		if err = rows.Scan(
			&bank.Name,
			&bank.MarketCapUSD,
			&bank.MarketCapGBP,
			&bank.MarketCapEUR,
			&bank.MarketCapINR,
		); err != nil {
			return nil, fmt.Errorf("unable to scan bank: %w", err)
		}

		out = append(out, &bank)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to iterate banks: %w", err)
	}

	return out, nil
}

func (s *Storage) Query(ctx context.Context, query string) (*types.Table, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unable to run query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch columns: %w", err)
	}

	table := &types.Table{
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	for rows.Next() {
		var (
			values = make([]any, len(columns))
			ptrs   = make([]any, len(columns))
		)

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err = rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("unable to scan row: %w", err)
		}

		for i, v := range values {
			// Some drivers hand out text as raw bytes
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}

		table.Rows = append(table.Rows, values)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unable to iterate rows: %w", err)
	}

	return table, nil
}

func createTableStatement(table string) string {
	return fmt.Sprintf(
		"CREATE TABLE %s (%s TEXT, %s DOUBLE PRECISION, %s DOUBLE PRECISION, %s DOUBLE PRECISION, %s DOUBLE PRECISION)",
		table,
		types.ColumnName,
		types.ColumnUSD,
		types.ColumnGBP,
		types.ColumnEUR,
		types.ColumnINR,
	)
}

func (s *Storage) insertStatement(table string) string {
	placeholders := make([]string, 0, len(types.Columns))

	for i := range types.Columns {
		placeholders = append(placeholders, s.dialect.Placeholder(i+1))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(types.Columns, ", "),
		strings.Join(placeholders, ", "),
	)
}
