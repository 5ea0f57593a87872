package sql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/bankcaps/storage/types"
)

// newTestStorage opens an in-memory SQLite storage
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	db, dialect, err := Open(context.Background(), SQLite.Driver, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewStorage(db, dialect)
}

func testBanks() []*types.EnrichedBank {
	names := []string{"A", "B", "C", "D", "E", "F"}
	out := make([]*types.EnrichedBank, 0, len(names))

	for i, name := range names {
		usd := float64(100 * (len(names) - i))

		out = append(out, &types.EnrichedBank{
			Bank: types.Bank{
				Name:         "Bank " + name,
				MarketCapUSD: usd,
			},
			MarketCapGBP: usd * 0.8,
			MarketCapEUR: usd * 0.5,
			MarketCapINR: usd * 82,
		})
	}

	return out
}

func TestStorage_SaveBanks(t *testing.T) {
	t.Parallel()

	t.Run("invalid table name", func(t *testing.T) {
		t.Parallel()

		s := newTestStorage(t)

		err := s.SaveBanks(context.Background(), "banks; DROP TABLE x", testBanks())

		assert.ErrorIs(t, err, ErrInvalidTableName)
	})

	t.Run("saved and listed", func(t *testing.T) {
		t.Parallel()

		var (
			ctx   = context.Background()
			s     = newTestStorage(t)
			banks = testBanks()
		)

		require.NoError(t, s.SaveBanks(ctx, DefaultTableName, banks))

		listed, err := s.ListBanks(ctx, DefaultTableName)
		require.NoError(t, err)

		assert.Equal(t, banks, listed)
	})

	t.Run("table replaced", func(t *testing.T) {
		t.Parallel()

		var (
			ctx   = context.Background()
			s     = newTestStorage(t)
			banks = testBanks()
		)

		require.NoError(t, s.SaveBanks(ctx, DefaultTableName, banks))
		require.NoError(t, s.SaveBanks(ctx, DefaultTableName, banks[:2]))

		listed, err := s.ListBanks(ctx, DefaultTableName)
		require.NoError(t, err)

		assert.Equal(t, banks[:2], listed)
	})

	t.Run("empty record set", func(t *testing.T) {
		t.Parallel()

		var (
			ctx = context.Background()
			s   = newTestStorage(t)
		)

		require.NoError(t, s.SaveBanks(ctx, DefaultTableName, nil))

		listed, err := s.ListBanks(ctx, DefaultTableName)
		require.NoError(t, err)

		assert.Empty(t, listed)
	})
}

func TestStorage_Query(t *testing.T) {
	t.Parallel()

	var (
		ctx = context.Background()
		s   = newTestStorage(t)
	)

	require.NoError(t, s.SaveBanks(ctx, DefaultTableName, testBanks()))

	queries, err := FixedQueries()
	require.NoError(t, err)
	require.Len(t, queries, 3)

	t.Run("all banks", func(t *testing.T) {
		t.Parallel()

		table, err := s.Query(ctx, queries[0].Statement)
		require.NoError(t, err)

		assert.Equal(t, types.Columns, table.Columns)
		require.Len(t, table.Rows, 6)
		assert.Equal(t, "Bank A", table.Rows[0][0])
		assert.Equal(t, 600.0, table.Rows[0][1])
	})

	t.Run("average GBP", func(t *testing.T) {
		t.Parallel()

		table, err := s.Query(ctx, queries[1].Statement)
		require.NoError(t, err)

		assert.Equal(t, []string{"Average_MC_GBP_Billion"}, table.Columns)
		require.Len(t, table.Rows, 1)
		assert.InDelta(t, 280.0, table.Rows[0][0], 1e-9)
	})

	t.Run("top names", func(t *testing.T) {
		t.Parallel()

		table, err := s.Query(ctx, queries[2].Statement)
		require.NoError(t, err)

		assert.Equal(t, []string{"Name"}, table.Columns)
		require.Len(t, table.Rows, 5)

		for i, name := range []string{"A", "B", "C", "D", "E"} {
			assert.Equal(t, "Bank "+name, table.Rows[i][0])
		}
	})

	t.Run("invalid query", func(t *testing.T) {
		t.Parallel()

		_, err := s.Query(ctx, "SELECT * FROM missing_table")

		assert.Error(t, err)
	})
}

func TestFixedQueries(t *testing.T) {
	t.Parallel()

	queries, err := FixedQueries()
	require.NoError(t, err)

	assert.Equal(
		t,
		[]Query{
			{
				Name:      "01_all_banks",
				Statement: "SELECT * FROM Largest_banks",
			},
			{
				Name:      "02_average_gbp",
				Statement: "SELECT AVG(MC_GBP_Billion) AS Average_MC_GBP_Billion FROM Largest_banks",
			},
			{
				Name:      "03_top_names",
				Statement: "SELECT Name FROM Largest_banks LIMIT 5",
			},
		},
		queries,
	)
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		_, err := DialectFor("oracle")

		assert.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("placeholders", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "?", SQLite.Placeholder(3))
		assert.Equal(t, "$3", Postgres.Placeholder(3))
	})
}
