package rates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/bankcaps/provider/currencies"
	"github.com/sig-0/bankcaps/storage/types"
)

func TestTable_Rate(t *testing.T) {
	t.Parallel()

	t.Run("present rate", func(t *testing.T) {
		t.Parallel()

		table, err := NewTable(map[types.Currency]float64{
			currencies.GBP: 0.8,
		})
		require.NoError(t, err)

		rate, err := table.Rate(currencies.GBP)
		require.NoError(t, err)

		assert.Equal(t, 0.8, rate)
	})

	t.Run("missing rate", func(t *testing.T) {
		t.Parallel()

		table, err := NewTable(nil)
		require.NoError(t, err)

		_, err = table.Rate(currencies.INR)

		assert.ErrorIs(t, err, ErrMissingRate)

		var missingErr *MissingRateError

		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, currencies.INR, missingErr.Currency)
	})

	t.Run("copied input", func(t *testing.T) {
		t.Parallel()

		input := map[types.Currency]float64{
			currencies.EUR: 0.93,
		}

		table, err := NewTable(input)
		require.NoError(t, err)

		input[currencies.EUR] = 5

		rate, err := table.Rate(currencies.EUR)
		require.NoError(t, err)

		assert.Equal(t, 0.93, rate)
	})

	t.Run("invalid rates", func(t *testing.T) {
		t.Parallel()

		for _, rate := range []float64{0, -1} {
			_, err := NewTable(map[types.Currency]float64{
				currencies.EUR: rate,
			})

			assert.ErrorIs(t, err, ErrInvalidRate)
		}
	})

	t.Run("empty currency", func(t *testing.T) {
		t.Parallel()

		_, err := NewTable(map[types.Currency]float64{
			" ": 1,
		})

		assert.ErrorIs(t, err, ErrInvalidCurrency)
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		content := "Currency,Rate\nEUR,0.93\nGBP,0.8\nINR,82.95\n"

		table, err := Read(strings.NewReader(content))
		require.NoError(t, err)

		assert.Equal(t, 3, table.Len())

		rate, err := table.Rate(currencies.INR)
		require.NoError(t, err)

		assert.Equal(t, 82.95, rate)
	})

	t.Run("swapped columns", func(t *testing.T) {
		t.Parallel()

		table, err := Read(strings.NewReader("Rate,Currency\n0.8,gbp\n"))
		require.NoError(t, err)

		rate, err := table.Rate(currencies.GBP)
		require.NoError(t, err)

		assert.Equal(t, 0.8, rate)
	})

	t.Run("invalid header", func(t *testing.T) {
		t.Parallel()

		_, err := Read(strings.NewReader("Code,Value\nEUR,0.93\n"))

		assert.ErrorIs(t, err, ErrInvalidHeader)
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		_, err := Read(strings.NewReader(""))

		assert.Error(t, err)
	})

	t.Run("non-numeric rate", func(t *testing.T) {
		t.Parallel()

		_, err := Read(strings.NewReader("Currency,Rate\nEUR,abc\n"))

		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "exchange_rate.csv"))

		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file on disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "exchange_rate.csv")
		require.NoError(t, os.WriteFile(path, []byte("Currency,Rate\nGBP,0.8\n"), 0o600))

		table, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 1, table.Len())
	})
}
