package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("  ")
	assert.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("2024-01-02")
	assert.NoError(t, err)
	assert.NotNil(t, d)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int64
	}{
		{"same day", "2024-01-01", "2024-01-01", 1},
		{"two days inclusive", "2024-01-01", "2024-01-02", 2},
		{"three days inclusive", "2024-01-01", "2024-01-03", 3},
		{"five days", "2024-03-01", "2024-03-05", 5},
		{"across leap day", "2024-02-28", "2024-03-01", 3},
		{"across year", "2023-12-31", "2024-01-01", 2},
		{"reversed range uses absolute difference", "2024-01-03", "2024-01-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(*mustDate(t, tt.start), *mustDate(t, tt.end)))
		})
	}
}

func TestRentalDays_PartialDayRoundsUp(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(3), RentalDays(start, end))
}

func TestCalculateQuote(t *testing.T) {
	t.Run("three days at 2.5M", func(t *testing.T) {
		q := CalculateQuote(mustDate(t, "2024-01-01"), mustDate(t, "2024-01-03"), 2_500_000)
		assert.Equal(t, Quote{Days: 3, TotalAmount: 7_500_000}, q)
	})

	t.Run("five days at 3M", func(t *testing.T) {
		q := CalculateQuote(mustDate(t, "2024-03-01"), mustDate(t, "2024-03-05"), 3_000_000)
		assert.Equal(t, int64(5), q.Days)
		assert.Equal(t, int64(15_000_000), q.TotalAmount)
	})

	t.Run("same day is one day", func(t *testing.T) {
		q := CalculateQuote(mustDate(t, "2024-06-10"), mustDate(t, "2024-06-10"), 1_000)
		assert.Equal(t, Quote{Days: 1, TotalAmount: 1_000}, q)
	})

	t.Run("missing start", func(t *testing.T) {
		assert.Equal(t, Quote{}, CalculateQuote(nil, mustDate(t, "2024-01-03"), 2_500_000))
	})

	t.Run("missing end", func(t *testing.T) {
		assert.Equal(t, Quote{}, CalculateQuote(mustDate(t, "2024-01-03"), nil, 2_500_000))
	})
}

func TestPaymentDueAt(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), PaymentDueAt(created, 24*time.Hour))
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 59, 0, 0, time.FixedZone("WIB", 7*3600))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Today(now))
}
