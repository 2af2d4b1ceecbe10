package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
)

func TestComputeWage(t *testing.T) {
	cases := []struct {
		name      string
		dailyWage string
		status    attendance.Status
		want      string
	}{
		{"present gets full wage", "500", attendance.StatusPresent, "500"},
		{"half-day gets half wage", "500", attendance.StatusHalfDay, "250"},
		{"absent gets zero", "500", attendance.StatusAbsent, "0"},
		{"voided gets zero", "500", attendance.StatusVoided, "0"},
		{"odd wage halves exactly", "501", attendance.StatusHalfDay, "250.5"},
		{"paise wage halves exactly", "333.33", attendance.StatusHalfDay, "166.665"},
		{"zero wage stays zero", "0", attendance.StatusPresent, "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wage, err := decimal.NewFromString(c.dailyWage)
			require.NoError(t, err)

			got, err := ComputeWage(wage, c.status)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
				"ComputeWage(%s, %s) = %s, want %s", c.dailyWage, c.status, got, c.want)
		})
	}
}

func TestComputeWage_InvalidStatus(t *testing.T) {
	_, err := ComputeWage(decimal.NewFromInt(500), attendance.Status("overtime"))
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
}

// Halving then doubling must reproduce the original wage for any amount
// with paise precision. Binary floats fail this for values like 0.1.
func TestComputeWage_HalfDayRoundTrip(t *testing.T) {
	for _, raw := range []string{"0.01", "0.1", "1", "99.99", "123.45", "100000"} {
		wage := decimal.RequireFromString(raw)
		half, err := ComputeWage(wage, attendance.StatusHalfDay)
		require.NoError(t, err)
		assert.True(t, half.Mul(decimal.NewFromInt(2)).Equal(wage),
			"2 * half(%s) = %s, want %s", raw, half.Mul(decimal.NewFromInt(2)), raw)
	}
}
