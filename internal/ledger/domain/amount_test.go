package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aussiebroadwan/ledger/internal/ledger/domain"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		minor int64
	}{
		{"integer", "500", "500.00", 50000},
		{"one decimal", "12.5", "12.50", 1250},
		{"rounds half up", "0.005", "0.01", 1},
		{"rounds down", "19.994", "19.99", 1999},
		{"quoted", `"42.10"`, "42.10", 4210},
		{"padded", "  7 ", "7.00", 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := domain.ParseAmount(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, a.String())
			require.Equal(t, tt.minor, a.Minor())
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		for _, in := range []string{"", "abc", "12,50", `""`, "NaN"} {
			_, err := domain.ParseAmount(in)
			require.ErrorIs(t, err, domain.ErrInvalidAmount, in)
		}
	})
}

func TestParseAmountBounds(t *testing.T) {
	top, err := domain.ParseAmount("1000000000000")
	require.NoError(t, err)
	require.Equal(t, int64(100000000000000), top.Minor())

	_, err = domain.ParseAmount("999999999999.99")
	require.NoError(t, err)

	for _, in := range []string{
		"1000000000000.01",
		"184467440737095516.17",
		"100000000000000000",
		"-1000000000000.01",
		"1" + strings.Repeat("0", 40),
	} {
		_, err := domain.ParseAmount(in)
		require.ErrorIs(t, err, domain.ErrAmountOutOfRange, in)
	}

	// exponent forms never reach the decimal parser
	for _, in := range []string{"1e3", "1E3", "1e30000000", "5e-1", "0x10", "1_000", "."} {
		_, err := domain.ParseAmount(in)
		require.ErrorIs(t, err, domain.ErrInvalidAmount, in)
	}
}

func TestAmountFromMinorRoundTrip(t *testing.T) {
	a := domain.MustParseAmount("1234.56")
	require.True(t, a.Equal(domain.AmountFromMinor(a.Minor())))
}

func TestAmountNoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 is the classic float trap
	sum := domain.Sum(domain.MustParseAmount("0.1"), domain.MustParseAmount("0.2"))
	require.Equal(t, "0.30", sum.String())
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount domain.Amount `json:"amount"`
	}{domain.MustParseAmount("500")})
	require.NoError(t, err)
	require.JSONEq(t, `{"amount":500.00}`, string(b))

	var got struct {
		Amount domain.Amount `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.345"}`), &got))
	require.Equal(t, "12.35", got.Amount.String())

	require.Error(t, json.Unmarshal([]byte(`{"amount":"twelve"}`), &got))
}
