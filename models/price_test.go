package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"19.99", 1999},
		{"0.01", 1},
		{"0", 0},
		{"100", 10000},
		{"5.5", 550},
		{"24.99", 2499},
	}
	for _, tc := range cases {
		minor, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, minor, tc.in)
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "-1.00", "1.999", "0.001", "1,50"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "19.99", FormatPrice(1999))
	assert.Equal(t, "0.01", FormatPrice(1))
	assert.Equal(t, "0.00", FormatPrice(0))
	assert.Equal(t, "100.00", FormatPrice(10000))
}

func TestPriceRoundTrip(t *testing.T) {
	minor, err := ParsePrice("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", FormatPrice(minor))
}
