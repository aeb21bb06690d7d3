package money

import (
	"testing"

	"github.com/sangkips/receiptbook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Money
		expected Money
	}{
		{"Add", Add(100, 250), 350},
		{"Subtract", Subtract(500, 200), 300},
		{"Subtract to zero", Subtract(200, 200), 0},
		{"Subtract clamps", Subtract(200, 500), 0},
		{"Add saturates", Add(MaxAmount, 1), MaxAmount},
		{"Sum", Sum(100, 200, 300), 600},
		{"Sum empty", Sum(), 0},
		{"Sum saturates", Sum(MaxAmount-5, 3, 3), MaxAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.got)
		})
	}
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		unit     Money
		expected Money
	}{
		{"two haircuts", 2, 3000, 6000},
		{"by one", 1, 999, 999},
		{"zero quantity", 0, MaxAmount, 0},
		{"exactly max", 1, MaxAmount, MaxAmount},
		{"largest fitting product", 3, MaxAmount / 3, MaxAmount / 3 * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Multiply(tt.quantity, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMultiply_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		unit     Money
	}{
		{"wraps past max", 3, MaxAmount/2 + 1},
		{"max times two", 2, MaxAmount},
		{"negative quantity", -1, 100},
		{"negative unit", 1, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Multiply(tt.quantity, tt.unit)
			assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
		})
	}
}

func TestAddChecked(t *testing.T) {
	sum, err := AddChecked(MaxAmount-1, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxAmount, sum)

	_, err = AddChecked(MaxAmount, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
	assert.Contains(t, err.Error(), "exceeds the maximum amount")

	_, err = AddChecked(-1, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{99, "$0.99"},
		{6000, "$60.00"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(FromCents(tt.cents)))
		})
	}

	assert.Equal(t, "KES 12.30", FormatWith(1230, "KES "))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Money
	}{
		{"20", 2000},
		{"$20.00", 2000},
		{"$1,234.56", 123456},
		{"0.5", 50},
		{".25", 25},
		{"10.005", 1001},
		{"10.004", 1000},
		{" USD 7 ", 700},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "-5", "$-5.00", "1.2.3", ".", "99999999999999999999999"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, apperror.ErrInvalidAmount)
		})
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 9, 10, 99, 100, 101, 6000, 123456, 987654321} {
		m := FromCents(cents)
		parsed, err := Parse(Format(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed, "round trip of %d cents", cents)
	}
}
