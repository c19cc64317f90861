package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Cents
	}{
		{"integer", "12", 1200},
		{"dot separator", "12.34", 1234},
		{"comma separator", "12,34", 1234},
		{"single fractional digit", "150.5", 15050},
		{"third digit rounds down", "12.344", 1234},
		{"third digit rounds up", "12.345", 1235},
		{"leading dot", ".99", 99},
		{"zero", "0", 0},
		{"negative", "-49.50", -4950},
		{"explicit plus", "+7.25", 725},
		{"surrounding whitespace", " 3.10 ", 310},
		{"largest representable", "92233720368547758.07", Cents(1<<63 - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"", ".", "abc", "12.3.4", "12a", "--5", "1e3",
		// Non-ASCII decimal digits must be rejected, not byte-mangled.
		"1.٥", "١٢.34", "1.५",
		// Values whose cent scaling would overflow int64.
		"92233720368547758.99", "99999999999999999999",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "150.50", Cents(15050).String())
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "-49.50", Cents(-4950).String())
	assert.Equal(t, "0.05", Cents(5).String())
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Amount Cents `json:"amount"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 150.50}`), &p))
	assert.Equal(t, Cents(15050), p.Amount)

	out, err := json.Marshal(payload{Amount: 3025})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 30.25}`, string(out))
}

func TestNoDriftOverRepeatedAccumulation(t *testing.T) {
	// 0.10 added a thousand times must be exactly 100.00.
	var total Cents
	tenth, err := Parse("0.10")
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		total += tenth
	}
	assert.Equal(t, Cents(10000), total)
	assert.Equal(t, "100.00", total.String())
}

func TestAbsAndSign(t *testing.T) {
	assert.Equal(t, Cents(4950), Cents(-4950).Abs())
	assert.Equal(t, Cents(4950), Cents(4950).Abs())
	assert.True(t, Cents(-1).IsNegative())
	assert.False(t, Cents(0).IsNegative())
}
