package billing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected int64
	}{
		{"nil", nil, 0},
		{"positive int", 1500, 1500},
		{"negative int clamps to zero", -200, 0},
		{"int64", int64(2_000_000), 2_000_000},
		{"negative int64 clamps to zero", int64(-1), 0},
		{"float drops fraction", 1234.56, 1234},
		{"negative float clamps to zero", -0.5, 0},
		{"float beyond int64 clamps to max", 1e19, math.MaxInt64},
		{"positive infinity degrades to zero", math.Inf(1), 0},
		{"negative infinity degrades to zero", math.Inf(-1), 0},
		{"not a number degrades to zero", math.NaN(), 0},
		{"int16", int16(12000), 12000},
		{"negative int8 clamps to zero", int8(-7), 0},
		{"uint", uint(88000), 88000},
		{"uint8", uint8(250), 250},
		{"uint32", uint32(4_000_000_000), 4_000_000_000},
		{"uint64 beyond int64 clamps to max", uint64(math.MaxUint64), math.MaxInt64},
		{"plain digit string", "300000", 300000},
		{"dot separated thousands", "12.000.000", 12_000_000},
		{"comma separated thousands", "1,760,000", 1_760_000},
		{"currency suffix and spaces", "5 500 000 đ", 5_500_000},
		{"mixed garbage", "abc12x3", 123},
		{"empty string", "", 0},
		{"no digits", "n/a", 0},
		{"json number", json.Number("450000"), 450000},
		{"unsupported type", struct{}{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAmount(tt.input))
		})
	}
}

func TestNormalizeAmount_Idempotent(t *testing.T) {
	inputs := []any{nil, -5, 0, 42, 3.99, 1e19, math.Inf(1), "12.000.000 đ", "x", "007", json.Number("13")}

	for _, in := range inputs {
		once := NormalizeAmount(in)
		assert.GreaterOrEqual(t, once, int64(0))
		assert.Equal(t, once, NormalizeAmount(once))
	}
}

func TestNormalizeString_OverflowDegradesToZero(t *testing.T) {
	assert.Equal(t, int64(0), NormalizeString("99999999999999999999999999"))
}
