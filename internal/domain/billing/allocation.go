package billing

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RoundingUnit is the denomination payment proposals are rounded to.
// Percent presets produce round, humanly-typeable amounts in whole thousands
// of minor units.
const RoundingUnit = 1000

// Preset identifies which allocation shortcut produced the current amount.
// It is informational UI state only and never feeds back into the amount.
type Preset string

const (
	PresetPercent30 Preset = "30"
	PresetPercent50 Preset = "50"
	PresetAll       Preset = "ALL"
	PresetCustom    Preset = "CUSTOM"
)

// PercentPreset returns the preset tag for a fixed-percentage shortcut.
func PercentPreset(pct int64) Preset {
	return Preset(strconv.FormatInt(pct, 10))
}

// Allocator proposes payment amounts against an invoice's outstanding
// balance. Inputs are normalized on construction, so the zero-value guard
// rails of NormalizeAmount apply to whatever the caller hands in.
type Allocator struct {
	total     int64
	paid      int64
	remaining int64
}

// NewAllocator builds an Allocator from raw total/paid values.
func NewAllocator(total, paid any) Allocator {
	t := NormalizeAmount(total)
	p := NormalizeAmount(paid)
	r := t - p
	if r < 0 {
		r = 0
	}
	return Allocator{total: t, paid: p, remaining: r}
}

// Total returns the normalized invoice total.
func (a Allocator) Total() int64 { return a.total }

// Paid returns the normalized paid amount.
func (a Allocator) Paid() int64 { return a.paid }

// Remaining returns the outstanding balance, never negative.
func (a Allocator) Remaining() int64 { return a.remaining }

// ProposeInitial returns the starting amount for a payment form: the
// caller-supplied default when present, otherwise the full remaining balance.
func (a Allocator) ProposeInitial(explicit any) int64 {
	if explicit == nil {
		return a.remaining
	}
	return NormalizeAmount(explicit)
}

// ProposePercent computes pct percent of the remaining balance, rounded to
// the nearest RoundingUnit. Ties round half away from zero.
func (a Allocator) ProposePercent(pct int64) int64 {
	if pct <= 0 || a.remaining <= 0 {
		return 0
	}
	exact := decimal.NewFromInt(a.remaining).
		Mul(decimal.NewFromInt(pct)).
		Div(decimal.NewFromInt(100))
	rounded := exact.
		Div(decimal.NewFromInt(RoundingUnit)).
		Round(0).
		Mul(decimal.NewFromInt(RoundingUnit))
	v := rounded.IntPart()
	if v < 0 {
		return 0
	}
	return v
}

// ProposeAll returns the remaining balance exactly, with no rounding, so a
// full payment always clears the invoice.
func (a Allocator) ProposeAll() int64 {
	return a.remaining
}

// ResolvePreset reports which preset tag matches an amount: ALL when the
// amount exactly equals a positive remaining balance, CUSTOM otherwise.
// Hand-editing the amount field reverts the active preset through this rule.
func ResolvePreset(amount, remaining int64) Preset {
	if remaining > 0 && amount == remaining {
		return PresetAll
	}
	return PresetCustom
}
