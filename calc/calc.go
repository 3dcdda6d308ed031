// Package calc does the money arithmetic for the analytics packages.
//
// Values are carried as float64 at the API boundary but every operation is
// performed in decimal and rounded to two places with banker's rounding, so
// repeated additions along an equity curve never drift. Any division by zero
// yields 0.
package calc

import (
	"github.com/shopspring/decimal"
)

// Places is the scale every result is rounded to.
const Places = 2

// deltaPrecision is the number of digits kept by the percentage-of-balance
// divide before it is scaled back to Places.
const deltaPrecision = 25

// divPrecision is used for the intermediate quotient of ordinary divides.
const divPrecision = 16

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

func dec(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x)
}

func out(x decimal.Decimal) float64 {
	return x.RoundBank(Places).InexactFloat64()
}

// quo divides a by b, keeping prec digits after the point and rounding the
// last one half-even. b must not be zero.
func quo(a, b decimal.Decimal, prec int32) decimal.Decimal {
	q, r := a.QuoRem(b, prec)
	if r.IsZero() {
		return q
	}

	cmp := r.Abs().Mul(two).Cmp(b.Abs().Shift(-prec))
	if cmp < 0 {
		return q
	}
	if cmp == 0 && q.Shift(prec).BigInt().Bit(0) == 0 {
		return q
	}

	unit := decimal.New(1, -prec)
	if a.Sign()*b.Sign() < 0 {
		return q.Sub(unit)
	}
	return q.Add(unit)
}

// Round rounds x to two places.
func Round(x float64) float64 {
	return out(dec(x))
}

// Whole rounds x to the nearest integer.
func Whole(x float64) int {
	return int(dec(x).RoundBank(0).IntPart())
}

func Add(a, b float64) float64 {
	return out(dec(a).Add(dec(b)))
}

func Subtract(a, b float64) float64 {
	return out(dec(a).Sub(dec(b)))
}

func Multiply(a, b float64) float64 {
	return out(dec(a).Mul(dec(b)))
}

// Divide returns a/b, or 0 when b is 0.
func Divide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return out(quo(dec(a), dec(b), divPrecision))
}

// Delta expresses a as a percentage of b.
func Delta(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return out(quo(dec(a), dec(b), divPrecision).Mul(hundred))
}

// WholePercentage expresses a as a whole-number percentage of b.
func WholePercentage(a, b float64) int {
	if b == 0 {
		return 0
	}
	return int(quo(dec(a).Mul(hundred), dec(b), divPrecision).RoundBank(0).IntPart())
}

// PercentageChange is the change from b to a as a percentage of b.
func PercentageChange(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return out(quo(dec(a).Sub(dec(b)), dec(b), divPrecision).Mul(hundred))
}

// ComputeIncrement adds inc to value when absolute is set, otherwise it
// returns inc percent of value.
func ComputeIncrement(value, inc float64, absolute bool) float64 {
	if absolute {
		return Add(value, inc)
	}
	return out(dec(value).Mul(dec(inc)).Div(hundred))
}

func WeightedAverage(v1, w1, v2, w2 float64) float64 {
	den := dec(w1).Add(dec(w2))
	if den.IsZero() {
		return 0
	}
	num := dec(v1).Mul(dec(w1)).Add(dec(v2).Mul(dec(w2)))
	return out(quo(num, den, divPrecision))
}

// PercentOf is the absolute size of value relative to base, in percent.
// The quotient is taken to 25 digits before scaling, matching how account
// insight deltas are reported.
func PercentOf(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return quo(dec(value), dec(base), deltaPrecision).Mul(hundred).RoundBank(Places).Abs().InexactFloat64()
}

// Sum adds values exactly and rounds the total.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return out(total)
}

// Mean is the rounded arithmetic mean of values, 0 for none.
func Mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(dec(v))
	}
	return out(quo(total, decimal.NewFromInt(int64(len(values))), divPrecision))
}
