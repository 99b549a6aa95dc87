package estate

import (
	"math"

	"github.com/shopspring/decimal"
)

// Payment returns the fixed periodic payment that fully amortizes principal
// over amortizationMonths at annualRate, with cadence payments per year.
//
// The result is rounded to cents. It is zero when the principal is not
// positive, the cadence or the duration is not positive, or the duration
// amounts to zero periods. A zero rate gives a straight-line repayment.
func Payment(principal Money, annualRate decimal.Decimal, amortizationMonths int, cadence Cadence) Money {
	zero := principal.zero()
	if !principal.IsPositive() || cadence <= 0 || amortizationMonths <= 0 {
		return zero
	}
	n := cadence.Periods(amortizationMonths)
	if n <= 0 {
		return zero
	}
	straight := principal.DivInt(n).Round()

	rate := annualRate.Div(decimal.NewFromInt(int64(cadence)))
	if rate.IsZero() {
		return straight
	}

	// The power is computed in float64, then the result is back to decimal
	// for the rounding.
	r := rate.InexactFloat64()
	denominator := 1 - math.Pow(1+r, -float64(n))
	if denominator == 0 || math.IsNaN(denominator) || math.IsInf(denominator, 0) {
		return straight
	}
	p := principal.value.InexactFloat64() * r / denominator
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return straight
	}
	return Money{value: decimal.NewFromFloat(p), cur: principal.cur}.Round()
}
