package estate

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a ratio expressed in percent, for display.
type Percent float64

// PercentOf converts a ratio (0.05) into a Percent (5%).
func PercentOf(ratio decimal.Decimal) Percent {
	return Percent(ratio.Shift(2).InexactFloat64())
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// OptionalPercent formats a ratio that may be undefined, as "-".
func OptionalPercent(ratio *decimal.Decimal) string {
	if ratio == nil {
		return "-"
	}
	return PercentOf(*ratio).String()
}
