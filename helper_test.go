package estate

import (
	"testing"

	"github.com/shopspring/decimal"
)

// CAD is a helper for test to create canadian money from const
func CAD(v float64) Money { return M(v, "CAD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// dec is a helper for test to create a decimal from a string const
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertMoney fails the test if got is not want, at the cent.
func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Decimal().Round(cents).Equal(want.Decimal().Round(cents)) {
		t.Errorf("%s = %s, want %s", name, got.Decimal().StringFixed(cents), want.Decimal().StringFixed(cents))
	}
}
