package estate

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// cents is the precision every monetary result is rounded to.
const cents = 2

// Money represents a monetary value.
//
// Arithmetic is exact (decimal); rounding to cents is explicit with Round,
// and always rounds half away from zero.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money from a numeric value and a currency code. An empty
// currency is weak: it adopts the currency of the other operand.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, using the
// currency's own symbol and grouping.
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(cents)
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string            { return m.cur }
func (m Money) Decimal() decimal.Decimal    { return m.value }
func (m Money) Equal(n Money) bool          { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                { return m.value.IsZero() }
func (m Money) IsPositive() bool            { return m.value.IsPositive() }
func (m Money) IsNegative() bool            { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool  { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool    { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                  { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(d decimal.Decimal) Money { return Money{value: m.value.Mul(d), cur: m.cur} }
func (m Money) DivInt(n int) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(int64(n))), cur: m.cur}
}
func (m Money) Ratio(n Money) decimal.Decimal      { return m.value.Div(n.value) }
func (m Money) Round() Money                       { return Money{value: m.value.Round(cents), cur: m.cur} }
func (m Money) zero() Money                        { return Money{cur: m.cur} }
func (m Money) withCurrency(currency string) Money { return Money{value: m.value, cur: currency} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// MinMoney returns the smallest of a and b.
func MinMoney(a, b Money) Money {
	if b.LessThan(a) {
		return Money{value: b.value, cur: cur(a, b)}
	}
	return Money{value: a.value, cur: cur(a, b)}
}

// MaxMoney returns the largest of a and b.
func MaxMoney(a, b Money) Money {
	if b.GreaterThan(a) {
		return Money{value: b.value, cur: cur(a, b)}
	}
	return Money{value: a.value, cur: cur(a, b)}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the amount rounded to cents as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", json.Number(m.value.StringFixed(cents)))
	return w.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var jm struct {
		Currency string `json:"currency"`
		Amount   any    `json:"amount"`
	}
	if err := unmarshalNumbers(data, &jm); err != nil {
		return err
	}
	value, err := ParseDecimal(jm.Amount)
	if err != nil {
		return err
	}
	*m = Money{value: value, cur: jm.Currency}
	return nil
}
