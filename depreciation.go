package estate

import "github.com/shopspring/decimal"

// DepreciationSetting is the capital cost allowance class of a property.
type DepreciationSetting struct {
	ClassCode    string          `json:"classCode"`
	Rate         decimal.Decimal `json:"ccaRate"` // 0.04 for class 1
	OpeningUCC   Money           `json:"openingUcc"`
	Additions    Money           `json:"additions"`
	Dispositions Money           `json:"dispositions"`
}

var half = decimal.New(5, -1)

// UCCBase is the undepreciated capital cost the allowance applies to. Only
// half of the year's additions count (half-year rule). It is never negative.
func (s DepreciationSetting) UCCBase() Money {
	base := s.OpeningUCC.Add(s.Additions.Mul(half)).Sub(s.Dispositions)
	return MaxMoney(base, base.zero()).Round()
}

// CCA returns the capital cost allowance that can be claimed against
// netIncome, the net income before allowance.
//
// The allowance never exceeds netIncome so that it cannot create a loss; it
// is zero when the rate or the net income is not positive.
func CCA(s DepreciationSetting, netIncome Money) Money {
	zero := netIncome.zero().Add(s.OpeningUCC.zero())
	if !s.Rate.IsPositive() || !netIncome.IsPositive() {
		return zero
	}
	allowance := s.UCCBase().Mul(s.Rate).Round()
	return MinMoney(allowance, netIncome).Round()
}
