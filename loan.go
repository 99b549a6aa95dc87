package estate

import (
	"github.com/shopspring/decimal"
)

// LoanTerms are the static terms of a fixed-rate loan.
type LoanTerms struct {
	Principal          Money           `json:"principal"`
	AnnualRate         decimal.Decimal `json:"rateAnnual"` // 0.05 for 5%
	TermMonths         int             `json:"termMonths"`
	AmortizationMonths int             `json:"amortizationMonths"`
	StartDate          Date            `json:"startDate"` // date of the first payment
	Cadence            Cadence         `json:"paymentFrequency"`
	// PaymentAmount overrides the computed periodic payment when positive.
	PaymentAmount Money `json:"paymentAmount"`
}

// TotalPeriods is the number of periods in the amortization.
func (t LoanTerms) TotalPeriods() int {
	if t.Cadence <= 0 || t.AmortizationMonths <= 0 {
		return 0
	}
	return max(0, t.Cadence.Periods(t.AmortizationMonths))
}

// TermPeriods is the number of periods in the contractual term.
func (t LoanTerms) TermPeriods() int {
	if t.Cadence <= 0 || t.TermMonths <= 0 {
		return 0
	}
	return max(0, t.Cadence.Periods(t.TermMonths))
}

// RatePerPeriod is the interest rate applied to the balance at each payment.
func (t LoanTerms) RatePerPeriod() decimal.Decimal {
	if t.Cadence <= 0 {
		return decimal.Zero
	}
	return t.AnnualRate.Div(decimal.NewFromInt(int64(t.Cadence)))
}

// Payment returns the periodic payment computed from the terms, ignoring any
// override.
func (t LoanTerms) Payment() Money {
	return Payment(t.Principal, t.AnnualRate, t.AmortizationMonths, t.Cadence)
}

// EffectivePayment returns the override payment when set, otherwise the
// computed one.
func (t LoanTerms) EffectivePayment() Money {
	if t.PaymentAmount.IsPositive() {
		return t.PaymentAmount.Round().withCurrency(t.Principal.cur)
	}
	return t.Payment()
}

// degenerate reports terms that cannot produce a schedule.
func (t LoanTerms) degenerate() bool {
	return !t.Principal.IsPositive() || t.Cadence <= 0 || t.AmortizationMonths <= 0 || t.TotalPeriods() == 0
}

// installment is one payment applied to a balance.
type installment struct {
	Payment   Money // actually paid, capped to what is owed
	Interest  Money
	Principal Money
	Balance   Money // after the payment
}

// oneCent is the residue under which a balance is considered repaid.
var oneCent = decimal.New(1, -cents)

// amortize applies a scheduled payment to balance.
//
// The payment is capped to balance plus interest, so that the final payment
// never exceeds what is owed, and a balance under one cent snaps to zero.
func amortize(balance, payment Money, rate decimal.Decimal) installment {
	interest := balance.Mul(rate).Round()
	paid := MinMoney(payment, balance.Add(interest))
	principal := paid.Sub(interest).Round()
	after := balance.Sub(principal).Round()
	if after.value.LessThan(oneCent) {
		after = after.zero()
	}
	return installment{Payment: paid, Interest: interest, Principal: principal, Balance: after}
}
