package estate

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPayment(t *testing.T) {
	testCases := []struct {
		name      string
		principal Money
		rate      decimal.Decimal
		months    int
		cadence   Cadence
		want      Money
	}{
		{"monthly 25y", CAD(180000), dec("0.04"), 300, CadenceMonthly, CAD(950.11)},
		{"monthly 5%", CAD(100000), dec("0.05"), 300, CadenceMonthly, CAD(584.59)},
		{"bi-weekly", CAD(250000), dec("0.055"), 300, CadenceBiWeekly, CAD(708.16)},
		{"quarterly", CAD(100000), dec("0.05"), 60, CadenceQuarterly, CAD(5682.04)},
		{"zero rate", CAD(12000), decimal.Zero, 12, CadenceMonthly, CAD(1000)},
		{"zero rate rounded", CAD(1000), decimal.Zero, 36, CadenceBiWeekly, CAD(12.82)},
		{"zero principal", CAD(0), dec("0.05"), 300, CadenceMonthly, CAD(0)},
		{"negative principal", CAD(-10), dec("0.05"), 300, CadenceMonthly, CAD(0)},
		{"zero cadence", CAD(1000), dec("0.05"), 300, 0, CAD(0)},
		{"negative cadence", CAD(1000), dec("0.05"), 300, -12, CAD(0)},
		{"zero months", CAD(1000), dec("0.05"), 0, CadenceMonthly, CAD(0)},
		{"zero periods", CAD(1000), dec("0.05"), 1, CadenceAnnual, CAD(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Payment(tc.principal, tc.rate, tc.months, tc.cadence)
			assertMoney(t, "Payment()", got, tc.want)
			if got.Currency() != "CAD" {
				t.Errorf("Payment() currency = %q, want CAD", got.Currency())
			}
		})
	}
}

// TestPaymentZeroRateIsExact checks the straight-line payment is principal /
// periods rounded to cents, exactly.
func TestPaymentZeroRateIsExact(t *testing.T) {
	for _, months := range []int{1, 7, 12, 13, 60, 300} {
		for _, c := range []Cadence{CadenceMonthly, CadenceBiWeekly, CadenceWeekly, CadenceSemiMonthly} {
			p := CAD(123456.78)
			got := Payment(p, decimal.Zero, months, c)
			n := c.Periods(months)
			want := p.DivInt(n).Round()
			if !got.Equal(want) {
				t.Errorf("Payment(%v, 0, %d, %v) = %v, want %v", p, months, c, got, want)
			}
		}
	}
}

func TestLoanTermsEffectivePayment(t *testing.T) {
	terms := LoanTerms{
		Principal:          CAD(180000),
		AnnualRate:         dec("0.04"),
		TermMonths:         60,
		AmortizationMonths: 300,
		StartDate:          NewDate(2024, 1, 1),
		Cadence:            CadenceMonthly,
	}
	assertMoney(t, "computed", terms.EffectivePayment(), CAD(950.11))

	terms.PaymentAmount = NO(1000.004)
	got := terms.EffectivePayment()
	assertMoney(t, "override", got, CAD(1000))
	if got.Currency() != "CAD" {
		t.Errorf("override currency = %q, want CAD", got.Currency())
	}
}
