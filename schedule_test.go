package estate

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func mortgageTerms(principal float64, rate string, months int, c Cadence) LoanTerms {
	return LoanTerms{
		Principal:          CAD(principal),
		AnnualRate:         dec(rate),
		TermMonths:         60,
		AmortizationMonths: months,
		StartDate:          NewDate(2024, time.January, 1),
		Cadence:            c,
	}
}

func TestScheduleInvariants(t *testing.T) {
	testCases := []LoanTerms{
		mortgageTerms(180000, "0.04", 300, CadenceMonthly),
		mortgageTerms(250000, "0.055", 300, CadenceBiWeekly),
		mortgageTerms(50000, "0.06", 120, CadenceWeekly),
		mortgageTerms(12000, "0", 12, CadenceMonthly),
		mortgageTerms(300000, "0.0325", 360, CadenceSemiMonthly),
		mortgageTerms(100000, "0.05", 60, CadenceQuarterly),
		mortgageTerms(80000, "0.07", 240, CadenceAnnual),
		mortgageTerms(40000, "0.045", 60, CadenceSemiAnnual),
		mortgageTerms(1000, "0.1", 12, 7),
	}
	for _, terms := range testCases {
		t.Run(terms.Cadence.String(), func(t *testing.T) {
			s := NewSchedule(terms)
			n := len(s.Entries)
			if n == 0 || n > s.TotalPeriods {
				t.Fatalf("len(Entries) = %d, want in [1, %d]", n, s.TotalPeriods)
			}
			// rounding the payment down leaves at most a cent per period.
			tolerance := decimal.New(int64(s.TotalPeriods), -cents)

			last := s.Entries[n-1]
			if last.Balance.IsNegative() || last.Balance.Decimal().GreaterThan(tolerance) {
				t.Errorf("final balance = %v, want 0 within %v", last.Balance.Decimal(), tolerance)
			}

			diff := s.TotalPrincipal.Sub(terms.Principal).Decimal().Abs()
			if diff.GreaterThan(tolerance) {
				t.Errorf("Σ principal = %v, want %v within %v", s.TotalPrincipal.Decimal(), terms.Principal.Decimal(), tolerance)
			}

			previous := terms.Principal
			for i, e := range s.Entries {
				if e.Period != i+1 {
					t.Errorf("entry %d has period %d", i, e.Period)
				}
				if e.Balance.GreaterThan(previous) || e.Balance.IsNegative() {
					t.Errorf("entry %d balance %v after %v, want non-increasing and non-negative", e.Period, e.Balance, previous)
				}
				if e.Payment.GreaterThan(s.Payment) {
					t.Errorf("entry %d payment %v exceeds the scheduled %v", e.Period, e.Payment, s.Payment)
				}
				previous = e.Balance
			}

			if s.Term.Periods > n {
				t.Errorf("Term.Periods = %d > %d entries", s.Term.Periods, n)
			}
			if s.Term.Periods > 0 {
				boundary := s.Entries[s.Term.Periods-1]
				if !s.Term.BalanceRemaining.Equal(boundary.Balance) {
					t.Errorf("Term.BalanceRemaining = %v, want %v", s.Term.BalanceRemaining, boundary.Balance)
				}
				if s.Term.EndDate != boundary.Date {
					t.Errorf("Term.EndDate = %v, want %v", s.Term.EndDate, boundary.Date)
				}
			}
			if s.PayoffDate != last.Date {
				t.Errorf("PayoffDate = %v, want %v", s.PayoffDate, last.Date)
			}
			if !s.TotalPaid.Equal(s.TotalPrincipal.Add(s.TotalInterest)) {
				t.Errorf("TotalPaid = %v, want %v", s.TotalPaid, s.TotalPrincipal.Add(s.TotalInterest))
			}
		})
	}
}

func TestScheduleConcrete(t *testing.T) {
	s := NewSchedule(mortgageTerms(180000, "0.04", 300, CadenceMonthly))
	assertMoney(t, "Payment", s.Payment, CAD(950.11))
	if s.TotalPeriods != 300 || len(s.Entries) != 300 {
		t.Fatalf("periods = %d/%d, want 300/300", s.TotalPeriods, len(s.Entries))
	}

	first, _ := s.Entry(1)
	assertMoney(t, "first interest", first.Interest, CAD(600))
	assertMoney(t, "first principal", first.Principal, CAD(350.11))
	assertMoney(t, "first balance", first.Balance, CAD(179649.89))

	last, _ := s.Entry(300)
	assertMoney(t, "last payment", last.Payment, CAD(948.22))
	assertMoney(t, "last balance", last.Balance, CAD(0))
	if want := NewDate(2048, time.December, 1); last.Date != want {
		t.Errorf("last date = %v, want %v", last.Date, want)
	}
	assertMoney(t, "TotalPrincipal", s.TotalPrincipal, CAD(180000))
	assertMoney(t, "TotalInterest", s.TotalInterest, CAD(105031.11))

	if s.Term.Periods != 60 {
		t.Errorf("Term.Periods = %d, want 60", s.Term.Periods)
	}
	if len(s.Annual) != 25 || s.Annual[0].Year != 2024 || s.Annual[24].Year != 2048 {
		t.Fatalf("Annual = %d years from %d, want 25 from 2024", len(s.Annual), s.Annual[0].Year)
	}
	var interest Money
	for _, y := range s.Annual {
		interest = interest.Add(y.Interest)
	}
	assertMoney(t, "Σ annual interest", interest, s.TotalInterest)
	dec2024, _ := s.Entry(12)
	if !s.Annual[0].Balance.Equal(dec2024.Balance) {
		t.Errorf("2024 ending balance = %v, want %v", s.Annual[0].Balance, dec2024.Balance)
	}

	if _, ok := s.Entry(0); ok {
		t.Errorf("Entry(0) exists")
	}
	if _, ok := s.Entry(301); ok {
		t.Errorf("Entry(301) exists")
	}
}

func TestScheduleEarlyPayoff(t *testing.T) {
	terms := mortgageTerms(10000, "0.05", 12, CadenceMonthly)
	terms.PaymentAmount = CAD(2000)
	s := NewSchedule(terms)
	if len(s.Entries) != 6 {
		t.Fatalf("len(Entries) = %d, want 6", len(s.Entries))
	}
	last := s.Entries[5]
	assertMoney(t, "last payment", last.Payment, CAD(126.93))
	assertMoney(t, "last balance", last.Balance, CAD(0))
	if want := NewDate(2024, time.June, 1); s.PayoffDate != want {
		t.Errorf("PayoffDate = %v, want %v", s.PayoffDate, want)
	}
}

func TestScheduleDates(t *testing.T) {
	testCases := []struct {
		cadence Cadence
		start   Date
		second  Date
		third   Date
	}{
		{CadenceMonthly, NewDate(2024, 1, 31), NewDate(2024, 2, 29), NewDate(2024, 3, 29)},
		{CadenceSemiMonthly, NewDate(2024, 1, 1), NewDate(2024, 1, 16), NewDate(2024, 1, 31)},
		{CadenceBiWeekly, NewDate(2024, 1, 1), NewDate(2024, 1, 15), NewDate(2024, 1, 29)},
		{CadenceWeekly, NewDate(2024, 1, 1), NewDate(2024, 1, 8), NewDate(2024, 1, 15)},
		{CadenceQuarterly, NewDate(2024, 11, 30), NewDate(2025, 2, 28), NewDate(2025, 5, 28)},
		{CadenceSemiAnnual, NewDate(2024, 1, 1), NewDate(2024, 7, 1), NewDate(2025, 1, 1)},
		{CadenceAnnual, NewDate(2024, 2, 29), NewDate(2025, 2, 28), NewDate(2026, 2, 28)},
		{10, NewDate(2024, 1, 1), NewDate(2024, 2, 7), NewDate(2024, 3, 15)},
	}
	for _, tc := range testCases {
		t.Run(tc.cadence.String(), func(t *testing.T) {
			terms := mortgageTerms(100000, "0.05", 300, tc.cadence)
			terms.StartDate = tc.start
			s := NewSchedule(terms)
			got := []Date{s.Entries[0].Date, s.Entries[1].Date, s.Entries[2].Date}
			want := []Date{tc.start, tc.second, tc.third}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("dates = %v, want %v", got, want)
			}
		})
	}
}

// TestScheduleBiWeeklyDrift checks 26 bi-weekly payments span 364 days, not a year.
func TestScheduleBiWeeklyDrift(t *testing.T) {
	s := NewSchedule(mortgageTerms(100000, "0.05", 300, CadenceBiWeekly))
	if got := s.Entries[26].Date; got != NewDate(2024, time.December, 30) {
		t.Errorf("27th payment on %v, want 2024-12-30", got)
	}
}

func TestScheduleDegenerate(t *testing.T) {
	testCases := []struct {
		name  string
		terms LoanTerms
	}{
		{"zero principal", mortgageTerms(0, "0.05", 300, CadenceMonthly)},
		{"zero cadence", mortgageTerms(1000, "0.05", 300, 0)},
		{"zero months", mortgageTerms(1000, "0.05", 0, CadenceMonthly)},
		{"zero periods", mortgageTerms(1000, "0.05", 1, CadenceAnnual)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSchedule(tc.terms)
			if s.TotalPeriods != 0 || len(s.Entries) != 0 || len(s.Annual) != 0 {
				t.Errorf("got %d periods, %d entries, %d years, want none", s.TotalPeriods, len(s.Entries), len(s.Annual))
			}
			if !s.PayoffDate.IsZero() {
				t.Errorf("PayoffDate = %v, want none", s.PayoffDate)
			}
			for name, m := range map[string]Money{"Payment": s.Payment, "TotalPaid": s.TotalPaid, "TotalInterest": s.TotalInterest} {
				if !m.IsZero() {
					t.Errorf("%s = %v, want 0", name, m)
				}
			}
			if !s.Term.BalanceRemaining.Equal(tc.terms.Principal) {
				t.Errorf("Term.BalanceRemaining = %v, want %v", s.Term.BalanceRemaining, tc.terms.Principal)
			}
			data, err := json.Marshal(s)
			if err != nil {
				t.Fatalf("Marshal() unexpected error: %v", err)
			}
			var decoded map[string]any
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			if decoded["payoffDate"] != nil {
				t.Errorf("payoffDate = %v, want null", decoded["payoffDate"])
			}
		})
	}
}

func TestScheduleIdempotent(t *testing.T) {
	terms := mortgageTerms(250000, "0.055", 300, CadenceBiWeekly)
	a, err := json.Marshal(NewSchedule(terms))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	b, err := json.Marshal(NewSchedule(terms))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("two schedules of the same terms differ")
	}
}
