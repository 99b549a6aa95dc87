package estate

import (
	"slices"
)

// ScheduleEntry is one payment of an amortization schedule.
type ScheduleEntry struct {
	Period    int   `json:"periodIndex"` // 1-based
	Date      Date  `json:"paymentDate"`
	Payment   Money `json:"paymentAmount"`
	Interest  Money `json:"interestPortion"`
	Principal Money `json:"principalPortion"`
	Balance   Money `json:"remainingBalance"`
}

// TermSummary sums the part of a schedule that falls within the contractual term.
type TermSummary struct {
	Periods          int   `json:"periods"`
	EndDate          Date  `json:"endDate"`
	Principal        Money `json:"principalPaid"`
	Interest         Money `json:"interestPaid"`
	BalanceRemaining Money `json:"balanceRemaining"`
}

// YearBreakdown sums a schedule over one calendar year.
type YearBreakdown struct {
	Year      int   `json:"year"`
	Interest  Money `json:"interest"`
	Principal Money `json:"principal"`
	Balance   Money `json:"endingBalance"`
}

// Schedule is the full amortization projection of a loan.
type Schedule struct {
	Terms          LoanTerms       `json:"terms"`
	Payment        Money           `json:"paymentAmount"`
	TotalPeriods   int             `json:"totalPeriods"`
	PayoffDate     Date            `json:"payoffDate"`
	TotalPrincipal Money           `json:"totalPrincipal"`
	TotalInterest  Money           `json:"totalInterest"`
	TotalPaid      Money           `json:"totalPaid"`
	Term           TermSummary     `json:"termSummary"`
	Annual         []YearBreakdown `json:"annualBreakdown"`
	Entries        []ScheduleEntry `json:"schedule"`
}

// NewSchedule builds the amortization schedule of a loan.
//
// The schedule stops at the first payment that repays the balance, or after
// the amortization's total number of periods. Terms that cannot be amortized
// (see Payment) give a zeroed schedule whose term balance is the principal.
func NewSchedule(terms LoanTerms) *Schedule {
	zero := terms.Principal.zero()
	s := &Schedule{
		Terms:          terms,
		Payment:        zero,
		TotalPrincipal: zero,
		TotalInterest:  zero,
		TotalPaid:      zero,
		Term:           TermSummary{Principal: zero, Interest: zero, BalanceRemaining: terms.Principal},
		Annual:         []YearBreakdown{},
		Entries:        []ScheduleEntry{},
	}
	if terms.degenerate() {
		return s
	}

	s.TotalPeriods = terms.TotalPeriods()
	s.Payment = terms.EffectivePayment()
	rate := terms.RatePerPeriod()

	balance := terms.Principal
	on := terms.StartDate
	s.Entries = make([]ScheduleEntry, 0, s.TotalPeriods)
	for period := 1; period <= s.TotalPeriods; period++ {
		step := amortize(balance, s.Payment, rate)
		balance = step.Balance
		s.Entries = append(s.Entries, ScheduleEntry{
			Period:    period,
			Date:      on,
			Payment:   step.Payment,
			Interest:  step.Interest,
			Principal: step.Principal,
			Balance:   step.Balance,
		})
		if balance.IsZero() {
			break // paid off early
		}
		on = terms.Cadence.Next(on)
	}

	if n := len(s.Entries); n > 0 {
		s.PayoffDate = s.Entries[n-1].Date
	}
	for _, e := range s.Entries {
		s.TotalPrincipal = s.TotalPrincipal.Add(e.Principal)
		s.TotalInterest = s.TotalInterest.Add(e.Interest)
	}
	s.TotalPrincipal = s.TotalPrincipal.Round()
	s.TotalInterest = s.TotalInterest.Round()
	s.TotalPaid = s.TotalPrincipal.Add(s.TotalInterest)

	s.Term = summarizeTerm(terms, s.Entries)
	s.Annual = breakdownByYear(s.Entries)
	return s
}

// summarizeTerm sums the entries within the contractual term.
func summarizeTerm(terms LoanTerms, entries []ScheduleEntry) TermSummary {
	zero := terms.Principal.zero()
	sum := TermSummary{Principal: zero, Interest: zero, BalanceRemaining: terms.Principal}
	sum.Periods = min(len(entries), terms.TermPeriods())
	for _, e := range entries[:sum.Periods] {
		sum.Principal = sum.Principal.Add(e.Principal)
		sum.Interest = sum.Interest.Add(e.Interest)
	}
	sum.Principal = sum.Principal.Round()
	sum.Interest = sum.Interest.Round()
	if sum.Periods > 0 {
		last := entries[sum.Periods-1]
		sum.EndDate = last.Date
		sum.BalanceRemaining = last.Balance
	}
	return sum
}

// breakdownByYear groups the entries by calendar year of their payment date.
func breakdownByYear(entries []ScheduleEntry) []YearBreakdown {
	years := make([]YearBreakdown, 0)
	index := make(map[int]int)
	for _, e := range entries {
		i, ok := index[e.Date.Year()]
		if !ok {
			i = len(years)
			index[e.Date.Year()] = i
			zero := e.Balance.zero()
			years = append(years, YearBreakdown{Year: e.Date.Year(), Interest: zero, Principal: zero})
		}
		y := &years[i]
		y.Interest = y.Interest.Add(e.Interest)
		y.Principal = y.Principal.Add(e.Principal)
		y.Balance = e.Balance
	}
	slices.SortFunc(years, func(a, b YearBreakdown) int { return a.Year - b.Year })
	return years
}

// Entry returns the entry of the 1-based period i, and false when the
// schedule has no such period.
func (s *Schedule) Entry(i int) (ScheduleEntry, bool) {
	if i < 1 || i > len(s.Entries) {
		return ScheduleEntry{}, false
	}
	return s.Entries[i-1], true
}
