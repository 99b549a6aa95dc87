package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/estate"
)

// loanFlags describes a loan on the command line.
type loanFlags struct {
	principal    string
	rate         string
	term         int
	amortization int
	frequency    string
	start        string
	payment      string
	currency     string
}

func (l *loanFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&l.principal, "principal", "", "Amount borrowed.")
	f.StringVar(&l.rate, "rate", "", "Annual interest rate, as a ratio (0.045) or a percent (4.5%).")
	f.IntVar(&l.term, "term", 60, "Contractual term, in months.")
	f.IntVar(&l.amortization, "amortization", 300, "Amortization period, in months.")
	f.StringVar(&l.frequency, "frequency", "monthly", "Payment frequency: annual, semi-annual, quarterly, monthly, semi-monthly, bi-weekly, weekly or a number of payments per year.")
	f.StringVar(&l.start, "start", "0d", "Date of the first payment. See the user manual for supported date formats.")
	f.StringVar(&l.payment, "payment", "", "Periodic payment, overriding the computed one.")
	f.StringVar(&l.currency, "c", "", "Currency of the amounts. Defaults to the configured currency.")
}

// terms parses the flags into loan terms, amounts in currency when -c is
// not set.
func (l *loanFlags) terms(currency string) (estate.LoanTerms, error) {
	var t estate.LoanTerms
	if l.currency != "" {
		currency = l.currency
	}
	if l.principal == "" {
		return t, fmt.Errorf("missing -principal")
	}
	var err error
	if t.Principal, err = estate.ParseMoney(l.principal, currency); err != nil {
		return t, fmt.Errorf("invalid principal: %w", err)
	}
	if t.AnnualRate, err = parseRate(l.rate); err != nil {
		return t, err
	}
	if t.Cadence, err = estate.ParseCadence(l.frequency); err != nil {
		return t, err
	}
	if t.StartDate, err = estate.ParseDate(l.start); err != nil {
		return t, fmt.Errorf("invalid start date: %w", err)
	}
	if t.PaymentAmount, err = estate.ParseMoney(l.payment, currency); err != nil {
		return t, fmt.Errorf("invalid payment: %w", err)
	}
	t.TermMonths = l.term
	t.AmortizationMonths = l.amortization
	return t, nil
}
