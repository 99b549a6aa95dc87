package estate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Mortgage is a loan secured on a property.
type Mortgage struct {
	ID     string `json:"id,omitempty"`
	Lender string `json:"lender,omitempty"`
	LoanTerms
}

// Invoice is a one-off expense of a property.
type Invoice struct {
	ID     string `json:"id,omitempty"`
	Label  string `json:"label"`
	Date   Date   `json:"date"`
	Amount Money  `json:"amount"`
	Tax1   Money  `json:"tax1"`
	Tax2   Money  `json:"tax2"`
}

// Total is the invoice amount with its taxes.
func (i Invoice) Total() Money { return i.Amount.Add(i.Tax1).Add(i.Tax2) }

// Property is a real-estate asset with everything attached to it.
type Property struct {
	ID           string                   `json:"id,omitempty"`
	Name         string                   `json:"name"`
	CurrentValue Money                    `json:"currentValue"`
	Mortgages    []Mortgage               `json:"mortgages,omitempty"`
	Revenues     []RecurringCashFlowEvent `json:"revenues,omitempty"`
	Expenses     []RecurringCashFlowEvent `json:"expenses,omitempty"`
	Invoices     []Invoice                `json:"invoices,omitempty"`
	Depreciation *DepreciationSetting     `json:"depreciation,omitempty"`

	// Malformed holds the errors of the records that could not be read for
	// this property. A malformed property is not evaluated.
	Malformed error `json:"-"`
}

// MortgageSnapshot is the current period of one mortgage.
type MortgageSnapshot struct {
	ID         string          `json:"id,omitempty"`
	Lender     string          `json:"lender,omitempty"`
	AnnualRate decimal.Decimal `json:"rateAnnual"`
	PeriodSnapshot
}

// PropertySummary holds the figures of one property.
type PropertySummary struct {
	ID                 string             `json:"id,omitempty"`
	Name               string             `json:"name"`
	CurrentValue       Money              `json:"currentValue"`
	Income             Money              `json:"income"`
	Expenses           Money              `json:"expenses"`
	DebtService        Money              `json:"debtService"`
	InterestPortion    Money              `json:"interestPortion"`
	PrincipalPortion   Money              `json:"principalPortion"`
	NetCashflow        Money              `json:"netCashflow"`
	OutstandingDebt    Money              `json:"outstandingDebt"`
	Equity             Money              `json:"equity"`
	NetIncomeBeforeCCA Money              `json:"netIncomeBeforeCca"`
	CCA                Money              `json:"cca"`
	LTV                *decimal.Decimal   `json:"loanToValue"`
	Mortgages          []MortgageSnapshot `json:"mortgages"`
	// Degraded is set when the property could not be evaluated; its figures
	// are then all zero.
	Degraded bool `json:"degraded,omitempty"`

	// Σ rate × outstanding balance, for the portfolio weighted rate.
	rateWeight decimal.Decimal
}

// PortfolioTotals sums the property summaries.
type PortfolioTotals struct {
	CurrentValue       Money            `json:"currentValue"`
	Income             Money            `json:"income"`
	Expenses           Money            `json:"expenses"`
	DebtService        Money            `json:"debtService"`
	InterestPortion    Money            `json:"interestPortion"`
	PrincipalPortion   Money            `json:"principalPortion"`
	NetCashflow        Money            `json:"netCashflow"`
	OutstandingDebt    Money            `json:"outstandingDebt"`
	Equity             Money            `json:"equity"`
	NetIncomeBeforeCCA Money            `json:"netIncomeBeforeCca"`
	CCA                Money            `json:"cca"`
	WeightedRate       *decimal.Decimal `json:"weightedAverageRate"`
	LTV                *decimal.Decimal `json:"loanToValue"`
}

// PortfolioSummary is the summary of all the properties of a user.
type PortfolioSummary struct {
	On         Date              `json:"on"`
	Properties []PropertySummary `json:"properties"`
	Totals     PortfolioTotals   `json:"totals"`
}

// Source reads the properties of a user, with everything attached to them, in
// one batch.
type Source interface {
	Properties(ctx context.Context, userID string) ([]Property, error)
}

// Aggregator computes portfolio summaries from a Source.
type Aggregator struct {
	Source Source
	Log    logrus.FieldLogger

	// Currency is the currency of the portfolio. When empty, it is the most
	// common currency of the properties.
	Currency string
}

// Summary reads all the properties of userID and summarizes them as of now.
func (a *Aggregator) Summary(ctx context.Context, userID string, now time.Time) (*PortfolioSummary, error) {
	props, err := a.Source.Properties(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reading properties of %q: %w", userID, err)
	}
	log := a.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return aggregate(props, now, a.Currency, log.WithField("user", userID)), nil
}

// Aggregate summarizes props as of now, in the most common currency of the
// properties, the first one met winning ties.
//
// Properties are evaluated concurrently. A property that fails to evaluate,
// is malformed, or is in another currency is logged on log and contributes a
// zero summary flagged as degraded. Totals are the sums of the property rows,
// in the order of props.
func Aggregate(props []Property, now time.Time, log logrus.FieldLogger) *PortfolioSummary {
	return aggregate(props, now, "", log)
}

func aggregate(props []Property, now time.Time, currency string, log logrus.FieldLogger) *PortfolioSummary {
	rows := make([]PropertySummary, len(props))
	var wg sync.WaitGroup
	for i, p := range props {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rows[i] = summarizeSafely(p, now, log)
		}()
	}
	wg.Wait()

	// rows in another currency than the portfolio's cannot be summed.
	if currency == "" {
		currency = commonCurrency(rows)
	}
	for i, r := range rows {
		if c := r.currency(); c != "" && !r.Degraded && c != currency {
			warnDegraded(log, props[i], fmt.Sprintf("currency %s, portfolio is in %s", c, currency))
			rows[i] = degradedSummary(props[i])
		}
	}

	return &PortfolioSummary{
		On:         DateOf(now),
		Properties: rows,
		Totals:     totalize(rows),
	}
}

// commonCurrency returns the currency of most evaluated rows, the first one
// met winning ties.
func commonCurrency(rows []PropertySummary) string {
	counts := make(map[string]int)
	best := ""
	for _, r := range rows {
		c := r.currency()
		if c == "" || r.Degraded {
			continue
		}
		counts[c]++
		if best == "" || counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func warnDegraded(log logrus.FieldLogger, p Property, err any) {
	if log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"property": p.ID,
		"name":     p.Name,
		"error":    err,
	}).Warn("property could not be evaluated, counted as zero")
}

// summarizeSafely recovers from a failure (e.g. a currency mismatch) in the
// evaluation of p, and does not evaluate a malformed p.
func summarizeSafely(p Property, now time.Time, log logrus.FieldLogger) (s PropertySummary) {
	if p.Malformed != nil {
		warnDegraded(log, p, p.Malformed.Error())
		return degradedSummary(p)
	}
	defer func() {
		if r := recover(); r != nil {
			warnDegraded(log, p, r)
			s = degradedSummary(p)
		}
	}()
	return SummarizeProperty(p, now)
}

// degradedSummary has currency-less zeros, so that it adds up with any row.
func degradedSummary(p Property) PropertySummary {
	var zero Money
	return PropertySummary{
		ID:                 p.ID,
		Name:               p.Name,
		CurrentValue:       zero,
		Income:             zero,
		Expenses:           zero,
		DebtService:        zero,
		InterestPortion:    zero,
		PrincipalPortion:   zero,
		NetCashflow:        zero,
		OutstandingDebt:    zero,
		Equity:             zero,
		NetIncomeBeforeCCA: zero,
		CCA:                zero,
		Mortgages:          []MortgageSnapshot{},
		Degraded:           true,
	}
}

// SummarizeProperty computes the figures of one property as of now.
//
// Income and expenses are the per-period amounts of the recurring events, not
// multiplied by their occurrences. It panics on a currency mismatch between
// the property's amounts.
func SummarizeProperty(p Property, now time.Time) PropertySummary {
	zero := p.CurrentValue.zero()
	s := PropertySummary{
		ID:           p.ID,
		Name:         p.Name,
		CurrentValue: p.CurrentValue,
		Income:       zero, Expenses: zero,
		DebtService: zero, InterestPortion: zero, PrincipalPortion: zero,
		OutstandingDebt: zero,
		CCA:             zero,
		Mortgages:       make([]MortgageSnapshot, 0, len(p.Mortgages)),
	}

	for _, r := range p.Revenues {
		s.Income = s.Income.Add(r.Amount)
	}
	for _, e := range p.Expenses {
		s.Expenses = s.Expenses.Add(e.Amount)
	}
	for _, inv := range p.Invoices {
		s.Expenses = s.Expenses.Add(inv.Total())
	}

	for _, m := range p.Mortgages {
		snap := ProjectPeriod(m.LoanTerms, now)
		s.Mortgages = append(s.Mortgages, MortgageSnapshot{ID: m.ID, Lender: m.Lender, AnnualRate: m.AnnualRate, PeriodSnapshot: snap})
		s.DebtService = s.DebtService.Add(snap.Payment)
		s.InterestPortion = s.InterestPortion.Add(snap.Interest)
		s.PrincipalPortion = s.PrincipalPortion.Add(snap.Principal)
		s.OutstandingDebt = s.OutstandingDebt.Add(snap.Outstanding)
		s.rateWeight = s.rateWeight.Add(m.AnnualRate.Mul(snap.Outstanding.value))
	}

	s.Income = s.Income.Round()
	s.Expenses = s.Expenses.Round()
	s.NetCashflow = s.Income.Sub(s.Expenses).Sub(s.DebtService)
	s.Equity = s.CurrentValue.Sub(s.OutstandingDebt)
	s.NetIncomeBeforeCCA = s.Income.Sub(s.Expenses).Sub(s.InterestPortion)
	if p.Depreciation != nil {
		s.CCA = CCA(*p.Depreciation, s.NetIncomeBeforeCCA)
	}
	s.LTV = ratio(s.OutstandingDebt, s.CurrentValue)
	return s
}

// currency returns the currency the summary's amounts are in.
func (s PropertySummary) currency() string {
	for _, m := range []Money{s.CurrentValue, s.Income, s.Expenses, s.DebtService, s.OutstandingDebt} {
		if m.cur != "" {
			return m.cur
		}
	}
	return ""
}

// ratio returns a/b, or nil when either is zero.
func ratio(a, b Money) *decimal.Decimal {
	if a.IsZero() || b.IsZero() {
		return nil
	}
	r := a.Ratio(b)
	return &r
}

func totalize(rows []PropertySummary) PortfolioTotals {
	var t PortfolioTotals
	var weight decimal.Decimal
	for _, r := range rows {
		t.CurrentValue = t.CurrentValue.Add(r.CurrentValue)
		t.Income = t.Income.Add(r.Income)
		t.Expenses = t.Expenses.Add(r.Expenses)
		t.DebtService = t.DebtService.Add(r.DebtService)
		t.InterestPortion = t.InterestPortion.Add(r.InterestPortion)
		t.PrincipalPortion = t.PrincipalPortion.Add(r.PrincipalPortion)
		t.NetCashflow = t.NetCashflow.Add(r.NetCashflow)
		t.OutstandingDebt = t.OutstandingDebt.Add(r.OutstandingDebt)
		t.Equity = t.Equity.Add(r.Equity)
		t.NetIncomeBeforeCCA = t.NetIncomeBeforeCCA.Add(r.NetIncomeBeforeCCA)
		t.CCA = t.CCA.Add(r.CCA)
		weight = weight.Add(r.rateWeight)
	}
	if !t.OutstandingDebt.IsZero() {
		w := weight.Div(t.OutstandingDebt.value)
		t.WeightedRate = &w
	}
	t.LTV = ratio(t.OutstandingDebt, t.CurrentValue)
	return t
}
