package estate

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Default category names of the fiscal report.
const (
	RevenueCategory = "Revenue"
	OtherCategory   = "Other"
	InvoiceCategory = "Invoices"
)

// FiscalItem is one event of the fiscal report, over the year.
type FiscalItem struct {
	Label       string    `json:"label"`
	Frequency   Frequency `json:"frequency"`
	Occurrences int       `json:"occurrences"`
	UnitAmount  Money     `json:"unitAmount"`
	Total       Money     `json:"total"`
}

// FiscalCategory groups the items of a property sharing a category.
type FiscalCategory struct {
	Name  string       `json:"name"`
	Items []FiscalItem `json:"items"`
	Total Money        `json:"total"`
}

// FiscalProperty groups the categories of a property.
type FiscalProperty struct {
	ID         string           `json:"id,omitempty"`
	Name       string           `json:"name"`
	Categories []FiscalCategory `json:"categories"`
	Total      Money            `json:"total"`
}

// FiscalSection is either the revenue or the expense side of the report.
type FiscalSection struct {
	Kind       Kind             `json:"kind"`
	Properties []FiscalProperty `json:"properties"`
	Total      Money            `json:"total"`
}

// FiscalReport lists the yearly revenues and expenses of properties.
type FiscalReport struct {
	Year     int           `json:"year"`
	Revenues FiscalSection `json:"revenues"`
	Expenses FiscalSection `json:"expenses"`
	Net      Money         `json:"net"`
}

type fiscalOptions struct {
	lang     language.Tag
	invoices bool
}

// FiscalOption configures NewFiscalReport.
type FiscalOption func(*fiscalOptions)

// WithLanguage sets the language used to sort the report. Default is English.
func WithLanguage(tag language.Tag) FiscalOption {
	return func(o *fiscalOptions) { o.lang = tag }
}

// WithoutInvoices leaves the invoices out of the expenses.
func WithoutInvoices() FiscalOption {
	return func(o *fiscalOptions) { o.invoices = false }
}

// NewFiscalReport computes the fiscal report of props for a calendar year.
//
// Each event contributes its occurrences in the year times its amount.
// Events that do not occur in the year are left out. Invoices dated in the
// year are listed under InvoiceCategory. Properties, categories and items are
// sorted by name in the report's language; equal names keep the input order.
func NewFiscalReport(year int, props []Property, opts ...FiscalOption) *FiscalReport {
	o := fiscalOptions{lang: language.English, invoices: true}
	for _, opt := range opts {
		opt(&o)
	}
	col := collate.New(o.lang)

	r := &FiscalReport{
		Year:     year,
		Revenues: FiscalSection{Kind: Revenue, Properties: []FiscalProperty{}},
		Expenses: FiscalSection{Kind: Expense, Properties: []FiscalProperty{}},
	}
	window := YearRange(year)
	for _, p := range props {
		if fp, ok := fiscalProperty(p, p.Revenues, nil, year, func(RecurringCashFlowEvent) string { return RevenueCategory }); ok {
			r.Revenues.Properties = append(r.Revenues.Properties, fp)
		}
		var invoices []Invoice
		if o.invoices {
			for _, inv := range p.Invoices {
				if window.Contains(inv.Date) {
					invoices = append(invoices, inv)
				}
			}
		}
		if fp, ok := fiscalProperty(p, p.Expenses, invoices, year, expenseCategory); ok {
			r.Expenses.Properties = append(r.Expenses.Properties, fp)
		}
	}

	r.Revenues.sortAndSum(col)
	r.Expenses.sortAndSum(col)
	r.Net = r.Revenues.Total.Sub(r.Expenses.Total)
	return r
}

func expenseCategory(e RecurringCashFlowEvent) string {
	if e.Category == "" {
		return OtherCategory
	}
	return e.Category
}

// fiscalProperty groups the events by category. It returns false when nothing
// occurs in the year.
func fiscalProperty(p Property, events []RecurringCashFlowEvent, invoices []Invoice, year int, category func(RecurringCashFlowEvent) string) (FiscalProperty, bool) {
	fp := FiscalProperty{ID: p.ID, Name: p.Name}
	index := make(map[string]int)
	add := func(name string, item FiscalItem) {
		i, ok := index[name]
		if !ok {
			i = len(fp.Categories)
			index[name] = i
			fp.Categories = append(fp.Categories, FiscalCategory{Name: name})
		}
		fp.Categories[i].Items = append(fp.Categories[i].Items, item)
	}

	for _, e := range events {
		n := CountOccurrences(e, year)
		if n == 0 {
			continue
		}
		add(category(e), FiscalItem{
			Label:       e.Label,
			Frequency:   e.Frequency,
			Occurrences: n,
			UnitAmount:  e.Amount,
			Total:       e.Amount.Mul(newDecimal(n)).Round(),
		})
	}
	for _, inv := range invoices {
		add(InvoiceCategory, FiscalItem{
			Label:       inv.Label,
			Frequency:   OneTime,
			Occurrences: 1,
			UnitAmount:  inv.Total(),
			Total:       inv.Total().Round(),
		})
	}
	return fp, len(fp.Categories) > 0
}

// sortAndSum sorts every level of the section and computes the subtotals.
func (s *FiscalSection) sortAndSum(col *collate.Collator) {
	s.Total = Money{}
	for i := range s.Properties {
		p := &s.Properties[i]
		p.Total = Money{}
		for j := range p.Categories {
			c := &p.Categories[j]
			c.Total = Money{}
			slices.SortStableFunc(c.Items, func(a, b FiscalItem) int { return col.CompareString(a.Label, b.Label) })
			for _, item := range c.Items {
				c.Total = c.Total.Add(item.Total)
			}
			p.Total = p.Total.Add(c.Total)
		}
		slices.SortStableFunc(p.Categories, func(a, b FiscalCategory) int { return col.CompareString(a.Name, b.Name) })
		s.Total = s.Total.Add(p.Total)
	}
	slices.SortStableFunc(s.Properties, func(a, b FiscalProperty) int { return col.CompareString(a.Name, b.Name) })
}
