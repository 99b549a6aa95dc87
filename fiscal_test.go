package estate

import (
	"testing"

	"golang.org/x/text/language"
)

func fiscalPortfolio() []Property {
	return []Property{
		{
			ID:   "z",
			Name: "Zèbre",
			Revenues: []RecurringCashFlowEvent{
				{Label: "Rent", Amount: CAD(800), Frequency: Monthly, StartDate: NewDate(2024, 7, 1)},
			},
		},
		{
			ID:   "e",
			Name: "érable",
			Revenues: []RecurringCashFlowEvent{
				{Label: "Rent", Amount: CAD(1000), Frequency: Monthly, StartDate: NewDate(2024, 1, 1)},
				{Label: "Parking", Amount: CAD(50), Frequency: Monthly, StartDate: NewDate(2024, 1, 1), EndDate: NewDate(2024, 3, 31)},
			},
			Expenses: []RecurringCashFlowEvent{
				{Label: "School tax", Amount: CAD(300), Frequency: Quarterly, StartDate: NewDate(2024, 1, 15), Category: "Tax"},
				{Label: "City tax", Amount: CAD(150), Frequency: Annual, StartDate: NewDate(2020, 3, 1), Category: "Tax"},
				{Label: "Home", Amount: CAD(600), Frequency: Annual, StartDate: NewDate(2023, 6, 1), Category: "Insurance"},
				{Label: "Snow removal", Amount: CAD(50), Frequency: Weekly, StartDate: NewDate(2024, 1, 1), EndDate: NewDate(2024, 1, 28)},
				{Label: "Next year", Amount: CAD(999), Frequency: Monthly, StartDate: NewDate(2025, 1, 1)},
			},
			Invoices: []Invoice{
				{Label: "Plumber", Date: NewDate(2024, 5, 1), Amount: CAD(100), Tax1: CAD(5), Tax2: CAD(10)},
				{Label: "Old", Date: NewDate(2023, 5, 1), Amount: CAD(100)},
			},
		},
	}
}

func TestFiscalReport(t *testing.T) {
	r := NewFiscalReport(2024, fiscalPortfolio())

	if got := len(r.Revenues.Properties); got != 2 {
		t.Fatalf("revenue properties = %d, want 2", got)
	}
	// collation sorts the accented name with the e, not after z.
	if r.Revenues.Properties[0].Name != "érable" || r.Revenues.Properties[1].Name != "Zèbre" {
		t.Errorf("revenue properties = %q, %q, want érable then Zèbre", r.Revenues.Properties[0].Name, r.Revenues.Properties[1].Name)
	}
	erable := r.Revenues.Properties[0]
	if len(erable.Categories) != 1 || erable.Categories[0].Name != RevenueCategory {
		t.Fatalf("revenue categories = %+v, want one %q", erable.Categories, RevenueCategory)
	}
	items := erable.Categories[0].Items
	if items[0].Label != "Parking" || items[0].Occurrences != 3 || items[1].Label != "Rent" || items[1].Occurrences != 12 {
		t.Errorf("revenue items = %+v, want Parking x3 then Rent x12", items)
	}
	assertMoney(t, "érable revenues", erable.Total, CAD(12150))
	assertMoney(t, "Zèbre revenues", r.Revenues.Properties[1].Total, CAD(4800))
	assertMoney(t, "Revenues", r.Revenues.Total, CAD(16950))

	if got := len(r.Expenses.Properties); got != 1 {
		t.Fatalf("expense properties = %d, want 1", got)
	}
	expenses := r.Expenses.Properties[0]
	var names []string
	for _, c := range expenses.Categories {
		names = append(names, c.Name)
	}
	want := []string{"Insurance", InvoiceCategory, OtherCategory, "Tax"}
	if len(names) != len(want) {
		t.Fatalf("expense categories = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expense categories = %v, want %v", names, want)
			break
		}
	}
	tax := expenses.Categories[3]
	if tax.Items[0].Label != "City tax" || tax.Items[1].Label != "School tax" {
		t.Errorf("tax items = %+v, want City then School", tax.Items)
	}
	assertMoney(t, "Tax", tax.Total, CAD(1350))
	assertMoney(t, "Other", expenses.Categories[2].Total, CAD(200))
	assertMoney(t, "Invoices", expenses.Categories[1].Total, CAD(115))
	assertMoney(t, "Expenses", r.Expenses.Total, CAD(2265))
	assertMoney(t, "Net", r.Net, CAD(14685))
}

func TestFiscalReportOptions(t *testing.T) {
	r := NewFiscalReport(2024, fiscalPortfolio(), WithoutInvoices(), WithLanguage(language.French))
	for _, c := range r.Expenses.Properties[0].Categories {
		if c.Name == InvoiceCategory {
			t.Errorf("invoices are listed")
		}
	}
	assertMoney(t, "Expenses", r.Expenses.Total, CAD(2150))
}

func TestFiscalReportEmptyYear(t *testing.T) {
	r := NewFiscalReport(1999, fiscalPortfolio())
	if len(r.Revenues.Properties) != 0 || len(r.Expenses.Properties) != 0 {
		t.Errorf("got %d revenue and %d expense properties, want none", len(r.Revenues.Properties), len(r.Expenses.Properties))
	}
	if !r.Net.IsZero() {
		t.Errorf("Net = %v, want 0", r.Net)
	}
}
