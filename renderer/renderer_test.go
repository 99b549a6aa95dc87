package renderer

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/etnz/estate"
	"github.com/shopspring/decimal"
)

func terms() estate.LoanTerms {
	return estate.LoanTerms{
		Principal:          estate.M(10000, "CAD"),
		AnnualRate:         decimal.RequireFromString("0.05"),
		TermMonths:         12,
		AmortizationMonths: 12,
		StartDate:          estate.NewDate(2024, time.January, 1),
		Cadence:            estate.CadenceMonthly,
	}
}

func properties() []estate.Property {
	start := estate.NewDate(2024, time.January, 1)
	return []estate.Property{{
		ID:           "maple",
		Name:         "Maple St",
		CurrentValue: estate.M(400000, "CAD"),
		Mortgages: []estate.Mortgage{{ID: "m1", Lender: "First Bank", LoanTerms: estate.LoanTerms{
			Principal: estate.M(100000, "CAD"), AnnualRate: decimal.RequireFromString("0.04"),
			TermMonths: 60, AmortizationMonths: 300, StartDate: start, Cadence: estate.CadenceMonthly,
		}}},
		Revenues: []estate.RecurringCashFlowEvent{{Kind: estate.Revenue, Label: "Rent", Amount: estate.M(2500, "CAD"), Frequency: estate.Monthly, StartDate: start}},
		Expenses: []estate.RecurringCashFlowEvent{{Kind: estate.Expense, Label: "Property tax", Amount: estate.M(300, "CAD"), Frequency: estate.Monthly, StartDate: start, Category: "Tax"}},
	}}
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output does not contain %q:\n%s", w, got)
		}
	}
}

func TestScheduleMarkdown(t *testing.T) {
	s := estate.NewSchedule(terms())
	got := ScheduleMarkdown(s)
	assertContains(t, got,
		"# Amortization Schedule",
		"## Annual Breakdown",
		"## Payments",
		"5.00%",
		"2024-12-01",
		s.Payment.String(),
	)
	_, payments, _ := strings.Cut(got, "## Payments")
	if n := strings.Count(payments, "2024-"); n != 12 {
		t.Errorf("got %d payment rows, want 12", n)
	}
}

func TestScheduleMarkdownDegenerate(t *testing.T) {
	tt := terms()
	tt.AmortizationMonths = 0
	got := ScheduleMarkdown(estate.NewSchedule(tt))
	assertContains(t, got, "cannot be amortized")
	if strings.Contains(got, "## Payments") {
		t.Errorf("degenerate schedule lists payments:\n%s", got)
	}
}

func TestScheduleCSV(t *testing.T) {
	s := estate.NewSchedule(terms())
	var b strings.Builder
	if err := ScheduleCSV(&b, s); err != nil {
		t.Fatalf("ScheduleCSV() unexpected error: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(records) != 13 {
		t.Fatalf("got %d records, want header + 12", len(records))
	}
	first := records[1]
	if first[0] != "1" || first[1] != "2024-01-01" || first[2] != s.Entries[0].Payment.Decimal().StringFixed(2) || first[3] != "41.67" {
		t.Errorf("first record = %v", first)
	}
}

func TestSnapshotMarkdown(t *testing.T) {
	p := properties()[0]
	snap := estate.MortgageSnapshot{
		ID: "m1", Lender: "First Bank", AnnualRate: p.Mortgages[0].AnnualRate,
		PeriodSnapshot: estate.ProjectPeriod(p.Mortgages[0].LoanTerms, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
	got := SnapshotMarkdown(snap, estate.NewDate(2024, 2, 1))
	assertContains(t, got, "# Mortgage with First Bank on 2024-02-01", "4.00%", "99,805.49", "332.68", "195.16")
}

func TestPortfolioMarkdown(t *testing.T) {
	s := estate.Aggregate(properties(), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), nil)
	got := PortfolioMarkdown(s)
	assertContains(t, got, "# Portfolio on 2024-02-01", "Maple St", "**Total**", "1,557.16", "24.95%", "## Capital Cost Allowance")
	if strings.Contains(got, "(!)") {
		t.Errorf("no property should be degraded:\n%s", got)
	}

	empty := estate.Aggregate(nil, time.Now(), nil)
	assertContains(t, PortfolioMarkdown(empty), "No properties.")
}

func TestFiscalMarkdown(t *testing.T) {
	r := estate.NewFiscalReport(2024, properties())
	got := FiscalMarkdown(r)
	assertContains(t, got,
		"# Fiscal Report 2024",
		"## Revenues",
		"### Maple St",
		"| Revenue",
		"30,000.00",
		"## Expenses",
		"| Tax",
		"3,600.00",
		"## Net",
		"+$26,400.00",
	)
	if strings.Index(got, "## Revenues") > strings.Index(got, "## Expenses") {
		t.Errorf("expenses are listed before revenues")
	}

	// a year without any event has no section.
	got = FiscalMarkdown(estate.NewFiscalReport(2000, properties()))
	if strings.Contains(got, "## Revenues") || strings.Contains(got, "## Expenses") {
		t.Errorf("empty year has sections:\n%s", got)
	}
	assertContains(t, got, "## Net")
}

func TestFiscalCSV(t *testing.T) {
	var b strings.Builder
	if err := FiscalCSV(&b, estate.NewFiscalReport(2024, properties())); err != nil {
		t.Fatalf("FiscalCSV() unexpected error: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	want := [][]string{
		{"year", "kind", "property", "category", "label", "frequency", "occurrences", "unit", "total"},
		{"2024", "revenue", "Maple St", "Revenue", "Rent", "monthly", "12", "2500.00", "30000.00"},
		{"2024", "expense", "Maple St", "Tax", "Property tax", "monthly", "12", "300.00", "3600.00"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d: %v", len(records), len(want), records)
	}
	for i := range want {
		if strings.Join(records[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("record %d = %v, want %v", i, records[i], want[i])
		}
	}
}
