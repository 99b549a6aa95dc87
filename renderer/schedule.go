package renderer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
)

// ScheduleMarkdown renders an amortization schedule: summary, term, yearly
// breakdown and every payment.
func ScheduleMarkdown(s *estate.Schedule) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Amortization Schedule")
	t := s.Terms
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Loan", ""},
		Rows: [][]string{
			{"Principal", t.Principal.String()},
			{"Annual rate", rate(t.AnnualRate)},
			{"Amortization", fmt.Sprintf("%d months", t.AmortizationMonths)},
			{"Term", fmt.Sprintf("%d months", t.TermMonths)},
			{"Frequency", t.Cadence.String()},
			{"Start", t.StartDate.String()},
			{md.Bold("Payment"), md.Bold(s.Payment.String())},
		},
	})

	if len(s.Entries) == 0 {
		doc.PlainText("This loan cannot be amortized: no payment is scheduled.")
		return doc.String()
	}

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Payments", itoa(len(s.Entries))},
			{"Payoff date", s.PayoffDate.String()},
			{"Principal", s.TotalPrincipal.String()},
			{"Interest", s.TotalInterest.String()},
			{md.Bold("Total paid"), md.Bold(s.TotalPaid.String())},
		},
	})

	doc.H2("Term")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Payments", itoa(s.Term.Periods)},
			{"End date", s.Term.EndDate.String()},
			{"Principal paid", s.Term.Principal.String()},
			{"Interest paid", s.Term.Interest.String()},
			{"Balance at renewal", s.Term.BalanceRemaining.String()},
		},
	})

	doc.H2("Annual Breakdown")
	annual := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", "Interest", "Principal", "Ending Balance"},
	}
	for _, y := range s.Annual {
		annual.Rows = append(annual.Rows, []string{itoa(y.Year), y.Interest.String(), y.Principal.String(), y.Balance.String()})
	}
	doc.Table(annual)

	doc.H2("Payments")
	payments := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"#", "Date", "Payment", "Interest", "Principal", "Balance"},
	}
	for _, e := range s.Entries {
		payments.Rows = append(payments.Rows, []string{
			itoa(e.Period), e.Date.String(), e.Payment.String(), e.Interest.String(), e.Principal.String(), e.Balance.String(),
		})
	}
	doc.Table(payments)

	return doc.String()
}

// ScheduleCSV writes the payments of a schedule as CSV, one line per payment.
func ScheduleCSV(w io.Writer, s *estate.Schedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"period", "date", "payment", "interest", "principal", "balance"}); err != nil {
		return err
	}
	for _, e := range s.Entries {
		record := []string{itoa(e.Period), e.Date.String(), amount(e.Payment), amount(e.Interest), amount(e.Principal), amount(e.Balance)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
