package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
)

// PortfolioMarkdown renders the summary of a portfolio: one row per property
// and the totals.
func PortfolioMarkdown(s *estate.PortfolioSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", s.On))
	if len(s.Properties) == 0 {
		doc.PlainText("No properties.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Property", "Value", "Income", "Expenses", "Debt Service", "Net Cash Flow", "Outstanding", "Equity", "LTV"},
	}
	degraded := 0
	for _, p := range s.Properties {
		name := p.Name
		if p.Degraded {
			name += " (!)"
			degraded++
		}
		table.Rows = append(table.Rows, []string{
			name, p.CurrentValue.String(), p.Income.String(), p.Expenses.String(), p.DebtService.String(),
			p.NetCashflow.SignedString(), p.OutstandingDebt.String(), p.Equity.String(), percent(p.LTV),
		})
	}
	t := s.Totals
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), md.Bold(t.CurrentValue.String()), md.Bold(t.Income.String()), md.Bold(t.Expenses.String()),
		md.Bold(t.DebtService.String()), md.Bold(t.NetCashflow.SignedString()), md.Bold(t.OutstandingDebt.String()),
		md.Bold(t.Equity.String()), md.Bold(percent(t.LTV)),
	})
	doc.Table(table)
	if degraded > 0 {
		doc.PlainText(fmt.Sprintf("(!) %d properties could not be evaluated and count as zero.", degraded))
	}

	doc.H2("Debt")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Interest this period", t.InterestPortion.String()},
			{"Principal this period", t.PrincipalPortion.String()},
			{"Weighted average rate", percent(t.WeightedRate)},
		},
	})

	doc.H2("Capital Cost Allowance")
	cca := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Property", "Net Income", "CCA"},
	}
	for _, p := range s.Properties {
		cca.Rows = append(cca.Rows, []string{p.Name, p.NetIncomeBeforeCCA.String(), p.CCA.String()})
	}
	cca.Rows = append(cca.Rows, []string{md.Bold("Total"), md.Bold(t.NetIncomeBeforeCCA.String()), md.Bold(t.CCA.String())})
	doc.Table(cca)

	return doc.String()
}
