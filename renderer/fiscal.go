package renderer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
)

// FiscalMarkdown renders a fiscal report: revenues then expenses, by
// property and category, and the net result.
func FiscalMarkdown(r *estate.FiscalReport) string {
	var buf bytes.Buffer
	build(&buf, md.NewMarkdown(&buf).H1(fmt.Sprintf("Fiscal Report %d", r.Year)))
	fiscalSection(&buf, "Revenues", r.Revenues)
	fiscalSection(&buf, "Expenses", r.Expenses)

	doc := md.NewMarkdown(&buf)
	doc.H2("Net")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Revenues", r.Revenues.Total.String()},
			{"Expenses", r.Expenses.Total.String()},
			{md.Bold("Net"), md.Bold(r.Net.SignedString())},
		},
	})
	build(&buf, doc)
	return buf.String()
}

// fiscalSection writes a section, if it has any property.
func fiscalSection(w io.Writer, title string, s estate.FiscalSection) {
	ConditionalBlock(w, func(w io.Writer) bool {
		doc := md.NewMarkdown(w)
		doc.H2(title)
		for _, p := range s.Properties {
			doc.H3(p.Name)
			table := md.TableSet{
				Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
				Header:    []string{"Category", "Item", "Frequency", "Count", "Amount", "Total"},
			}
			for _, c := range p.Categories {
				for _, it := range c.Items {
					table.Rows = append(table.Rows, []string{
						c.Name, it.Label, it.Frequency.String(), itoa(it.Occurrences), it.UnitAmount.String(), it.Total.String(),
					})
				}
				table.Rows = append(table.Rows, []string{md.Bold(c.Name), "", "", "", "", md.Bold(c.Total.String())})
			}
			table.Rows = append(table.Rows, []string{md.Bold("Total " + p.Name), "", "", "", "", md.Bold(p.Total.String())})
			doc.Table(table)
		}
		doc.PlainText(fmt.Sprintf("Total %s: %s", title, s.Total))
		build(w, doc)
		return len(s.Properties) > 0
	})
}

// FiscalCSV writes every item of a fiscal report as CSV.
func FiscalCSV(w io.Writer, r *estate.FiscalReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "kind", "property", "category", "label", "frequency", "occurrences", "unit", "total"}); err != nil {
		return err
	}
	for _, s := range []estate.FiscalSection{r.Revenues, r.Expenses} {
		for _, p := range s.Properties {
			for _, c := range p.Categories {
				for _, it := range c.Items {
					record := []string{
						itoa(r.Year), string(s.Kind), p.Name, c.Name, it.Label, it.Frequency.String(),
						itoa(it.Occurrences), amount(it.UnitAmount), amount(it.Total),
					}
					if err := cw.Write(record); err != nil {
						return err
					}
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
