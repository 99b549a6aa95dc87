package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
)

// SnapshotMarkdown renders the current period of a mortgage.
func SnapshotMarkdown(m estate.MortgageSnapshot, on estate.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := "Mortgage"
	if m.Lender != "" {
		title = "Mortgage with " + m.Lender
	}
	doc.H1(fmt.Sprintf("%s on %s", title, on))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Current period", ""},
		Rows: [][]string{
			{"Annual rate", rate(m.AnnualRate)},
			{"Elapsed payments", itoa(m.Elapsed)},
			{"Outstanding balance", m.Outstanding.String()},
			{"Payment", m.Payment.String()},
			{"Interest", m.Interest.String()},
			{"Principal", m.Principal.String()},
			{md.Bold("Balance after payment"), md.Bold(m.BalanceAfter.String())},
		},
	})
	return doc.String()
}
