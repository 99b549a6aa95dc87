// Package renderer formats estate reports as markdown, for the terminal, or
// as CSV, for spreadsheets.
package renderer

import (
	"bytes"
	"io"
	"strconv"

	"github.com/etnz/estate"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// percent formats a ratio that may be undefined.
func percent(ratio *decimal.Decimal) string { return estate.OptionalPercent(ratio) }

// rate formats an annual rate.
func rate(r decimal.Decimal) string { return estate.PercentOf(r).String() }

// amount formats m for CSV: no symbol, no grouping, two decimals.
func amount(m estate.Money) string { return m.Decimal().StringFixed(2) }

func itoa(i int) string { return strconv.Itoa(i) }

// build flushes doc to w, its writer, ending with a blank line so that
// another document can follow.
func build(w io.Writer, doc *md.Markdown) {
	_ = doc.Build()
	_, _ = io.WriteString(w, "\n\n")
}
