// Package estate is the valuation engine of a real-estate back office. It turns
// the static terms of mortgages and the definitions of recurring cash flows
// into the figures a property owner reports on.
//
// The core functionalities include:
//   - Payment: the fixed periodic payment that amortizes a loan (annuity formula).
//   - Schedule: the full period-by-period amortization table of a loan, with its
//     contractual term summary and calendar-year subtotals.
//   - Projection: the "current period" of a loan as of an instant, computed
//     without building the whole schedule, for bulk portfolio reads.
//   - Recurrence: how many times a recurring revenue or expense occurs in a
//     calendar year, and the fiscal report built on top of it.
//   - Aggregation: per-property cashflow, equity and tax depreciation (CCA), and
//     portfolio-wide weighted mortgage rate and loan-to-value.
//
// Every function of the engine is pure: inputs are read-only snapshots loaded
// by the store package, outputs are recomputed on each call and never
// persisted. Degenerate inputs (zero principal, zero frequency, ...) produce a
// documented neutral result instead of an error.
//
// This package serves as the foundation of the `estc` command-line tool.
package estate
