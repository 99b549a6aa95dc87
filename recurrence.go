package estate

import (
	"fmt"
	"iter"
	"strings"
)

// Frequency is how often a recurring cash flow occurs.
type Frequency int

const (
	OneTime Frequency = iota
	Weekly
	Monthly
	Quarterly
	Annual
)

func (f Frequency) String() string {
	switch f {
	case OneTime:
		return "one-time"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Annual:
		return "annual"
	default:
		return fmt.Sprintf("frequency(%d)", int(f))
	}
}

// ParseFrequency parses a frequency name.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s))) {
	case "onetime", "once":
		return OneTime, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "annual", "annually", "yearly", "year":
		return Annual, nil
	default:
		return OneTime, fmt.Errorf("unknown frequency %q", s)
	}
}

func (f Frequency) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// next returns the occurrence following d. Month based frequencies step
// from d itself: a day clamped in a short month stays clamped afterwards, as
// loan payment dates do.
func (f Frequency) next(d Date) Date {
	switch f {
	case Weekly:
		return d.Add(7)
	case Monthly:
		return d.AddMonth(1)
	case Quarterly:
		return d.AddMonth(3)
	case Annual:
		return d.AddMonth(12)
	default:
		return d
	}
}

// Kind tells revenues and expenses apart.
type Kind string

const (
	Revenue Kind = "revenue"
	Expense Kind = "expense"
)

// RecurringCashFlowEvent is a revenue or an expense that repeats at a
// frequency from its start date, up to its optional end date.
type RecurringCashFlowEvent struct {
	ID        string    `json:"id,omitempty"`
	Kind      Kind      `json:"kind"`
	Label     string    `json:"label"`
	Amount    Money     `json:"amount"` // per occurrence
	Frequency Frequency `json:"frequency"`
	StartDate Date      `json:"startDate"`
	EndDate   Date      `json:"endDate"`            // zero when open-ended
	Category  string    `json:"category,omitempty"` // expenses only
}

// maxRecurrenceSteps bounds the enumeration of occurrences.
const maxRecurrenceSteps = 10000

// Occurrences yields the dates on which e occurs within rng, in order.
//
// Dates are stepped one by one from the start date. Weekly steps are skipped
// in one jump up to rng. At most maxRecurrenceSteps steps are taken; a longer
// enumeration is cut short rather than failing.
func Occurrences(e RecurringCashFlowEvent, rng Range) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if !e.EndDate.IsZero() && e.EndDate.Before(rng.From) {
			return
		}
		if e.StartDate.After(rng.To) {
			return
		}
		if e.Frequency == OneTime {
			if rng.Contains(e.StartDate) {
				yield(e.StartDate)
			}
			return
		}
		if e.Frequency < OneTime || e.Frequency > Annual {
			return
		}

		end := rng.To
		if !e.EndDate.IsZero() && e.EndDate.Before(end) {
			end = e.EndDate
		}
		on := e.StartDate
		if e.Frequency == Weekly && on.Before(rng.From) {
			on = on.Add(7 * ((rng.From.DaysSince(on) + 6) / 7))
		}
		for range maxRecurrenceSteps {
			if on.After(end) {
				return
			}
			if !on.Before(rng.From) && !yield(on) {
				return
			}
			next := e.Frequency.next(on)
			if !next.After(on) {
				return
			}
			on = next
		}
	}
}

// CountOccurrences returns how many times e occurs in the calendar year.
//
// A monthly event starting on 2024-01-31 occurs on 2024-02-29, then on the
// 29th of every following month.
func CountOccurrences(e RecurringCashFlowEvent, year int) int {
	count := 0
	for range Occurrences(e, YearRange(year)) {
		count++
	}
	return count
}
