package estate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cadence is the number of loan payment periods per year.
//
// The well-known cadences each have their own date stepping rule. Any other
// positive value steps by round(365/cadence) days.
type Cadence int

const (
	CadenceAnnual      Cadence = 1
	CadenceSemiAnnual  Cadence = 2
	CadenceQuarterly   Cadence = 4
	CadenceMonthly     Cadence = 12
	CadenceSemiMonthly Cadence = 24
	CadenceBiWeekly    Cadence = 26
	CadenceWeekly      Cadence = 52
)

// cadenceSteps holds the payment date stepping rule of each well-known cadence.
//
// These are calendar approximations: 26 bi-weekly steps make 364 days and 24
// semi-monthly steps make 360. Loan projections depend on the drift being
// exactly this one.
var cadenceSteps = map[Cadence]func(Date) Date{
	CadenceMonthly:     func(d Date) Date { return d.AddMonth(1) },
	CadenceSemiMonthly: func(d Date) Date { return d.Add(15) },
	CadenceBiWeekly:    func(d Date) Date { return d.Add(14) },
	CadenceWeekly:      func(d Date) Date { return d.Add(7) },
	CadenceQuarterly:   func(d Date) Date { return d.AddMonth(3) },
	CadenceSemiAnnual:  func(d Date) Date { return d.AddMonth(6) },
	CadenceAnnual:      func(d Date) Date { return d.AddMonth(12) },
}

var cadenceNames = map[Cadence]string{
	CadenceAnnual:      "annual",
	CadenceSemiAnnual:  "semi-annual",
	CadenceQuarterly:   "quarterly",
	CadenceMonthly:     "monthly",
	CadenceSemiMonthly: "semi-monthly",
	CadenceBiWeekly:    "bi-weekly",
	CadenceWeekly:      "weekly",
}

// Next returns the payment date following d.
func (c Cadence) Next(d Date) Date {
	if step, ok := cadenceSteps[c]; ok {
		return step(d)
	}
	if c <= 0 {
		return d
	}
	return d.Add(int(math.Round(365 / float64(c))))
}

// PeriodDays is the average length of a period, in days.
func (c Cadence) PeriodDays() float64 { return 365 / float64(c) }

// Periods converts a duration in months into a number of periods, rounded.
func (c Cadence) Periods(months int) int {
	return int(math.Round(float64(months) / 12 * float64(c)))
}

func (c Cadence) String() string {
	if name, ok := cadenceNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c)) + "/year"
}

// ParseCadence parses a cadence by name ("monthly", "bi-weekly", ...) or by
// its number of periods per year ("12", "26", ...).
func ParseCadence(s string) (Cadence, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "/year")
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("invalid cadence %q: periods per year must be positive", s)
		}
		return Cadence(n), nil
	}
	switch strings.NewReplacer("-", "", "_", "", " ", "").Replace(s) {
	case "annual", "annually", "yearly":
		return CadenceAnnual, nil
	case "semiannual", "semiannually":
		return CadenceSemiAnnual, nil
	case "quarterly":
		return CadenceQuarterly, nil
	case "monthly":
		return CadenceMonthly, nil
	case "semimonthly", "twicemonthly":
		return CadenceSemiMonthly, nil
	case "biweekly", "fortnightly":
		return CadenceBiWeekly, nil
	case "weekly":
		return CadenceWeekly, nil
	default:
		return 0, fmt.Errorf("unknown cadence %q", s)
	}
}

// UnmarshalJSON accepts both the number of periods per year and the cadence name.
func (c *Cadence) UnmarshalJSON(data []byte) error {
	var v any
	if err := unmarshalNumbers(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return fmt.Errorf("invalid cadence %s: %w", x, err)
		}
		*c = Cadence(n)
		return nil
	case string:
		parsed, err := ParseCadence(x)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("invalid cadence %s", data)
	}
}
