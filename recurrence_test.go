package estate

import (
	"slices"
	"testing"
	"time"
)

func event(f Frequency, start, end Date) RecurringCashFlowEvent {
	return RecurringCashFlowEvent{Label: "test", Amount: CAD(100), Frequency: f, StartDate: start, EndDate: end}
}

func TestCountOccurrences(t *testing.T) {
	testCases := []struct {
		name  string
		event RecurringCashFlowEvent
		year  int
		want  int
	}{
		{"monthly open", event(Monthly, NewDate(2024, 1, 1), Date{}), 2024, 12},
		{"weekly four weeks", event(Weekly, NewDate(2024, 1, 1), NewDate(2024, 1, 28)), 2024, 4},
		{"weekly across years", event(Weekly, NewDate(2023, 12, 30), Date{}), 2024, 52},
		{"monthly from a 31st", event(Monthly, NewDate(2023, 1, 31), Date{}), 2024, 12},
		{"monthly clamped then stepped", event(Monthly, NewDate(2024, 1, 31), NewDate(2024, 3, 30)), 2024, 3},
		{"monthly ending mid year", event(Monthly, NewDate(2020, 5, 10), NewDate(2024, 6, 9)), 2024, 5},
		{"quarterly", event(Quarterly, NewDate(2023, 11, 15), Date{}), 2024, 4},
		{"annual leap day", event(Annual, NewDate(2020, 2, 29), Date{}), 2024, 1},
		{"annual before", event(Annual, NewDate(2020, 2, 29), Date{}), 2019, 0},
		{"one-time inside", event(OneTime, NewDate(2024, 12, 31), Date{}), 2024, 1},
		{"one-time outside", event(OneTime, NewDate(2023, 12, 31), Date{}), 2024, 0},
		{"starts after", event(Monthly, NewDate(2025, 1, 1), Date{}), 2024, 0},
		{"ended before", event(Monthly, NewDate(2020, 1, 1), NewDate(2023, 12, 31)), 2024, 0},
		{"end on start", event(Weekly, NewDate(2024, 3, 1), NewDate(2024, 3, 1)), 2024, 1},
		{"unknown frequency", event(Frequency(42), NewDate(2024, 1, 1), Date{}), 2024, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountOccurrences(tc.event, tc.year); got != tc.want {
				t.Errorf("CountOccurrences() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOccurrencesDates(t *testing.T) {
	e := event(Monthly, NewDate(2023, 1, 31), Date{})
	got := slices.Collect(Occurrences(e, NewRange(NewDate(2024, 1, 15), NewDate(2024, 4, 30))))
	// February 2023 clamped the day to the 28th for good.
	want := []Date{NewDate(2024, 1, 28), NewDate(2024, 2, 28), NewDate(2024, 3, 28), NewDate(2024, 4, 28)}
	if !slices.Equal(got, want) {
		t.Errorf("Occurrences() = %v, want %v", got, want)
	}

	// stop early
	var first []Date
	for d := range Occurrences(e, YearRange(2024)) {
		first = append(first, d)
		if len(first) == 2 {
			break
		}
	}
	if len(first) != 2 {
		t.Errorf("early break gave %d dates", len(first))
	}
}

func TestOccurrencesFollowPaymentDates(t *testing.T) {
	start := NewDate(2024, 1, 31)
	e := event(Monthly, start, Date{})
	want := start
	for on := range Occurrences(e, YearRange(2024)) {
		if on != want {
			t.Fatalf("occurrence %v, want %v", on, want)
		}
		want = CadenceMonthly.Next(want)
	}
}

func TestOccurrencesCap(t *testing.T) {
	e := event(Weekly, NewDate(2000, time.January, 1), Date{})
	n := 0
	for range Occurrences(e, NewRange(NewDate(2000, 1, 1), NewDate(2400, 1, 1))) {
		n++
	}
	if n != maxRecurrenceSteps {
		t.Errorf("got %d occurrences, want the cap %d", n, maxRecurrenceSteps)
	}
}

func TestParseFrequency(t *testing.T) {
	testCases := []struct {
		input string
		want  Frequency
		err   bool
	}{
		{"one-time", OneTime, false},
		{"once", OneTime, false},
		{"one_time", OneTime, false},
		{"Weekly", Weekly, false},
		{" monthly ", Monthly, false},
		{"quarterly", Quarterly, false},
		{"annual", Annual, false},
		{"yearly", Annual, false},
		{"daily", OneTime, true},
		{"", OneTime, true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseFrequency(tc.input)
			if (err != nil) != tc.err {
				t.Fatalf("ParseFrequency(%q) error = %v, wantErr %v", tc.input, err, tc.err)
			}
			if !tc.err && got != tc.want {
				t.Errorf("ParseFrequency(%q) = %v, want %v", tc.input, got, tc.want)
			}
			if !tc.err {
				back, _ := ParseFrequency(got.String())
				if back != got {
					t.Errorf("ParseFrequency(%q) = %v, want %v", got.String(), back, got)
				}
			}
		})
	}
}
