package estate

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	today := Today()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2024-02-29 ", NewDate(2024, time.February, 29), false},
		{"2024-03-05T10:00:00Z", NewDate(2024, time.March, 5), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},

		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", today.Add(1), false},
		{"0d", today, false},
		{"1x", Date{}, true},
		{"+0d", today, false},
		{"-2w", today.Add(-14), false},
		{"+1m", today.AddMonth(1), false},
		{"-1y", today.AddMonth(-12), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAddMonth(t *testing.T) {
	testCases := []struct {
		from Date
		n    int
		want Date
	}{
		{NewDate(2024, time.January, 15), 1, NewDate(2024, time.February, 15)},
		{NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 29)},
		{NewDate(2023, time.January, 31), 1, NewDate(2023, time.February, 28)},
		{NewDate(2024, time.March, 31), 1, NewDate(2024, time.April, 30)},
		{NewDate(2024, time.November, 30), 3, NewDate(2025, time.February, 28)},
		{NewDate(2024, time.February, 29), 12, NewDate(2025, time.February, 28)},
		{NewDate(2024, time.March, 31), -1, NewDate(2024, time.February, 29)},
		{NewDate(2024, time.May, 10), 0, NewDate(2024, time.May, 10)},
	}
	for _, tc := range testCases {
		t.Run(tc.from.String(), func(t *testing.T) {
			if got := tc.from.AddMonth(tc.n); got != tc.want {
				t.Errorf("%v.AddMonth(%d) = %v, want %v", tc.from, tc.n, got, tc.want)
			}
		})
	}
}

func TestDaysAndMonthsSince(t *testing.T) {
	a := NewDate(2024, time.January, 31)
	b := NewDate(2024, time.March, 1)
	if got := b.DaysSince(a); got != 30 {
		t.Errorf("DaysSince = %d, want 30", got)
	}
	if got := a.DaysSince(b); got != -30 {
		t.Errorf("DaysSince = %d, want -30", got)
	}
	if got := b.MonthsSince(a); got != 2 {
		t.Errorf("MonthsSince = %d, want 2", got)
	}
	if got := NewDate(2025, time.February, 1).MonthsSince(NewDate(2024, time.December, 31)); got != 2 {
		t.Errorf("MonthsSince across years = %d, want 2", got)
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		On  Date `json:"on"`
		End Date `json:"end"`
	}
	if err := json.Unmarshal([]byte(`{"on":"2024-7-1","end":null}`), &v); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if want := NewDate(2024, time.July, 1); v.On != want {
		t.Errorf("On = %v, want %v", v.On, want)
	}
	if !v.End.IsZero() {
		t.Errorf("End = %v, want zero", v.End)
	}

	got, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if want := `{"on":"2024-07-01","end":null}`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(NewDate(2024, time.December, 31), NewDate(2024, time.January, 1))
	if r != YearRange(2024) {
		t.Errorf("NewRange() = %v, want %v", r, YearRange(2024))
	}
	for _, d := range []Date{NewDate(2024, 1, 1), NewDate(2024, 6, 15), NewDate(2024, 12, 31)} {
		if !r.Contains(d) {
			t.Errorf("%v.Contains(%v) = false, want true", r, d)
		}
	}
	for _, d := range []Date{NewDate(2023, 12, 31), NewDate(2025, 1, 1)} {
		if r.Contains(d) {
			t.Errorf("%v.Contains(%v) = true, want false", r, d)
		}
	}
}
