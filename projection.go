package estate

import (
	"math"
	"time"
)

// PeriodSnapshot is the state of a loan during its current period.
type PeriodSnapshot struct {
	Elapsed      int   `json:"elapsedPeriods"`
	Payment      Money `json:"payment"`
	Interest     Money `json:"interest"`
	Principal    Money `json:"principal"`
	Outstanding  Money `json:"outstandingBalance"` // before the current payment
	BalanceAfter Money `json:"balanceAfterPayment"`
}

// ProjectPeriod returns the current period of a loan as of now, without
// building its schedule.
//
// Elapsed periods are counted on an average period of 365/cadence days and
// clamped to the amortization length. The balance is then rolled forward with
// the same rounding as NewSchedule, so that the snapshot matches the schedule
// entry of the same period.
//
// Terms that cannot be amortized give an empty snapshot whose outstanding
// balance is the (non-negative) principal.
func ProjectPeriod(terms LoanTerms, now time.Time) PeriodSnapshot {
	if terms.degenerate() {
		balance := MaxMoney(terms.Principal, terms.Principal.zero())
		zero := terms.Principal.zero()
		return PeriodSnapshot{
			Payment:      zero,
			Interest:     zero,
			Principal:    zero,
			Outstanding:  balance,
			BalanceAfter: balance,
		}
	}

	total := terms.TotalPeriods()
	elapsed := 0
	if start := terms.StartDate.Time(); now.After(start) {
		days := now.Sub(start).Hours() / 24
		elapsed = int(math.Floor(days / terms.Cadence.PeriodDays()))
		elapsed = max(0, min(elapsed, total))
	}

	payment := terms.EffectivePayment()
	rate := terms.RatePerPeriod()
	balance := terms.Principal
	for range elapsed {
		balance = amortize(balance, payment, rate).Balance
	}

	current := amortize(balance, payment, rate)
	return PeriodSnapshot{
		Elapsed:      elapsed,
		Payment:      current.Payment,
		Interest:     current.Interest,
		Principal:    current.Principal,
		Outstanding:  balance,
		BalanceAfter: current.Balance,
	}
}
