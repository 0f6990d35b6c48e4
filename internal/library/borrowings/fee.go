package borrowings

import (
	"math"

	"library-backend/internal/platform/dates"
)

const DefaultRatePerDay = 0.50

// FeePolicy is the single late-fee rule: whole calendar days past the due
// date times RatePerDay, rounded to cents.
type FeePolicy struct {
	RatePerDay float64
}

func DefaultFeePolicy() FeePolicy { return FeePolicy{RatePerDay: DefaultRatePerDay} }

// DaysLate is max(0, asOf - due).
func (p FeePolicy) DaysLate(due, asOf dates.Date) int {
	if d := asOf.DaysSince(due); d > 0 {
		return d
	}
	return 0
}

func (p FeePolicy) Compute(due, asOf dates.Date) float64 {
	return roundCents(float64(p.DaysLate(due, asOf)) * p.RatePerDay)
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }

// ComputeStatus derives the display status as of a date. Overdue is never stored.
func ComputeStatus(b Borrowing, asOf dates.Date) Status {
	if b.ReturnDate.Valid || b.Status == StatusReturned {
		return StatusReturned
	}
	if b.DueDate.Before(asOf) {
		return StatusOverdue
	}
	return StatusBorrowed
}

// AccruedFee is what Return would charge as of asOf; the final fee once returned.
func (p FeePolicy) AccruedFee(b Borrowing, asOf dates.Date) float64 {
	if ComputeStatus(b, asOf) == StatusReturned {
		return b.LateFee
	}
	return p.Compute(b.DueDate, asOf)
}
