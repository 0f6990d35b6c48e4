package borrowings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/platform/dates"
)

func Test_FeePolicy_Compute(t *testing.T) {
	p := DefaultFeePolicy()

	testCases := []struct {
		name      string
		due, asOf string
		want      float64
	}{
		{"returned early", "2024-01-10", "2024-01-05", 0},
		{"returned on due date", "2024-01-10", "2024-01-10", 0},
		{"one day late", "2024-01-10", "2024-01-11", 0.50},
		{"five days late", "2024-01-10", "2024-01-15", 2.50},
		{"across month end", "2024-01-30", "2024-02-02", 1.50},
		{"across leap day", "2024-02-28", "2024-03-01", 1.00},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Compute(dates.MustParse(tc.due), dates.MustParse(tc.asOf))
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}

func Test_FeePolicy_RoundsToCents(t *testing.T) {
	p := FeePolicy{RatePerDay: 0.333}

	got := p.Compute(dates.MustParse("2024-01-01"), dates.MustParse("2024-01-04"))

	assert.Equal(t, 1.0, got)
}

func Test_ComputeStatus(t *testing.T) {
	due := dates.MustParse("2024-01-10")
	open := Borrowing{Status: StatusBorrowed, DueDate: due}
	returned := Borrowing{
		Status:     StatusReturned,
		DueDate:    due,
		ReturnDate: dates.NewNullDate(dates.MustParse("2024-01-20")),
		LateFee:    5,
	}

	assert.Equal(t, StatusBorrowed, ComputeStatus(open, dates.MustParse("2024-01-09")))
	assert.Equal(t, StatusBorrowed, ComputeStatus(open, due))
	assert.Equal(t, StatusOverdue, ComputeStatus(open, dates.MustParse("2024-01-11")))
	assert.Equal(t, StatusReturned, ComputeStatus(returned, dates.MustParse("2030-01-01")))

	p := DefaultFeePolicy()
	assert.Equal(t, 1.0, p.AccruedFee(open, dates.MustParse("2024-01-12")))
	assert.Equal(t, 5.0, p.AccruedFee(returned, dates.MustParse("2030-01-01")))
}
