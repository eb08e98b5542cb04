// Package hiring holds the company hiring-rate arithmetic.
//
// A company's hiring rate is the share of hired applications over all
// applications to every job the company owns, as an integer percentage.
// Rounding is half-up; for non-negative inputs this matches the
// "round half toward +Inf" behaviour of the dashboard that displays it.
package hiring

import "math"

// Snapshot is the (hired, total) pair read at one status transition.
type Snapshot struct {
	Hired int
	Total int
}

// Rate returns round(100*hired/total) with half-up rounding, or 0 when
// there are no applications. The result is clamped to [0, 100].
func (s Snapshot) Rate() int {
	if s.Total <= 0 || s.Hired <= 0 {
		return 0
	}
	if s.Hired >= s.Total {
		return 100
	}
	return (200*s.Hired + s.Total) / (2 * s.Total)
}

// Percent returns round(100*part/whole) half-up, or 0 when whole is 0.
// Negative results are allowed, which growth figures need.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(whole) + 0.5))
}

// Growth compares a current total with the total at an earlier cut-off.
// With no earlier baseline any current value counts as 100% growth.
func Growth(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Percent(current-previous, previous)
}
