package progress

import (
	"math"
	"time"
)

// daysBetween returns the elapsed time between last and now in whole days,
// rounded up. Any positive gap under 24h counts as one day.
func daysBetween(last, now time.Time) int {
	elapsed := math.Abs(float64(now.Sub(last)))
	return int(math.Ceil(elapsed / float64(24*time.Hour)))
}

// nextStreak computes the streak after a completion at now. A gap of zero
// only happens when no time has passed since the previous completion.
func nextStreak(current int, last time.Time, now time.Time) int {
	if last.IsZero() {
		return 1
	}
	switch d := daysBetween(last, now); {
	case d == 0:
		return current
	case d == 1:
		return current + 1
	default:
		return 1
	}
}

// NextMilestone returns the next streak length worth celebrating.
func NextMilestone(current int) int {
	for _, m := range []int{3, 7, 14, 30} {
		if m > current {
			return m
		}
	}
	return ((current / 30) + 1) * 30
}
