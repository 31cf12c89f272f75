package app

import "time"

// AddBusinessDays advances from start by the given number of business days,
// skipping Saturdays and Sundays. No holiday calendar is applied.
func AddBusinessDays(start time.Time, days int) time.Time {
	t := start
	for i := 0; i < days; i++ {
		t = t.AddDate(0, 0, 1)
		for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			t = t.AddDate(0, 0, 1)
		}
	}
	return t
}

// DeliveryEstimate returns the earliest and latest delivery dates for a
// min/max business-day window starting at from. Callers validate
// minDays <= maxDays before calling; the result for an inverted window is
// undefined.
func DeliveryEstimate(from time.Time, minDays, maxDays int) (earliest, latest time.Time) {
	return AddBusinessDays(from, minDays), AddBusinessDays(from, maxDays)
}
