// Package dates holds the calendar arithmetic the renewal cycle is built
// on. All dates in the pipeline are UTC midnights; renewal periods are
// aligned to month boundaries.
package dates

import "time"

// Midnight truncates t to a UTC midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonthStart returns the first month boundary strictly after t.
// A date already on a month start still advances to the next month.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// AddMonthStarts applies NextMonthStart n times. Renewal dates are
// computed as twelve month starts after the issuance date, which lands a
// month-start-aligned issuance exactly one year on and rounds a mid-month
// issuance back to the enclosing cycle boundary.
func AddMonthStarts(t time.Time, n int) time.Time {
	if n <= 0 {
		return t
	}

	// First application rolls forward to a boundary, the rest are whole
	// months.
	return NextMonthStart(t).AddDate(0, n-1, 0)
}

// MonthEnd returns the last day of t's month, at midnight.
func MonthEnd(t time.Time) time.Time {
	return NextMonthStart(t).AddDate(0, 0, -1)
}

// MonthEndOffset returns the last day of the month n months after t's.
func MonthEndOffset(t time.Time, n int) time.Time {
	return MonthEnd(MonthStart(t).AddDate(0, n, 0))
}

// MaxDate returns the later of a and b.
func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}

	return a
}
