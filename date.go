package jsoner

import (
	"fmt"
	"time"
)

// Wire layouts for the calendar descriptors.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// LocalDate is a calendar date without a time of day or zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (LocalDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return LocalDate{}, err
	}
	return DateOf(t), nil
}

// String formats d as YYYY-MM-DD.
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsValid reports whether d names an existing day.
func (d LocalDate) IsValid() bool { return DateOf(d.In(time.UTC)) == d }

// In returns midnight of d in loc.
func (d LocalDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}
