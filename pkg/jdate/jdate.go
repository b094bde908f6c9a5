// Package jdate wraps the Persian (Jalali) calendar conversions the pipeline
// needs. All persisted dates use the fixed-width "YYYY/MM/DD" Jalali form.
package jdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Date is a Jalali calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// FromGregorian converts a Gregorian civil date to its Jalali equivalent.
func FromGregorian(year, month, day int) Date {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, ptime.Iran())
	pt := ptime.New(t)
	return Date{Year: pt.Year(), Month: int(pt.Month()), Day: pt.Day()}
}

// FromTime converts a time.Time to the Jalali date of its civil day.
func FromTime(t time.Time) Date {
	return FromGregorian(t.Year(), int(t.Month()), t.Day())
}

// Gregorian returns the Gregorian time at noon (Iran) of the date.
func (d Date) Gregorian() time.Time {
	pt := ptime.Date(d.Year, ptime.Month(d.Month), d.Day, 12, 0, 0, 0, ptime.Iran())
	return pt.Time()
}

// String formats the date in the fixed-width YYYY/MM/DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Weekday returns the Persian weekday name of the date.
func (d Date) Weekday() string {
	pt := ptime.New(d.Gregorian())
	return pt.Weekday().String()
}

// Valid reports whether the date is a real Jalali calendar date. The check
// round-trips through the Gregorian calendar so month lengths and leap years
// are honored.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return false
	}
	return FromTime(d.Gregorian()) == d
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// Compare orders two dates: -1 if d < other, 0 if equal, +1 if d > other.
func (d Date) Compare(other Date) int {
	a := d.Year*10000 + d.Month*100 + d.Day
	b := other.Year*10000 + other.Month*100 + other.Day
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Parse parses a YYYY/MM/DD Jalali date string.
func Parse(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("jdate: malformed date %q", s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Date{}, fmt.Errorf("jdate: malformed date %q: %w", s, err)
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if !d.Valid() {
		return Date{}, fmt.Errorf("jdate: invalid calendar date %q", s)
	}
	return d, nil
}
