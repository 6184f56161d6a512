// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dewdate provides a mutable calendar date whose day, month and
// year may be set independently, and in any order, whilst always
// remaining a valid date in the proleptic Gregorian calendar.
//
// Out of range values are rejected only by New. Thereafter, the setters
// clamp their arguments to the nearest valid value and the Increment and
// Decrement methods carry from day to month to year. Changing the month
// or year re-clamps the day if it is no longer valid, for example
// setting the month of January 31 to February yields February 28 or 29.
//
// Year 0 is the earliest representable year. A Date is not safe for
// concurrent use.
package dewdate

import (
	"fmt"
	"math"
	"time"
)

// maxYear is the latest representable year.
const maxYear = math.MaxInt

// Date represents a valid calendar date. The zero value is not valid,
// use New, MustNew, FromCalendarDate or FromTime to create a Date.
type Date struct {
	day   int
	month Month
	year  int
}

// New returns a new Date or an error if any of day, month or year are
// out of range. All out of range fields are reported, and each is
// represented by an *InvalidDateError.
func New(day int, month Month, year int) (*Date, error) {
	if err := validate(day, month, year); err != nil {
		return nil, err
	}
	return &Date{day: day, month: month, year: year}, nil
}

// MustNew is like New but panics on error.
func MustNew(day int, month Month, year int) *Date {
	d, err := New(day, month, year)
	if err != nil {
		panic(err)
	}
	return d
}

// FromCalendarDate is like New but takes its values from cd.
func FromCalendarDate(cd CalendarDate) (*Date, error) {
	return New(cd.Day, cd.Month, cd.Year)
}

// FromTime returns the Date for t in its own location. Years before
// year 0 are clamped to year 0.
func FromTime(t time.Time) *Date {
	d := &Date{day: 1, month: 1}
	d.SetYear(t.Year())
	d.SetMonth(Month(t.Month()))
	d.SetDay(t.Day())
	return d
}

// Day returns the day of the month, 1-31.
func (d *Date) Day() int {
	return d.day
}

// Month returns the month, 1-12.
func (d *Date) Month() Month {
	return d.month
}

// Year returns the year, which is always >= 0.
func (d *Date) Year() int {
	return d.year
}

// CalendarDate returns the current value of d.
func (d *Date) CalendarDate() CalendarDate {
	return CalendarDate{Year: d.year, Month: d.month, Day: d.day}
}

func (d *Date) String() string {
	return d.CalendarDate().String()
}

// SetDay sets the day, clamping it to the range 1 to the number of days
// in the current month.
func (d *Date) SetDay(day int) {
	limit := DaysInMonth(d.year, d.month)
	switch {
	case day < 1:
		d.day = 1
	case day > limit:
		d.day = limit
	default:
		d.day = day
	}
}

// SetMonth sets the month, clamping it to the range 1-12. The day is
// reduced to the last day of the new month if it exceeds it.
func (d *Date) SetMonth(month Month) {
	switch {
	case month < 1:
		d.month = 1
	case month > 12:
		d.month = 12
	default:
		d.month = month
	}
	d.reclampDay()
}

// SetYear sets the year, clamping negative values to 0. The day is
// reduced to the last day of the month if it exceeds it, ie. February 29
// becomes February 28 in a non-leap year.
func (d *Date) SetYear(year int) {
	if year < 0 {
		year = 0
	}
	d.year = year
	d.reclampDay()
}

// reclampDay only ever lowers the day.
func (d *Date) reclampDay() {
	if limit := DaysInMonth(d.year, d.month); d.day > limit {
		d.SetDay(limit)
	}
}

// Set calls SetDay, SetMonth or SetYear according to field. It is a no-op
// for any other value of field.
func (d *Date) Set(field Field, value int) {
	switch field {
	case DayField:
		d.SetDay(value)
	case MonthField:
		d.SetMonth(Month(value))
	case YearField:
		d.SetYear(value)
	}
}

// IncrementDay advances the date by one day, carrying into the month
// and year as required. It is a no-op on the last day of the latest
// representable year.
func (d *Date) IncrementDay() {
	if d.day < DaysInMonth(d.year, d.month) {
		d.day++
		return
	}
	if d.month == 12 && d.year == maxYear {
		return
	}
	d.day = 1
	d.IncrementMonth()
}

// DecrementDay moves the date back by one day, borrowing from the month
// and year as required. January 1 of year 0 is the earliest representable
// date and DecrementDay is a no-op for it.
func (d *Date) DecrementDay() {
	if d.day > 1 {
		d.day--
		return
	}
	if d.month == 1 && d.year == 0 {
		return
	}
	d.DecrementMonth()
	d.day = DaysInMonth(d.year, d.month)
}

// IncrementMonth advances the month by one, December wraps to January of
// the following year. The day is clamped to the last day of the new month.
// December of the latest representable year is left unchanged.
func (d *Date) IncrementMonth() {
	if d.month < 12 {
		d.month++
		d.reclampDay()
		return
	}
	if d.year == maxYear {
		return
	}
	d.month = 1
	d.year++
	d.reclampDay()
}

// DecrementMonth moves the month back by one, January wraps to December of
// the preceding year, except for year 0 where January wraps to December of
// year 0. The day is clamped to the last day of the new month.
func (d *Date) DecrementMonth() {
	if d.month > 1 {
		d.month--
		d.reclampDay()
		return
	}
	d.month = 12
	if d.year > 0 {
		d.year--
	}
	d.reclampDay()
}

// IncrementYear advances the year by one.
func (d *Date) IncrementYear() {
	if d.year < maxYear {
		d.SetYear(d.year + 1)
	}
}

// DecrementYear moves the year back by one, it is a no-op for year 0.
func (d *Date) DecrementYear() {
	if d.year > 0 {
		d.SetYear(d.year - 1)
	}
}

// The Gregorian calendar repeats every 400 years.
const (
	cycleYears  = 400
	cycleMonths = cycleYears * 12
	cycleDays   = 146097
)

// Step applies the Increment (delta > 0) or Decrement (delta < 0) method
// for field abs(delta) times. The result is the same as calling the
// method repeatedly, so the day is re-clamped by every month or year
// passed through, but whole 400 year cycles are skipped in one go and
// stepping stops early once further steps at year 0 or the latest
// representable date cannot change the result.
func (d *Date) Step(field Field, delta int) {
	forward := delta > 0
	n := uint(delta)
	if !forward {
		n = -n
	}
	switch field {
	case DayField:
		d.skipCycles(&n, cycleDays, forward)
		if forward {
			d.repeat(n, d.IncrementDay)
		} else {
			d.repeat(n, d.DecrementDay)
		}
	case MonthField:
		// 4800 consecutive months always include a 28 day February.
		if d.skipCycles(&n, cycleMonths, forward) && d.day > 28 {
			d.day = 28
		}
		if forward {
			d.repeat(n, d.IncrementMonth)
			return
		}
		for ; n > 0; n-- {
			if d.year == 0 && n > 24 {
				// Year 0 repeats every 12 months once the day has been
				// clamped by each of them.
				n = 12 + n%12
			}
			d.DecrementMonth()
		}
	case YearField:
		d.stepYears(n, forward)
	}
}

// skipCycles moves the date by as many whole 400 year cycles as n, measured
// in units of size, allows without passing year 0 or maxYear, and reports
// whether any cycles were skipped.
func (d *Date) skipCycles(n *uint, size uint, forward bool) bool {
	cycles := *n / size
	var room uint
	if forward {
		room = uint(maxYear-d.year) / cycleYears
	} else {
		room = uint(d.year) / cycleYears
	}
	cycles = min(cycles, room)
	if cycles == 0 {
		return false
	}
	if forward {
		d.year += int(cycles * cycleYears)
	} else {
		d.year -= int(cycles * cycleYears)
	}
	*n -= cycles * size
	return true
}

// repeat calls fn n times, stopping as soon as fn leaves the date unchanged.
func (d *Date) repeat(n uint, fn func()) {
	for ; n > 0; n-- {
		before := *d
		fn()
		if *d == before {
			return
		}
	}
}

func (d *Date) stepYears(n uint, forward bool) {
	year := d.year
	switch {
	case forward && n > uint(maxYear-year):
		year = maxYear
	case forward:
		year += int(n)
	case n > uint(year):
		year = 0
	default:
		year -= int(n)
	}
	if year == d.year {
		return
	}
	// The years either side of a leap year are never leap years, so
	// February 29 cannot survive a step in either direction.
	if d.month == 2 && d.day == 29 {
		d.day = 28
	}
	d.SetYear(year)
}

// Format implements fmt.Formatter. The %v and %s verbs use the
// YYYY-MM-DD form, %+v includes the month name.
func (d *Date) Format(f fmt.State, c rune) {
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "%d %v %04d", d.day, d.month, d.year)
		return
	}
	fmt.Fprint(f, d.String())
}
