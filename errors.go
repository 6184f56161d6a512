// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dewdate

import (
	"fmt"

	"cloudeng.io/errors"
)

// ErrInvalidDate is matched, via errors.Is, by every error returned
// when constructing a Date from out of range values.
var ErrInvalidDate = errors.New("invalid date")

// Field identifies one of the day, month or year fields of a Date.
type Field int

const (
	DayField Field = iota
	MonthField
	YearField
)

func (f Field) String() string {
	switch f {
	case DayField:
		return "day"
	case MonthField:
		return "month"
	case YearField:
		return "year"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// InvalidDateError records a single out of range field. Max is -1
// when the field has no upper bound.
type InvalidDateError struct {
	Field Field
	Value int
	Min   int
	Max   int
}

func (e *InvalidDateError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("%v: %v %d must be at least %d", ErrInvalidDate, e.Field, e.Value, e.Min)
	}
	return fmt.Sprintf("%v: %v %d must be between %d and %d", ErrInvalidDate, e.Field, e.Value, e.Min, e.Max)
}

// Is supports errors.Is for ErrInvalidDate.
func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

func validate(day int, month Month, year int) error {
	errs := &errors.M{}
	if !month.Valid() {
		errs.Append(&InvalidDateError{Field: MonthField, Value: int(month), Min: 1, Max: 12})
		// Without a valid month only the lower bound of day can be checked.
		if day < 1 {
			errs.Append(&InvalidDateError{Field: DayField, Value: day, Min: 1, Max: -1})
		}
	} else if limit := DaysInMonth(max(year, 0), month); day < 1 || day > limit {
		errs.Append(&InvalidDateError{Field: DayField, Value: day, Min: 1, Max: limit})
	}
	if year < 0 {
		errs.Append(&InvalidDateError{Field: YearField, Value: year, Min: 0, Max: -1})
	}
	return errs.Err()
}
