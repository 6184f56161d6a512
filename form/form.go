// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package form provides the text input handling for editing a dewdate.Date
// via three separate numeric fields, one each for the day, month and year,
// as would be found in a typical date entry form. Text is entered one
// field at a time and may be transiently empty or zero whilst the user is
// typing, such values are displayed but not applied to the date.
package form

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/ozzyDrive/dewdate"
)

var (
	// ErrNonNumeric is returned for input containing anything other than
	// the digits 0-9.
	ErrNonNumeric = errors.New("non-numeric input")
	// ErrUnknownField is returned for a field other than the day, month or
	// year.
	ErrUnknownField = errors.New("unknown field")
)

// ParseField parses one of day, month or year, or their first letter,
// in any case.
func ParseField(name string) (dewdate.Field, error) {
	switch strings.ToLower(name) {
	case "day", "d":
		return dewdate.DayField, nil
	case "month", "m":
		return dewdate.MonthField, nil
	case "year", "y":
		return dewdate.YearField, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownField)
}

func checkField(field dewdate.Field) error {
	switch field {
	case dewdate.DayField, dewdate.MonthField, dewdate.YearField:
		return nil
	}
	return fmt.Errorf("%v: %w", field, ErrUnknownField)
}

// Form holds a Date and any pending, ie. not yet applied, text for each
// of its fields.
type Form struct {
	date    *dewdate.Date
	pending map[dewdate.Field]string
}

// New returns a Form for editing d.
func New(d *dewdate.Date) *Form {
	return &Form{date: d, pending: map[dewdate.Field]string{}}
}

// Date returns the Date being edited.
func (f *Form) Date() *dewdate.Date {
	return f.date
}

func (f *Form) value(field dewdate.Field) int {
	switch field {
	case dewdate.DayField:
		return f.date.Day()
	case dewdate.MonthField:
		return int(f.date.Month())
	default:
		return f.date.Year()
	}
}

func isDigits(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// Input applies the text entered into the specified field. Text that
// contains non-digits is rejected with ErrNonNumeric. Empty text, or text
// that represents zero, is recorded as pending and is not applied to the
// date. All other values are applied via Date.Set and are hence clamped
// to the valid range for that field.
func (f *Form) Input(ctx context.Context, field dewdate.Field, text string) error {
	if err := checkField(field); err != nil {
		return err
	}
	if !isDigits(text) {
		return fmt.Errorf("%v: %q: %w", field, text, ErrNonNumeric)
	}
	logger := ctxlog.Logger(ctx)
	typed := 0
	if len(text) > 0 {
		n, err := strconv.Atoi(text)
		switch {
		case err == nil:
			typed = n
		case errors.Is(err, strconv.ErrRange):
			typed = math.MaxInt
		default:
			return fmt.Errorf("%v: %q: %w", field, text, err)
		}
	}
	if typed == 0 {
		f.pending[field] = text
		logger.Debug("pending input", "field", field.String(), "text", text)
		return nil
	}
	delete(f.pending, field)
	day := f.date.Day()
	f.date.Set(field, typed)
	if stored := f.value(field); stored != typed {
		logger.Debug("input corrected", "field", field.String(), "typed", typed, "stored", stored)
	}
	if field != dewdate.DayField && f.date.Day() != day {
		logger.Debug("day re-clamped", "field", field.String(), "from", day, "to", f.date.Day())
	}
	return nil
}

// Step calls Date.Step and discards all pending text.
func (f *Form) Step(ctx context.Context, field dewdate.Field, delta int) error {
	if err := checkField(field); err != nil {
		return err
	}
	clear(f.pending)
	before := f.date.CalendarDate()
	f.date.Step(field, delta)
	ctxlog.Logger(ctx).Debug("step", "field", field.String(), "delta", delta, "from", before.String(), "to", f.date.String())
	return nil
}

// Text returns the text to be displayed for field, that is, any pending
// text or otherwise the current value padded with leading zeros to two
// digits for the day and month and four for the year.
func (f *Form) Text(field dewdate.Field) string {
	if p, ok := f.pending[field]; ok {
		return p
	}
	switch field {
	case dewdate.DayField:
		return fmt.Sprintf("%02d", f.date.Day())
	case dewdate.MonthField:
		return fmt.Sprintf("%02d", int(f.date.Month()))
	case dewdate.YearField:
		return fmt.Sprintf("%04d", f.date.Year())
	}
	return ""
}

// String returns the display text of all three fields as DD/MM/YYYY.
func (f *Form) String() string {
	return f.Text(dewdate.DayField) + "/" + f.Text(dewdate.MonthField) + "/" + f.Text(dewdate.YearField)
}
