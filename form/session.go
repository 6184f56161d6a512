// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package form

import (
	"context"
	"fmt"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/ozzyDrive/dewdate"
)

// Session represents a starting date and a sequence of edits to be
// applied to it, typically read from a YAML file of the form:
//
//	date: {day: 31, month: 1, year: 2023}
//	edits:
//	  - step: month
//	    delta: -1
//	  - input: day
//	    text: "0"
type Session struct {
	Date  SessionDate `yaml:"date"`
	Edits []Edit      `yaml:"edits"`
}

// SessionDate is the initial date for a Session.
type SessionDate struct {
	Day   int `yaml:"day"`
	Month int `yaml:"month"`
	Year  int `yaml:"year"`
}

// Edit is either a step or an input. Delta defaults to 1 for a step.
type Edit struct {
	Step  string `yaml:"step"`
	Delta *int   `yaml:"delta"`
	Input string `yaml:"input"`
	Text  string `yaml:"text"`
}

func (e Edit) String() string {
	if len(e.Step) > 0 {
		delta := 1
		if e.Delta != nil {
			delta = *e.Delta
		}
		return fmt.Sprintf("step %v %+d", e.Step, delta)
	}
	return fmt.Sprintf("input %v %q", e.Input, e.Text)
}

// ParseSession parses a YAML Session specification. Unrecognised fields,
// such as a misspelt delta, are reported as errors.
func ParseSession(spec []byte) (Session, error) {
	var s Session
	if err := cmdyaml.ParseConfigStrict(spec, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// ParseSessionFile reads and parses a YAML Session specification in the
// same manner as ParseSession.
func ParseSessionFile(ctx context.Context, path string) (Session, error) {
	var s Session
	if err := cmdyaml.ParseConfigFileStrict(ctx, path, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (f *Form) apply(ctx context.Context, e Edit) error {
	switch {
	case len(e.Step) > 0 && len(e.Input) > 0:
		return errors.New("only one of step or input may be specified")
	case len(e.Step) > 0:
		field, err := ParseField(e.Step)
		if err != nil {
			return err
		}
		delta := 1
		if e.Delta != nil {
			delta = *e.Delta
		}
		return f.Step(ctx, field, delta)
	case len(e.Input) > 0:
		field, err := ParseField(e.Input)
		if err != nil {
			return err
		}
		return f.Input(ctx, field, e.Text)
	}
	return errors.New("one of step or input must be specified")
}

// Run creates the session's date and applies each of its edits in turn.
// An error is returned immediately if the date is invalid. Errors
// encountered applying individual edits are collected and returned,
// annotated with the index of the offending edit, once all edits have
// been attempted, and the Form is returned alongside them.
func (s Session) Run(ctx context.Context) (*Form, error) {
	d, err := dewdate.New(s.Date.Day, dewdate.Month(s.Date.Month), s.Date.Year)
	if err != nil {
		return nil, fmt.Errorf("session date: %w", err)
	}
	f := New(d)
	logger := ctxlog.Logger(ctx)
	errs := &errors.M{}
	for i, e := range s.Edits {
		if err := f.apply(ctx, e); err != nil {
			logger.Warn("edit failed", "edit", i, "op", e.String(), "error", err)
			errs.Append(errors.Annotate(fmt.Sprintf("edit %d", i), err))
		}
	}
	return f, errs.Err()
}
