// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command dewdate exercises dewdate.Date from the command line: it can
// report the length of a month, step a date forwards and backwards, apply
// text as it would be typed into a date entry form and replay recorded
// edit sessions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"github.com/ozzyDrive/dewdate"
	"github.com/ozzyDrive/dewdate/form"
)

const cmdSpec = `name: dewdate
summary: inspect and edit calendar dates that remain valid as their fields change
commands:
  - name: days
    summary: print the number of days in the specified month and year
    arguments:
      - <month>
      - <year>
  - name: step
    summary: apply increment and decrement operations (+day, -day, +month, -month, +year, -year) to a date
    arguments:
      - <day>
      - <month>
      - <year>
      - <op>
      - ...
  - name: set
    summary: enter text into the day, month and year fields of a date entry form, in that order
    arguments:
      - <day>
      - <month>
      - <year>
  - name: replay
    summary: replay an edit session read from a YAML file
    arguments:
      - <session.yaml>
`

type CommonFlags struct {
	cmdutil.LoggingFlags
}

type StepFlags struct {
	CommonFlags
	Trace bool `subcmd:"trace,false,'print the date after every operation'"`
}

type SetFlags struct {
	CommonFlags
	Day   string `subcmd:"day,,'text entered into the day field'"`
	Month string `subcmd:"month,,'text entered into the month field'"`
	Year  string `subcmd:"year,,'text entered into the year field'"`
}

var (
	cmdSet *subcmd.CommandSetYAML

	stdout io.Writer = os.Stdout
)

func init() {
	cmdSet = subcmd.MustFromYAML(cmdSpec)
	cmdSet.Set("days").MustRunner(days, &CommonFlags{})
	cmdSet.Set("step").MustRunner(step, &StepFlags{})
	cmdSet.Set("set").MustRunner(set, &SetFlags{})
	cmdSet.Set("replay").MustRunner(replay, &CommonFlags{})
}

func main() {
	cmdSet.MustDispatch(context.Background())
}

func withLogger(ctx context.Context, cl CommonFlags) (context.Context, func(), error) {
	logger, err := cl.LoggingConfig().NewLogger()
	if err != nil {
		return ctx, nil, err
	}
	return ctxlog.WithLogger(ctx, logger.Logger), func() { logger.Close() }, nil
}

func parseInts(names []string, args []string) ([]int, error) {
	errs := &errors.M{}
	vals := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			errs.Append(fmt.Errorf("invalid %v: %q", names[i], arg))
			continue
		}
		vals[i] = v
	}
	return vals, errs.Err()
}

func parseDate(args []string) (*dewdate.Date, error) {
	vals, err := parseInts([]string{"day", "month", "year"}, args)
	if err != nil {
		return nil, err
	}
	return dewdate.New(vals[0], dewdate.Month(vals[1]), vals[2])
}

func days(ctx context.Context, values any, args []string) error {
	cl := values.(*CommonFlags)
	ctx, done, err := withLogger(ctx, *cl)
	if err != nil {
		return err
	}
	defer done()
	vals, err := parseInts([]string{"month", "year"}, args)
	if err != nil {
		return err
	}
	month, year := dewdate.Month(vals[0]), vals[1]
	if !month.Valid() {
		return fmt.Errorf("invalid month: %v", vals[0])
	}
	if year < 0 {
		return fmt.Errorf("invalid year: %v", year)
	}
	n := dewdate.DaysInMonth(year, month)
	ctxlog.Logger(ctx).Debug("days", "month", month.String(), "year", year, "leap", dewdate.IsLeap(year), "days", n)
	fmt.Fprintln(stdout, n)
	return nil
}

func parseOp(op string) (dewdate.Field, int, error) {
	if len(op) < 2 || (op[0] != '+' && op[0] != '-') {
		return 0, 0, fmt.Errorf("invalid operation %q, expected one of +day, -day, +month, -month, +year or -year", op)
	}
	field, err := form.ParseField(op[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid operation %q: %w", op, err)
	}
	if op[0] == '-' {
		return field, -1, nil
	}
	return field, 1, nil
}

func step(ctx context.Context, values any, args []string) error {
	cl := values.(*StepFlags)
	ctx, done, err := withLogger(ctx, cl.CommonFlags)
	if err != nil {
		return err
	}
	defer done()
	d, err := parseDate(args[:3])
	if err != nil {
		return err
	}
	type stepOp struct {
		field dewdate.Field
		delta int
	}
	ops := make([]stepOp, 0, len(args)-3)
	for _, arg := range args[3:] {
		field, delta, err := parseOp(arg)
		if err != nil {
			return err
		}
		ops = append(ops, stepOp{field, delta})
	}
	logger := ctxlog.Logger(ctx)
	for i, op := range ops {
		d.Step(op.field, op.delta)
		logger.Debug("step", "op", args[3+i], "date", d.String())
		if cl.Trace {
			fmt.Fprintf(stdout, "%v: %v\n", args[3+i], d)
		}
	}
	if !cl.Trace {
		fmt.Fprintln(stdout, d)
	}
	return nil
}

func set(ctx context.Context, values any, args []string) error {
	cl := values.(*SetFlags)
	ctx, done, err := withLogger(ctx, cl.CommonFlags)
	if err != nil {
		return err
	}
	defer done()
	d, err := parseDate(args)
	if err != nil {
		return err
	}
	f := form.New(d)
	for _, in := range []struct {
		field dewdate.Field
		text  string
	}{
		{dewdate.DayField, cl.Day},
		{dewdate.MonthField, cl.Month},
		{dewdate.YearField, cl.Year},
	} {
		if len(in.text) == 0 {
			continue
		}
		if err := f.Input(ctx, in.field, in.text); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, f)
	return nil
}

func replay(ctx context.Context, values any, args []string) error {
	cl := values.(*CommonFlags)
	ctx, done, err := withLogger(ctx, *cl)
	if err != nil {
		return err
	}
	defer done()
	s, err := form.ParseSessionFile(ctx, args[0])
	if err != nil {
		return err
	}
	ctxlog.Logger(ctx).Info("replaying session", "file", args[0], "edits", len(s.Edits))
	f, err := s.Run(ctx)
	if f != nil {
		fmt.Fprintln(stdout, f)
	}
	return err
}
