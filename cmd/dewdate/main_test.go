// Copyright 2025 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &strings.Builder{}
	stdout = out
	defer func() { stdout = os.Stdout }()
	err := cmdSet.DispatchWithArgs(context.Background(), os.Args[0], args...)
	return out.String(), err
}

func TestCommands(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.yaml")
	err := os.WriteFile(session, []byte(`date: {day: 31, month: 1, year: 2023}
edits:
  - step: month
  - input: day
    text: "0"
`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		args []string
		out  string
	}{
		{[]string{"days", "2", "2024"}, "29\n"},
		{[]string{"days", "2", "1900"}, "28\n"},
		{[]string{"days", "11", "0"}, "30\n"},
		{[]string{"step", "--trace=false", "31", "12", "2023", "+day"}, "2024-01-01\n"},
		{[]string{"step", "--trace=false", "1", "1", "2024", "-day"}, "2023-12-31\n"},
		{[]string{"step", "--trace=false", "31", "1", "2023", "+month", "+year", "-y"}, "2023-02-28\n"},
		{[]string{"step", "--trace=true", "29", "2", "2024", "+year", "-year"}, "+year: 2025-02-28\n-year: 2024-02-28\n"},
		{[]string{"set", "--day=45", "--month=", "--year=", "15", "4", "2023"}, "30/04/2023\n"},
		{[]string{"set", "--day=31", "--month=2", "--year=0", "15", "1", "2024"}, "29/02/0\n"},
		{[]string{"replay", session}, "0/02/2023\n"},
	} {
		out, err := run(t, tc.args...)
		if err != nil {
			t.Errorf("%v: %v", tc.args, err)
			continue
		}
		if got, want := out, tc.out; got != want {
			t.Errorf("%v: got %q, want %q", tc.args, got, want)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	for _, tc := range []struct {
		args []string
		err  string
	}{
		{[]string{"days", "13", "2024"}, "invalid month: 13"},
		{[]string{"days", "x", "2024"}, `invalid month: "x"`},
		{[]string{"step", "--trace=false", "31", "2", "2024", "+day"}, "invalid date: day 31 must be between 1 and 29"},
		{[]string{"step", "--trace=false", "1", "2", "2024", "day"}, `invalid operation "day"`},
		{[]string{"step", "--trace=false", "1", "2", "2024", "+hour"}, "unknown field"},
		{[]string{"set", "--day=1a", "--month=", "--year=", "1", "2", "2024"}, "non-numeric input"},
		{[]string{"replay", filepath.Join(t.TempDir(), "missing.yaml")}, "no such file"},
	} {
		_, err := run(t, tc.args...)
		if err == nil || !strings.Contains(err.Error(), tc.err) {
			t.Errorf("%v: missing or unexpected error: got %v, want %v", tc.args, err, tc.err)
		}
	}
}

func TestCommandLogging(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		args []string
		want []string
	}{
		{[]string{"days", "2", "2024"}, []string{`"msg":"days"`, `"month":"February"`, `"leap":true`, `"days":29`}},
		{[]string{"step", "31", "1", "2023", "+month"}, []string{`"msg":"step"`, `"date":"2023-02-28"`}},
	} {
		logfile := filepath.Join(dir, tc.args[0]+".log")
		args := append([]string{tc.args[0], "--log-level=3", "--log-format=json", "--log-file=" + logfile}, tc.args[1:]...)
		if _, err := run(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
			continue
		}
		buf, err := os.ReadFile(logfile)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range tc.want {
			if !strings.Contains(string(buf), want) {
				t.Errorf("%v: %s does not contain %v", args, buf, want)
			}
		}
	}
}
