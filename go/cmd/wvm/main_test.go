// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp(&out, &errOut)
	err := app.Run(append([]string{"wvm"}, args...))
	return out.String(), errOut.String(), exitCode(err)
}

func TestRun_PrintsResultingStack(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"demo program":      {[]string{"run"}, "0x0\n"},
		"add":               {[]string{"run", "6009600a01"}, "0x13\n"},
		"byte":              {[]string{"run", "0x60ff601f1a"}, "0xff\n"},
		"top of stack last": {[]string{"run", "600160026003"}, "0x1\n0x2\n0x3\n"},
		"empty stack":       {[]string{"run", "00"}, ""},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			out, errOut, code := runApp(t, test.args...)
			if code != 0 {
				t.Fatalf("unexpected exit code %d, stderr: %s", code, errOut)
			}
			if test.want != out {
				t.Errorf("unexpected output, wanted %q, got %q", test.want, out)
			}
		})
	}
}

func TestRun_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		args []string
		want int
	}{
		"valid program":       {[]string{"run", "6001"}, 0},
		"odd length":          {[]string{"run", "600"}, exitInvalidProgram},
		"non-hex character":   {[]string{"run", "60zz"}, exitInvalidProgram},
		"unknown opcode":      {[]string{"run", "20"}, exitRunFailed},
		"stack underflow":     {[]string{"run", "01"}, exitRunFailed},
		"truncated immediate": {[]string{"run", "61ff"}, exitRunFailed},
		"stack overflow":      {[]string{"run", "--max-stack", "1", "60016001"}, exitRunFailed},
		"step limit":          {[]string{"run", "--step-limit", "1", "60016001"}, exitRunFailed},
		"invalid stack limit": {[]string{"run", "--max-stack", "0", "6001"}, exitFailure},
		"trace and stats":     {[]string{"run", "--trace", "--stats", "6001"}, exitFailure},
		"unknown verbosity":   {[]string{"--verbosity", "loud", "run", "6001"}, exitFailure},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, got := runApp(t, test.args...)
			if test.want != got {
				t.Errorf("unexpected exit code, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestRun_TraceIsWrittenToErrorOutput(t *testing.T) {
	out, errOut, code := runApp(t, "run", "--trace", "6009600a01")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	if want := "0, PUSH1, -empty-\n2, PUSH1, 0x9\n4, ADD, 0xa\n"; !strings.Contains(errOut, want) {
		t.Errorf("trace %q not found in %q", want, errOut)
	}
	if want := "0x13\n"; want != out {
		t.Errorf("unexpected output, wanted %q, got %q", want, out)
	}
}

func TestRun_StatisticsArePrinted(t *testing.T) {
	out, _, code := runApp(t, "run", "--stats", "6009600a01")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	for _, want := range []string{"0x13\n", "Steps: 3", "ADD"} {
		if !strings.Contains(out, want) {
			t.Errorf("did not find %q in %q", want, out)
		}
	}
}

func TestRun_DebugLoggingIsWrittenToErrorOutput(t *testing.T) {
	_, errOut, code := runApp(t, "--verbosity", "debug", "run", "6001")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	if want := "running program of 2 bytes"; !strings.Contains(errOut, want) {
		t.Errorf("did not find %q in %q", want, errOut)
	}
}

func TestDisasm_ListsInstructions(t *testing.T) {
	out, _, code := runApp(t, "disasm", "0x6009610100010000")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	want := "0000: PUSH1 0x9\n0002: PUSH2 0x100\n0005: ADD\n0006: STOP\n0007: STOP\n"
	if want != out {
		t.Errorf("unexpected output, wanted %q, got %q", want, out)
	}
}

func TestDisasm_ReportsInvalidPrograms(t *testing.T) {
	tests := map[string]struct {
		args []string
		want int
	}{
		"missing program":  {[]string{"disasm"}, exitFailure},
		"invalid encoding": {[]string{"disasm", "0x6"}, exitInvalidProgram},
		"unknown opcode":   {[]string{"disasm", "600120"}, exitInvalidProgram},
		"truncated push":   {[]string{"disasm", "7f00"}, exitInvalidProgram},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, got := runApp(t, test.args...)
			if test.want != got {
				t.Errorf("unexpected exit code, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestOpCodes_ListsGroupedOpCodes(t *testing.T) {
	out, _, code := runApp(t, "opcodes")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	for _, want := range []string{"arithmetic:", "comparison and bitwise:", "push:", "0x01 ADD", "0x1d SAR", "0x7f PUSH32"} {
		if !strings.Contains(out, want) {
			t.Errorf("did not find %q in %q", want, out)
		}
	}
	if strings.Index(out, "arithmetic:") > strings.Index(out, "push:") {
		t.Errorf("groups are not sorted: %q", out)
	}
}

func TestOpCodes_FilterSelectsOpCodes(t *testing.T) {
	out, _, code := runApp(t, "opcodes", "--filter", "^PUSH")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	if strings.Contains(out, "ADD") || !strings.Contains(out, "PUSH3") {
		t.Errorf("unexpected output %q", out)
	}

	_, _, code = runApp(t, "opcodes", "--filter", "(")
	if want, got := exitFailure, code; want != got {
		t.Errorf("unexpected exit code for invalid filter, wanted %d, got %d", want, got)
	}
}

func TestBench_ReportsRuns(t *testing.T) {
	out, errOut, code := runApp(t, "bench", "--runs", "10", "--jobs", "3", "6009600a01")
	if code != 0 {
		t.Fatalf("unexpected exit code %d, stderr: %s", code, errOut)
	}
	if want := "Executed 10 runs with 30 steps"; !strings.Contains(out, want) {
		t.Errorf("did not find %q in %q", want, out)
	}
}

func TestBench_RunsVerifiedExamples(t *testing.T) {
	for _, name := range []string{"arithmetic", "signed", "static_overhead", "long_code"} {
		t.Run(name, func(t *testing.T) {
			out, errOut, code := runApp(t, "bench", "--example", name, "--argument", "5", "--runs", "2")
			if code != 0 {
				t.Fatalf("unexpected exit code %d, stderr: %s", code, errOut)
			}
			if want := "Executed 2 runs"; !strings.Contains(out, want) {
				t.Errorf("did not find %q in %q", want, out)
			}
		})
	}
}

func TestBench_CollectsStatistics(t *testing.T) {
	out, _, code := runApp(t, "bench", "--runs", "4", "--stats", "--cache-size", "-1", "6001")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
	if want := "Steps: 4"; !strings.Contains(out, want) {
		t.Errorf("did not find %q in %q", want, out)
	}
}

func TestBench_WritesCpuProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.prof")
	_, _, code := runApp(t, "bench", "--runs", "1", "--cpuprofile", path, "6001")
	if code != 0 {
		t.Fatalf("unexpected exit code %d", code)
	}
}

func TestBench_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		args []string
		want int
	}{
		"missing program":   {[]string{"bench"}, exitFailure},
		"invalid runs":      {[]string{"bench", "--runs", "0", "6001"}, exitFailure},
		"invalid program":   {[]string{"bench", "6"}, exitInvalidProgram},
		"failing program":   {[]string{"bench", "--runs", "5", "01"}, exitRunFailed},
		"unknown example":   {[]string{"bench", "--example", "fib"}, exitFailure},
		"example and code":  {[]string{"bench", "--example", "signed", "6001"}, exitFailure},
		"negative argument": {[]string{"bench", "--example", "signed", "--argument", "-1"}, exitFailure},
		"too small stack":   {[]string{"bench", "--example", "arithmetic", "--max-stack", "2"}, exitRunFailed},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, got := runApp(t, test.args...)
			if test.want != got {
				t.Errorf("unexpected exit code, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestExitCode_MapsErrors(t *testing.T) {
	if got := exitCode(nil); got != 0 {
		t.Errorf("unexpected exit code for nil, got %d", got)
	}
	if got := exitCode(errors.New("failure")); got != exitFailure {
		t.Errorf("unexpected exit code for plain error, got %d", got)
	}
	if got := exitCode(cli.Exit("failure", 7)); got != 7 {
		t.Errorf("unexpected exit code for exit coder, got %d", got)
	}
}
