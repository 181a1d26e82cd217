// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"runtime/pprof"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type filterFlagType struct {
	cli.StringFlag
}

var FilterFlag = &filterFlagType{
	cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "list only opcodes which name matches the given regex",
		Value:   ".*",
	},
}

func (f *filterFlagType) Fetch(context *cli.Context) (*regexp.Regexp, error) {
	return regexp.Compile(context.String(f.Name))
}

type jobsFlagType struct {
	cli.IntFlag
}

var JobsFlag = &jobsFlagType{
	cli.IntFlag{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "number of jobs run simultaneously",
		Value:   runtime.NumCPU(),
	},
}

func (f *jobsFlagType) Fetch(context *cli.Context) int {
	jobs := context.Int(f.Name)
	if jobs <= 0 {
		return runtime.NumCPU()
	}
	return jobs
}

type runsFlagType struct {
	cli.IntFlag
}

var RunsFlag = &runsFlagType{
	cli.IntFlag{
		Name:    "runs",
		Aliases: []string{"n"},
		Usage:   "number of times the program is executed",
		Value:   1000,
	},
}

func (f *runsFlagType) Fetch(context *cli.Context) (int, error) {
	runs := context.Int(f.Name)
	if runs <= 0 {
		return 0, fmt.Errorf("invalid number of runs %d, must be positive", runs)
	}
	return runs, nil
}

type traceFlagType struct {
	cli.BoolFlag
}

var TraceFlag = &traceFlagType{
	cli.BoolFlag{
		Name:  "trace",
		Usage: "print every executed instruction with the top of the stack",
	},
}

func (f *traceFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type statsFlagType struct {
	cli.BoolFlag
}

var StatsFlag = &statsFlagType{
	cli.BoolFlag{
		Name:  "stats",
		Usage: "print statistics on the executed instructions",
	},
}

func (f *statsFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type maxStackFlagType struct {
	cli.IntFlag
}

var MaxStackFlag = &maxStackFlagType{
	cli.IntFlag{
		Name:  "max-stack",
		Usage: "maximum number of words on the stack",
		Value: 1024,
	},
}

func (f *maxStackFlagType) Fetch(context *cli.Context) (int, error) {
	limit := context.Int(f.Name)
	if limit <= 0 {
		return 0, fmt.Errorf("invalid stack limit %d, must be positive", limit)
	}
	return limit, nil
}

type stepLimitFlagType struct {
	cli.Uint64Flag
}

var StepLimitFlag = &stepLimitFlagType{
	cli.Uint64Flag{
		Name:  "step-limit",
		Usage: "maximum number of executed instructions, 0 for no limit",
	},
}

func (f *stepLimitFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type cacheSizeFlagType struct {
	cli.IntFlag
}

var CacheSizeFlag = &cacheSizeFlagType{
	cli.IntFlag{
		Name:  "cache-size",
		Usage: "number of decoded programs kept in the code cache, negative to disable",
	},
}

func (f *cacheSizeFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type exampleFlagType struct {
	cli.StringFlag
}

var ExampleFlag = &exampleFlagType{
	cli.StringFlag{
		Name:    "example",
		Aliases: []string{"e"},
		Usage:   "run the named example program instead of a program argument",
	},
}

func (f *exampleFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type argumentFlagType struct {
	cli.IntFlag
}

var ArgumentFlag = &argumentFlagType{
	cli.IntFlag{
		Name:  "argument",
		Usage: "argument used to generate the example program",
		Value: 10,
	},
}

func (f *argumentFlagType) Fetch(context *cli.Context) (int, error) {
	argument := context.Int(f.Name)
	if argument < 0 {
		return 0, fmt.Errorf("invalid example argument %d, must not be negative", argument)
	}
	return argument, nil
}

type verbosityFlagType struct {
	cli.StringFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.StringFlag{
		Name:    "verbosity",
		Aliases: []string{"v"},
		Usage:   "log level, one of " + fmt.Sprint(logLevelNames()),
		Value:   "warning",
	},
}

var logLevels = map[string]logging.Level{
	"critical": logging.CRITICAL,
	"error":    logging.ERROR,
	"warning":  logging.WARNING,
	"notice":   logging.NOTICE,
	"info":     logging.INFO,
	"debug":    logging.DEBUG,
}

func logLevelNames() []string {
	names := maps.Keys(logLevels)
	slices.Sort(names)
	return names
}

func (f *verbosityFlagType) Fetch(context *cli.Context) (logging.Level, error) {
	name := context.String(f.Name)
	level, found := logLevels[name]
	if !found {
		return logging.WARNING, fmt.Errorf("invalid verbosity %q, use one of: %v", name, logLevelNames())
	}
	return level, nil
}

var cpuProfileFlag = &cli.StringFlag{
	Name:      "cpuprofile",
	Usage:     "store CPU profile in the provided filename",
	TakesFile: true,
}

// AddCommonFlags extends the given command by a flag to record a CPU profile
// while the command is running.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, cpuProfileFlag)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {

		if cpuprofileFilename := ctx.String(cpuProfileFlag.Name); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}
