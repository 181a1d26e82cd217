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
	"fmt"
	"sync/atomic"
	"time"

	cliUtils "github.com/Fantom-foundation/wordvm/go/cmd/wvm/cli"
	"github.com/Fantom-foundation/wordvm/go/examples"
	"github.com/Fantom-foundation/wordvm/go/interpreter/wvm"
	"github.com/dsnet/golib/unitconv"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

var BenchCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doBench,
	Name:      "bench",
	Usage:     "Measure the execution speed of a hex encoded program",
	ArgsUsage: "[<program>]",
	Flags: []cli.Flag{
		cliUtils.ExampleFlag,
		cliUtils.ArgumentFlag,
		cliUtils.RunsFlag,
		cliUtils.JobsFlag,
		cliUtils.StatsFlag,
		cliUtils.MaxStackFlag,
		cliUtils.StepLimitFlag,
		cliUtils.CacheSizeFlag,
	},
})

func doBench(context *cli.Context) error {
	example, err := fetchExample(context)
	if err != nil {
		return err
	}

	argument, err := cliUtils.ArgumentFlag.Fetch(context)
	if err != nil {
		return err
	}

	var program string
	switch {
	case example != nil && context.Args().Len() == 0:
		program = example.Program(argument)
	case example == nil && context.Args().Len() == 1:
		program = context.Args().Get(0)
	default:
		return fmt.Errorf("expected either exactly one program or an example, got %d arguments", context.Args().Len())
	}

	runs, err := cliUtils.RunsFlag.Fetch(context)
	if err != nil {
		return err
	}
	jobs := min(cliUtils.JobsFlag.Fetch(context), runs)

	config, err := fetchConfig(context)
	if err != nil {
		return err
	}
	if cliUtils.StatsFlag.Fetch(context) {
		config.Statistics = wvm.NewStatistics()
	}

	loader, err := wvm.NewLoader(cliUtils.CacheSizeFlag.Fetch(context))
	if err != nil {
		return err
	}
	if _, err := loader.Load(program, config); err != nil {
		return cli.Exit(fmt.Sprintf("invalid program: %v", err), exitInvalidProgram)
	}
	if example != nil {
		if err := example.Verify(loader, wvm.Config{MaxStackDepth: config.MaxStackDepth, StepLimit: config.StepLimit}, argument); err != nil {
			return cli.Exit(fmt.Sprintf("example verification failed: %v", err), exitRunFailed)
		}
		log.Debugf("verified example %s(%d)", example.Name, argument)
	}

	log.Infof("running %d executions using %d jobs", runs, jobs)

	var steps atomic.Uint64
	group, ctx := errgroup.WithContext(context.Context)
	start := time.Now()
	for job := 0; job < jobs; job++ {
		count := runs / jobs
		if job < runs%jobs {
			count++
		}
		group.Go(func() error {
			for i := 0; i < count; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				interpreter, err := loader.Load(program, config)
				if err != nil {
					return err
				}
				if err := interpreter.Run(); err != nil {
					return err
				}
				steps.Add(interpreter.Steps())
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return cli.Exit(fmt.Sprintf("execution failed: %v", err), exitRunFailed)
	}
	duration := time.Since(start)

	seconds := duration.Seconds()
	if seconds <= 0 {
		seconds = time.Nanosecond.Seconds()
	}
	fmt.Fprintf(context.App.Writer,
		"Executed %d runs with %d steps in %v, ~%sruns/s, ~%ssteps/s\n",
		runs, steps.Load(), duration.Round(time.Microsecond),
		unitconv.FormatPrefix(float64(runs)/seconds, unitconv.SI, 1),
		unitconv.FormatPrefix(float64(steps.Load())/seconds, unitconv.SI, 1),
	)
	if config.Statistics != nil {
		fmt.Fprint(context.App.Writer, config.Statistics.Summary())
	}
	return nil
}

// fetchExample resolves the example selected by the example flag. If no
// example is selected, nil is returned.
func fetchExample(context *cli.Context) (*examples.Example, error) {
	name := cliUtils.ExampleFlag.Fetch(context)
	if name == "" {
		return nil, nil
	}
	available := map[string]examples.Example{}
	for _, example := range examples.GetExamples() {
		available[example.Name] = example
	}
	example, found := available[name]
	if !found {
		names := maps.Keys(available)
		slices.Sort(names)
		return nil, fmt.Errorf("invalid example %q, use one of: %v", name, names)
	}
	return &example, nil
}
