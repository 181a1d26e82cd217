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
	"io"

	cliUtils "github.com/Fantom-foundation/wordvm/go/cmd/wvm/cli"
	"github.com/Fantom-foundation/wordvm/go/interpreter/wvm"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

// demoProgram pushes 9 and 10 and compares them with LT, leaving 0.
const demoProgram = "0x6009600a10"

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run a hex encoded program and print the resulting stack",
	ArgsUsage: "[<program>]",
	Flags: []cli.Flag{
		cliUtils.TraceFlag,
		cliUtils.StatsFlag,
		cliUtils.MaxStackFlag,
		cliUtils.StepLimitFlag,
	},
}

func doRun(context *cli.Context) error {
	program := demoProgram
	if context.Args().Len() >= 1 {
		program = context.Args().Get(0)
	}

	config, err := fetchConfig(context)
	if err != nil {
		return err
	}

	trace := cliUtils.TraceFlag.Fetch(context)
	stats := cliUtils.StatsFlag.Fetch(context)
	if trace && stats {
		return fmt.Errorf("--%s and --%s can not be combined", cliUtils.TraceFlag.Name, cliUtils.StatsFlag.Name)
	}
	if trace {
		config.Trace = context.App.ErrWriter
	}
	if stats {
		config.Statistics = wvm.NewStatistics()
	}

	interpreter, err := wvm.NewInterpreter(program, config)
	if err != nil {
		log.Errorf("failed to load program %q: %v", program, err)
		return cli.Exit(fmt.Sprintf("invalid program: %v", err), exitInvalidProgram)
	}
	log.Debugf("running program of %d bytes", len(interpreter.Code()))

	if err := interpreter.Run(); err != nil {
		log.Infof("execution failed after %d steps at pc %d", interpreter.Steps(), interpreter.Pc())
		return cli.Exit(fmt.Sprintf("execution failed: %v", err), exitRunFailed)
	}
	log.Debugf("execution halted after %d steps", interpreter.Steps())

	printStack(context.App.Writer, interpreter.Stack())
	if config.Statistics != nil {
		fmt.Fprint(context.App.Writer, config.Statistics.Summary())
	}
	return nil
}

// fetchConfig builds the interpreter configuration from the resource limit
// flags of the command.
func fetchConfig(context *cli.Context) (wvm.Config, error) {
	maxStack, err := cliUtils.MaxStackFlag.Fetch(context)
	if err != nil {
		return wvm.Config{}, err
	}
	return wvm.Config{
		MaxStackDepth: maxStack,
		StepLimit:     cliUtils.StepLimitFlag.Fetch(context),
	}, nil
}

// printStack writes one word per line, the top of the stack last.
func printStack(out io.Writer, stack []uint256.Int) {
	for i := range stack {
		fmt.Fprintln(out, stack[i].Hex())
	}
}
