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
	"errors"
	"fmt"
	"io"
	"os"

	cliUtils "github.com/Fantom-foundation/wordvm/go/cmd/wvm/cli"
	"github.com/urfave/cli/v2"
)

const (
	exitFailure        = 1 // < invalid usage or unexpected errors
	exitInvalidProgram = 2 // < the program could not be decoded
	exitRunFailed      = 3 // < the program failed during execution
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "wvm",
		Usage:     "256-bit word stack machine interpreter",
		Copyright: "(c) 2024 Fantom Foundation",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			cliUtils.VerbosityFlag,
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			&RunCmd,
			&DisasmCmd,
			&OpCodesCmd,
			&BenchCmd,
		},
		// Exit codes are resolved by main.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// exitCode maps the error returned by the application to the process exit
// code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitFailure
}
