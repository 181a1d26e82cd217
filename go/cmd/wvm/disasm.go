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

	"github.com/Fantom-foundation/wordvm/go/interpreter/wvm"
	"github.com/urfave/cli/v2"
)

var DisasmCmd = cli.Command{
	Action:    doDisasm,
	Name:      "disasm",
	Usage:     "List the instructions of a hex encoded program",
	ArgsUsage: "<program>",
}

func doDisasm(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one program, got %d arguments", context.Args().Len())
	}

	code, err := wvm.DecodeProgram(context.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid program: %v", err), exitInvalidProgram)
	}

	instructions, err := wvm.Disassemble(code)
	for _, instruction := range instructions {
		fmt.Fprintln(context.App.Writer, instruction)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid program: %v", err), exitInvalidProgram)
	}
	return nil
}
