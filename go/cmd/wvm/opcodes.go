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

	cliUtils "github.com/Fantom-foundation/wordvm/go/cmd/wvm/cli"
	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var OpCodesCmd = cli.Command{
	Action: doOpCodes,
	Name:   "opcodes",
	Usage:  "List the supported opcodes by group",
	Flags: []cli.Flag{
		cliUtils.FilterFlag,
	},
}

func doOpCodes(context *cli.Context) error {
	filter, err := cliUtils.FilterFlag.Fetch(context)
	if err != nil {
		return err
	}

	groups := map[string][]vm.OpCode{}
	for _, op := range vm.ValidOpCodes() {
		if filter.MatchString(op.String()) {
			group := groupOf(op)
			groups[group] = append(groups[group], op)
		}
	}

	names := maps.Keys(groups)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(context.App.Writer, "%s:\n", name)
		for _, op := range groups[name] {
			fmt.Fprintf(context.App.Writer, "\t0x%02x %-10v width %d\n", byte(op), op, op.Width())
		}
	}
	return nil
}

func groupOf(op vm.OpCode) string {
	switch {
	case op.ImmediateSize() > 0:
		return "push"
	case op < vm.LT:
		return "arithmetic"
	default:
		return "comparison and bitwise"
	}
}
