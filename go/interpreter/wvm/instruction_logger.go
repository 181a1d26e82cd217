// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package wvm

import (
	"fmt"
	"io"

	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
)

// loggingRunner is a runner that logs the execution of the code to an
// io.Writer, one line per instruction, before the instruction is executed.
type loggingRunner struct {
	log io.Writer
}

// newLogger creates a new logging runner that writes to the provided
// io.Writer.
func newLogger(writer io.Writer) loggingRunner {
	return loggingRunner{log: writer}
}

func (l loggingRunner) run(c *context) error {
	for c.status == StatusRunning {
		// log format: <pc>, <op>, <top-of-stack>\n
		if c.pc < len(c.code) && l.log != nil {
			top := "-empty-"
			if c.stack.len() > 0 {
				top = c.stack.peek().Hex()
			}
			_, err := fmt.Fprintf(l.log, "%d, %v, %v\n", c.pc, vm.OpCode(c.code[c.pc]), top)
			if err != nil {
				return err
			}
		}
		if err := step(c); err != nil {
			return err
		}
	}
	return nil
}
