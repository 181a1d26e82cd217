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

	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

// Instruction is a single decoded instruction of a program.
type Instruction struct {
	Pc        int
	OpCode    vm.OpCode
	Immediate uint256.Int // < only meaningful for push instructions
}

func (i Instruction) String() string {
	if i.OpCode.ImmediateSize() > 0 {
		return fmt.Sprintf("%04d: %v %v", i.Pc, i.OpCode, i.Immediate.Hex())
	}
	return fmt.Sprintf("%04d: %v", i.Pc, i.OpCode)
}

// Disassemble lists the instructions of the given code in order. Decoding
// stops at the first unknown opcode or truncated immediate; the instructions
// decoded up to this point are returned together with the error.
func Disassemble(code []byte) ([]Instruction, error) {
	res := make([]Instruction, 0, len(code))
	for pc := 0; pc < len(code); {
		op, err := LookupOpCode(code, pc)
		if err != nil {
			return res, err
		}
		instruction := Instruction{Pc: pc, OpCode: op}
		if width := op.ImmediateSize(); width > 0 {
			if err := readImmediate(code, pc, width, &instruction.Immediate); err != nil {
				return res, err
			}
		}
		res = append(res, instruction)
		pc += op.Width()
	}
	return res, nil
}
