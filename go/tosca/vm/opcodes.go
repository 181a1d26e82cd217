// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import "fmt"

// OpCode is a single byte instruction of the word VM. Its numeric values
// follow the EVM encoding, but only the arithmetic, comparison, bitwise and a
// subset of the push instructions are defined.
type OpCode byte

const (
	STOP       OpCode = 0x00
	ADD        OpCode = 0x01
	MUL        OpCode = 0x02
	SUB        OpCode = 0x03
	DIV        OpCode = 0x04
	SDIV       OpCode = 0x05
	MOD        OpCode = 0x06
	SMOD       OpCode = 0x07
	ADDMOD     OpCode = 0x08
	MULMOD     OpCode = 0x09
	EXP        OpCode = 0x0A
	SIGNEXTEND OpCode = 0x0B
	LT         OpCode = 0x10
	GT         OpCode = 0x11
	SLT        OpCode = 0x12
	SGT        OpCode = 0x13
	EQ         OpCode = 0x14
	ISZERO     OpCode = 0x15
	AND        OpCode = 0x16
	OR         OpCode = 0x17
	XOR        OpCode = 0x18
	NOT        OpCode = 0x19
	BYTE       OpCode = 0x1A
	SHL        OpCode = 0x1B
	SHR        OpCode = 0x1C
	SAR        OpCode = 0x1D
	PUSH1      OpCode = 0x60
	PUSH2      OpCode = 0x61
	PUSH3      OpCode = 0x62
	PUSH32     OpCode = 0x7F
)

var opCodeNames = [256]string{
	STOP:       "STOP",
	ADD:        "ADD",
	MUL:        "MUL",
	SUB:        "SUB",
	DIV:        "DIV",
	SDIV:       "SDIV",
	MOD:        "MOD",
	SMOD:       "SMOD",
	ADDMOD:     "ADDMOD",
	MULMOD:     "MULMOD",
	EXP:        "EXP",
	SIGNEXTEND: "SIGNEXTEND",
	LT:         "LT",
	GT:         "GT",
	SLT:        "SLT",
	SGT:        "SGT",
	EQ:         "EQ",
	ISZERO:     "ISZERO",
	AND:        "AND",
	OR:         "OR",
	XOR:        "XOR",
	NOT:        "NOT",
	BYTE:       "BYTE",
	SHL:        "SHL",
	SHR:        "SHR",
	SAR:        "SAR",
	PUSH1:      "PUSH1",
	PUSH2:      "PUSH2",
	PUSH3:      "PUSH3",
	PUSH32:     "PUSH32",
}

func (op OpCode) String() string {
	if name := opCodeNames[op]; name != "" {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", byte(op))
}

// Width returns the number of bytes occupied by the instruction in the code,
// including the opcode itself and any immediate data following it.
func (op OpCode) Width() int {
	return 1 + op.ImmediateSize()
}

// ImmediateSize returns the number of immediate data bytes following the
// opcode in the code.
func (op OpCode) ImmediateSize() int {
	if PUSH1 <= op && op <= PUSH32 {
		return int(op-PUSH1) + 1
	}
	return 0
}

// IsValid determines whether the given OpCode is supported by the VM.
func IsValid(op OpCode) bool {
	return opCodeNames[op] != ""
}

// ValidOpCodes returns all supported op codes in ascending order.
func ValidOpCodes() []OpCode {
	res := make([]OpCode, 0, 32)
	for i := 0; i < 256; i++ {
		if op := OpCode(i); IsValid(op) {
			res = append(res, op)
		}
	}
	return res
}

// ValidOpCodesNoPush returns a slice of valid op codes, but no PUSH instruction.
func ValidOpCodesNoPush() []OpCode {
	res := make([]OpCode, 0, 32)
	for _, op := range ValidOpCodes() {
		if op.ImmediateSize() == 0 {
			res = append(res, op)
		}
	}
	return res
}
