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
	. "github.com/Fantom-foundation/wordvm/go/tosca/vm"
)

// instruction describes how a single opcode is executed. Entries of the
// instruction table without an execute function are undefined opcodes.
type instruction struct {
	execute func(*context)
	pops    int // < number of operands removed from the stack
	pushes  int // < number of results added to the stack
}

// instructionTable maps every byte value to the instruction executed for it.
// The table is the only dispatch mechanism of the interpreter, so an opcode
// is either fully defined here, handler included, or unknown.
var instructionTable = [256]instruction{
	STOP: {execute: opStop},

	ADD:        {execute: opAdd, pops: 2, pushes: 1},
	MUL:        {execute: opMul, pops: 2, pushes: 1},
	SUB:        {execute: opSub, pops: 2, pushes: 1},
	DIV:        {execute: opDiv, pops: 2, pushes: 1},
	SDIV:       {execute: opSDiv, pops: 2, pushes: 1},
	MOD:        {execute: opMod, pops: 2, pushes: 1},
	SMOD:       {execute: opSMod, pops: 2, pushes: 1},
	ADDMOD:     {execute: opAddMod, pops: 3, pushes: 1},
	MULMOD:     {execute: opMulMod, pops: 3, pushes: 1},
	EXP:        {execute: opExp, pops: 2, pushes: 1},
	SIGNEXTEND: {execute: opSignExtend, pops: 2, pushes: 1},

	LT:     {execute: opLt, pops: 2, pushes: 1},
	GT:     {execute: opGt, pops: 2, pushes: 1},
	SLT:    {execute: opSlt, pops: 2, pushes: 1},
	SGT:    {execute: opSgt, pops: 2, pushes: 1},
	EQ:     {execute: opEq, pops: 2, pushes: 1},
	ISZERO: {execute: opIszero, pops: 1, pushes: 1},
	AND:    {execute: opAnd, pops: 2, pushes: 1},
	OR:     {execute: opOr, pops: 2, pushes: 1},
	XOR:    {execute: opXor, pops: 2, pushes: 1},
	NOT:    {execute: opNot, pops: 1, pushes: 1},
	BYTE:   {execute: opByte, pops: 2, pushes: 1},
	SHL:    {execute: opShl, pops: 2, pushes: 1},
	SHR:    {execute: opShr, pops: 2, pushes: 1},
	SAR:    {execute: opSar, pops: 2, pushes: 1},

	PUSH1:  {execute: opPush, pushes: 1},
	PUSH2:  {execute: opPush, pushes: 1},
	PUSH3:  {execute: opPush, pushes: 1},
	PUSH32: {execute: opPush, pushes: 1},
}

// LookupOpCode returns the opcode at position pc of the given code. If the
// byte found there has no instruction an UnknownOpCodeError is returned.
func LookupOpCode(code []byte, pc int) (OpCode, error) {
	if pc < 0 || pc >= len(code) {
		return STOP, &UnknownOpCodeError{Pc: pc}
	}
	op := OpCode(code[pc])
	if !isDefined(op) {
		return op, &UnknownOpCodeError{OpCode: op, Pc: pc}
	}
	return op, nil
}

func isDefined(op OpCode) bool {
	return instructionTable[op].execute != nil
}

// checkStackLimits checks that the instruction will not make an out of bounds
// access with the current stack size and will not grow the stack beyond the
// given limit.
func checkStackLimits(stackLen int, limit int, inst *instruction, pc int) error {
	if stackLen < inst.pops {
		return &StackUnderflowError{Required: inst.pops, Available: stackLen, Pc: pc}
	}
	if stackLen-inst.pops+inst.pushes > limit {
		return &StackOverflowError{Limit: limit, Pc: pc}
	}
	return nil
}
