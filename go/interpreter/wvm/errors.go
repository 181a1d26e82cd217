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

	"github.com/Fantom-foundation/wordvm/go/tosca"
	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
)

const (
	ErrInvalidEncoding    = tosca.ConstError("invalid program encoding")
	ErrUnknownOpCode      = tosca.ConstError("unknown opcode")
	ErrStackUnderflow     = tosca.ConstError("stack underflow")
	ErrStackOverflow      = tosca.ConstError("stack overflow")
	ErrTruncatedImmediate = tosca.ConstError("truncated immediate")
	ErrResourceExhausted  = tosca.ConstError("step limit exhausted")
)

// InvalidEncodingError reports a program text that is not a whole number of
// hexadecimal bytes. Offset is the position of the offending character in the
// text after the optional 0x marker was removed.
type InvalidEncodingError struct {
	Offset int
	Reason string
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrInvalidEncoding, e.Offset, e.Reason)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// UnknownOpCodeError reports a byte without an entry in the opcode table.
type UnknownOpCodeError struct {
	OpCode vm.OpCode
	Pc     int
}

func (e *UnknownOpCodeError) Error() string {
	return fmt.Sprintf("%v 0x%02x at pc %d", ErrUnknownOpCode, byte(e.OpCode), e.Pc)
}

func (e *UnknownOpCodeError) Unwrap() error {
	return ErrUnknownOpCode
}

// StackUnderflowError reports an instruction requiring more operands than
// present on the stack.
type StackUnderflowError struct {
	Required  int
	Available int
	Pc        int
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("%v at pc %d: required %d, available %d", ErrStackUnderflow, e.Pc, e.Required, e.Available)
}

func (e *StackUnderflowError) Unwrap() error {
	return ErrStackUnderflow
}

// StackOverflowError reports an instruction that would grow the stack beyond
// its configured capacity.
type StackOverflowError struct {
	Limit int
	Pc    int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("%v at pc %d: limit %d", ErrStackOverflow, e.Pc, e.Limit)
}

func (e *StackOverflowError) Unwrap() error {
	return ErrStackOverflow
}

// TruncatedImmediateError reports a push instruction whose immediate data
// runs past the end of the code.
type TruncatedImmediateError struct {
	OpCode vm.OpCode
	Pc     int
}

func (e *TruncatedImmediateError) Error() string {
	return fmt.Sprintf("%v of %v at pc %d", ErrTruncatedImmediate, e.OpCode, e.Pc)
}

func (e *TruncatedImmediateError) Unwrap() error {
	return ErrTruncatedImmediate
}

// ResourceExhaustedError reports a run that hit the configured step limit.
type ResourceExhaustedError struct {
	Limit uint64
	Pc    int
}

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("%v at pc %d: limit %d", ErrResourceExhausted, e.Pc, e.Limit)
}

func (e *ResourceExhaustedError) Unwrap() error {
	return ErrResourceExhausted
}
