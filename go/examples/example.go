// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"fmt"

	"github.com/Fantom-foundation/wordvm/go/interpreter/wvm"
	"github.com/Fantom-foundation/wordvm/go/tosca"
	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

// Example is an executable description of a program family parameterized by
// a single integer argument.
type Example struct {
	exampleSpec
}

// exampleSpec specifies a program generator and a reference function
// computing the expected final stack for the same argument.
type exampleSpec struct {
	Name      string
	generate  func(int) []byte        // produces the byte code for an argument
	reference func(int) []uint256.Int // expected stack, top of the stack last
}

func (s exampleSpec) build() Example {
	return Example{exampleSpec: s}
}

// Code returns the byte code of this example for the given argument.
func (e *Example) Code(argument int) []byte {
	return e.generate(argument)
}

// Program returns the hex encoded program of this example for the given
// argument.
func (e *Example) Program(argument int) string {
	return "0x" + wvm.EncodeProgram(e.generate(argument))
}

// CodeHash returns the hash of the program text produced for the given
// argument.
func (e *Example) CodeHash(argument int) tosca.Hash {
	return wvm.Keccak256([]byte(e.Program(argument)))
}

// RunOn runs this example using interpreters created by the given loader and
// returns the final stack.
func (e *Example) RunOn(loader *wvm.Loader, config wvm.Config, argument int) ([]uint256.Int, error) {
	interpreter, err := loader.Load(e.Program(argument), config)
	if err != nil {
		return nil, err
	}
	if err := interpreter.Run(); err != nil {
		return nil, err
	}
	return interpreter.Stack(), nil
}

// RunReference runs the reference function of this example to produce the
// expected result.
func (e *Example) RunReference(argument int) []uint256.Int {
	return e.reference(argument)
}

// Verify runs this example and compares the resulting stack with the
// reference result.
func (e *Example) Verify(loader *wvm.Loader, config wvm.Config, argument int) error {
	got, err := e.RunOn(loader, config, argument)
	if err != nil {
		return err
	}
	want := e.RunReference(argument)
	if len(want) != len(got) {
		return fmt.Errorf("unexpected stack size of %s(%d), wanted %d, got %d", e.Name, argument, len(want), len(got))
	}
	for i := range want {
		if !want[i].Eq(&got[i]) {
			return fmt.Errorf("unexpected result of %s(%d) at stack position %d, wanted %v, got %v", e.Name, argument, i, want[i].Hex(), got[i].Hex())
		}
	}
	return nil
}

// GetExamples lists all available examples.
func GetExamples() []Example {
	return []Example{
		GetArithmeticExample(),
		GetSignedExample(),
		GetStaticOverheadExample(),
		GetLongCodeExample(),
	}
}

// GetExample looks up an example by name.
func GetExample(name string) (Example, bool) {
	for _, example := range GetExamples() {
		if example.Name == name {
			return example, true
		}
	}
	return Example{}, false
}

// codeBuilder assembles byte code using the narrowest push instruction able
// to hold each constant.
type codeBuilder struct {
	code []byte
}

func (b *codeBuilder) push(value *uint256.Int) {
	op := vm.PUSH32
	switch value.ByteLen() {
	case 0, 1:
		op = vm.PUSH1
	case 2:
		op = vm.PUSH2
	case 3:
		op = vm.PUSH3
	}
	data := value.Bytes32()
	b.code = append(b.code, byte(op))
	b.code = append(b.code, data[32-op.ImmediateSize():]...)
}

func (b *codeBuilder) pushUint64(value uint64) {
	b.push(uint256.NewInt(value))
}

func (b *codeBuilder) pushInt64(value int64) {
	b.push(fromInt64(value))
}

func (b *codeBuilder) op(ops ...vm.OpCode) {
	for _, op := range ops {
		b.code = append(b.code, byte(op))
	}
}

// fromInt64 converts a signed value into its two's complement word.
func fromInt64(value int64) *uint256.Int {
	if value >= 0 {
		return uint256.NewInt(uint64(value))
	}
	res := uint256.NewInt(uint64(-value))
	return res.Neg(res)
}
