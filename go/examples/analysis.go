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
	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

// MaxCodeLength is the length of the longest code produced by
// GenerateFillerCode.
const MaxCodeLength = 0x6000

// GenerateFillerCode produces code of at most MaxCodeLength bytes consisting
// of an initial zero followed by as many copies of the filler as fit.
func GenerateFillerCode(filler []byte) []byte {
	initCode := []byte{byte(vm.PUSH1), 0}

	code := make([]byte, 0, MaxCodeLength)
	code = append(code, initCode...)
	if len(filler) == 0 {
		return code
	}
	for len(code)+len(filler) <= MaxCodeLength {
		code = append(code, filler...)
	}
	return code
}

// GetLongCodeExample provides a program of maximal length adding the
// argument to an accumulator over and over again.
func GetLongCodeExample() Example {
	return exampleSpec{
		Name:      "long_code",
		generate:  generateLongCode,
		reference: longCode,
	}.build()
}

func longCodeFiller(n int) []byte {
	return []byte{byte(vm.PUSH1), byte(n), byte(vm.ADD)}
}

func generateLongCode(n int) []byte {
	return GenerateFillerCode(longCodeFiller(n))
}

func longCode(n int) []uint256.Int {
	filler := longCodeFiller(n)
	repetitions := (MaxCodeLength - 2) / len(filler)
	res := uint256.NewInt(uint64(byte(n)))
	res.Mul(res, uint256.NewInt(uint64(repetitions)))
	return []uint256.Int{*res}
}
