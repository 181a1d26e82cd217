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
	"math"

	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

// GetArithmeticExample provides a program mixing unsigned arithmetic
// operations. For an argument n it unrolls the following loop:
//
//	result := 0
//	for i := 1; i <= n; i++ {
//		result += i
//		result *= i
//		result += i * i
//		result -= i
//		result *= (i % 3) + 1
//		result += i ** 3
//	}
//	return result % MaxInt32
func GetArithmeticExample() Example {
	return exampleSpec{
		Name:      "arithmetic",
		generate:  generateArithmetic,
		reference: arithmetic,
	}.build()
}

func generateArithmetic(n int) []byte {
	b := codeBuilder{}
	b.pushUint64(math.MaxInt32)
	b.pushUint64(0)
	for i := 1; i <= n; i++ {
		x := uint64(i)
		b.pushUint64(x)
		b.op(vm.ADD)
		b.pushUint64(x)
		b.op(vm.MUL)
		b.pushUint64(x)
		b.pushUint64(x)
		b.op(vm.MUL, vm.ADD)
		b.pushInt64(-int64(i))
		b.op(vm.ADD)
		b.pushUint64(3)
		b.pushUint64(x)
		b.op(vm.MOD)
		b.pushUint64(1)
		b.op(vm.ADD, vm.MUL)
		b.pushUint64(3)
		b.pushUint64(x)
		b.op(vm.EXP, vm.ADD)
	}
	b.op(vm.MOD)
	return b.code
}

func arithmetic(n int) []uint256.Int {
	result := uint256.NewInt(0)
	for i := 1; i <= n; i++ {
		x := uint256.NewInt(uint64(i))
		iSquared := new(uint256.Int).Mul(x, x)
		iCubed := new(uint256.Int).Mul(iSquared, x)
		iMod3 := new(uint256.Int).Mod(x, uint256.NewInt(3))
		result.Add(result, x)
		result.Mul(result, x)
		result.Add(result, iSquared)
		result.Sub(result, x)
		result.Mul(result, iMod3.AddUint64(iMod3, 1))
		result.Add(result, iCubed)
	}
	result.Mod(result, uint256.NewInt(math.MaxInt32))
	return []uint256.Int{*result}
}
