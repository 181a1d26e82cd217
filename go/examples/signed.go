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

// GetSignedExample provides a program accumulating the results of the signed
// operations SDIV, SMOD, SAR and SIGNEXTEND on negative operands.
func GetSignedExample() Example {
	return exampleSpec{
		Name:      "signed",
		generate:  generateSigned,
		reference: signed,
	}.build()
}

func generateSigned(n int) []byte {
	b := codeBuilder{}
	b.pushUint64(0)
	for i := 1; i <= n; i++ {
		x := int64(i)
		// acc += -i / 3
		b.pushUint64(3)
		b.pushInt64(-x)
		b.op(vm.SDIV, vm.ADD)
		// acc += -i % 5
		b.pushUint64(5)
		b.pushInt64(-x)
		b.op(vm.SMOD, vm.ADD)
		// acc += -7i >> 2
		b.pushInt64(-7 * x)
		b.pushUint64(2)
		b.op(vm.SAR, vm.ADD)
		// acc += int8(37i)
		b.pushUint64(uint64(37*x) & 0xff)
		b.pushUint64(0)
		b.op(vm.SIGNEXTEND, vm.ADD)
	}
	return b.code
}

func signed(n int) []uint256.Int {
	acc := int64(0)
	for i := 1; i <= n; i++ {
		x := int64(i)
		acc += -x / 3
		acc += -x % 5
		acc += (-7 * x) >> 2
		acc += int64(int8(byte(37 * x)))
	}
	return []uint256.Int{*fromInt64(acc)}
}
