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

// This example represents the worst case for very short programs: almost all
// of the time is spent on decoding the program and setting up the
// interpreter.
func GetStaticOverheadExample() Example {
	return exampleSpec{
		Name:      "static_overhead",
		generate:  generateStaticOverhead,
		reference: staticOverhead,
	}.build()
}

func generateStaticOverhead(n int) []byte {
	return []byte{
		byte(vm.PUSH1), byte(n),
		byte(vm.STOP),
	}
}

func staticOverhead(n int) []uint256.Int {
	return []uint256.Int{*uint256.NewInt(uint64(byte(n)))}
}
