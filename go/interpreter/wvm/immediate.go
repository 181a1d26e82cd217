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
	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

// ReadImmediate interprets the width bytes following the instruction at pc as
// a big-endian unsigned integer. If the immediate data extends past the end of
// the code a TruncatedImmediateError is returned. Missing bytes are never
// padded with zeros.
func ReadImmediate(code []byte, pc int, width int) (uint256.Int, error) {
	var res uint256.Int
	if err := readImmediate(code, pc, width, &res); err != nil {
		return uint256.Int{}, err
	}
	return res, nil
}

// readImmediate is the allocation free version of ReadImmediate writing the
// result into z.
func readImmediate(code []byte, pc int, width int, z *uint256.Int) error {
	if err := checkImmediate(code, pc, width); err != nil {
		return err
	}
	z.SetBytes(code[pc+1 : pc+1+width])
	return nil
}

func checkImmediate(code []byte, pc int, width int) error {
	if pc < 0 || pc >= len(code) || width < 0 || width > 32 {
		return &TruncatedImmediateError{Pc: pc}
	}
	if end := pc + 1 + width; end > len(code) {
		return &TruncatedImmediateError{OpCode: vm.OpCode(code[pc]), Pc: pc}
	}
	return nil
}
