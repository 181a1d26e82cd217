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
	"errors"
	"testing"

	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

func TestReadImmediate_ReadsBigEndianValue(t *testing.T) {
	code := []byte{byte(vm.PUSH3), 0x01, 0x02, 0x03, byte(vm.STOP)}

	got, err := ReadImmediate(code, 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := uint256.NewInt(0x010203); !want.Eq(&got) {
		t.Errorf("unexpected value, wanted %v, got %v", want, &got)
	}
}

func TestReadImmediate_FullWidthValue(t *testing.T) {
	code := make([]byte, 33)
	code[0] = byte(vm.PUSH32)
	for i := 1; i < len(code); i++ {
		code[i] = 0xff
	}

	got, err := ReadImmediate(code, 0, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := new(uint256.Int).SetAllOne(); !want.Eq(&got) {
		t.Errorf("unexpected value, wanted %v, got %v", want, &got)
	}
}

func TestReadImmediate_LeadingZerosAreKept(t *testing.T) {
	code := []byte{byte(vm.PUSH2), 0x00, 0x01}

	got, err := ReadImmediate(code, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Eq(uint256.NewInt(1)) {
		t.Errorf("unexpected value, wanted 1, got %v", &got)
	}
}

func TestReadImmediate_ExactlyAtEndOfCodeIsFine(t *testing.T) {
	code := []byte{byte(vm.STOP), byte(vm.PUSH1), 0x2a}

	got, err := ReadImmediate(code, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Eq(uint256.NewInt(0x2a)) {
		t.Errorf("unexpected value, wanted 0x2a, got %v", &got)
	}
}

func TestReadImmediate_TruncatedDataIsReported(t *testing.T) {
	tests := map[string]struct {
		code  []byte
		pc    int
		width int
	}{
		"no data":        {[]byte{byte(vm.PUSH1)}, 0, 1},
		"partial data":   {[]byte{byte(vm.PUSH3), 0x01, 0x02}, 0, 3},
		"late in code":   {[]byte{byte(vm.STOP), byte(vm.PUSH2), 0x01}, 1, 2},
		"push32 partial": {append([]byte{byte(vm.PUSH32)}, make([]byte, 31)...), 0, 32},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadImmediate(test.code, test.pc, test.width)
			var target *TruncatedImmediateError
			if !errors.As(err, &target) {
				t.Fatalf("expected truncated immediate error, got %v", err)
			}
			if !errors.Is(err, ErrTruncatedImmediate) {
				t.Errorf("expected error to match ErrTruncatedImmediate")
			}
			if want, got := test.pc, target.Pc; want != got {
				t.Errorf("unexpected pc, wanted %d, got %d", want, got)
			}
			if want, got := vm.OpCode(test.code[test.pc]), target.OpCode; want != got {
				t.Errorf("unexpected op code, wanted %v, got %v", want, got)
			}
		})
	}
}
