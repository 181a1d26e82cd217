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
	"testing"

	"github.com/Fantom-foundation/wordvm/go/interpreter/wvm"
)

func TestExamples_ComputeReferenceResults(t *testing.T) {
	loader, err := wvm.NewLoader(0)
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}
	for _, example := range GetExamples() {
		t.Run(example.Name, func(t *testing.T) {
			for _, argument := range []int{0, 1, 2, 5, 10, 300} {
				if err := example.Verify(loader, wvm.Config{}, argument); err != nil {
					t.Errorf("failed to verify argument %d: %v", argument, err)
				}
			}
		})
	}
}

func TestExamples_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, example := range GetExamples() {
		if seen[example.Name] {
			t.Errorf("duplicate example name %q", example.Name)
		}
		seen[example.Name] = true

		got, found := GetExample(example.Name)
		if !found || got.Name != example.Name {
			t.Errorf("failed to look up example %q", example.Name)
		}
	}
	if _, found := GetExample("unknown"); found {
		t.Errorf("found example that does not exist")
	}
}

func TestExamples_ProgramsDecodeToCode(t *testing.T) {
	for _, example := range GetExamples() {
		code, err := wvm.DecodeProgram(example.Program(7))
		if err != nil {
			t.Fatalf("failed to decode program of %s: %v", example.Name, err)
		}
		if want, got := wvm.EncodeProgram(example.Code(7)), wvm.EncodeProgram(code); want != got {
			t.Errorf("program of %s does not match its code", example.Name)
		}
		if example.CodeHash(7) == example.CodeHash(8) {
			t.Errorf("programs of %s for different arguments share a hash", example.Name)
		}
	}
}

func TestGenerateFillerCode_RespectsMaximumLength(t *testing.T) {
	for _, filler := range [][]byte{{0x01}, {0x60, 0x01, 0x01}, make([]byte, 7)} {
		code := GenerateFillerCode(filler)
		if len(code) > MaxCodeLength {
			t.Errorf("code of length %d exceeds maximum", len(code))
		}
		if len(code)+len(filler) <= MaxCodeLength {
			t.Errorf("code of length %d could hold another filler of length %d", len(code), len(filler))
		}
	}
	if want, got := 2, len(GenerateFillerCode(nil)); want != got {
		t.Errorf("unexpected length for empty filler, wanted %d, got %d", want, got)
	}
}

func TestLongCodeExample_IsCached(t *testing.T) {
	loader, err := wvm.NewLoader(0)
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}
	example := GetLongCodeExample()
	if _, err := example.RunOn(loader, wvm.Config{}, 1); err != nil {
		t.Fatalf("failed to run example: %v", err)
	}
	if want, got := 1, loader.Len(); want != got {
		t.Errorf("unexpected number of cached programs, wanted %d, got %d", want, got)
	}
}

func BenchmarkExamples(b *testing.B) {
	loader, err := wvm.NewLoader(0)
	if err != nil {
		b.Fatalf("failed to create loader: %v", err)
	}
	for _, example := range GetExamples() {
		b.Run(example.Name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := example.RunOn(loader, wvm.Config{}, 10); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
