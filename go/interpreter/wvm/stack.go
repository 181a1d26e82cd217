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
	"strings"

	"github.com/holiman/uint256"
)

// defaultMaxStackSize is the stack capacity used if none is configured. It
// matches the stack limit of the EVM.
const defaultMaxStackSize = 1024

// stack is the operand stack of 256-bit words used by the VM. Boundaries are
// not checked by the stack operations themselves. The interpreter verifies
// for every instruction that it will neither under- nor overflow the stack
// before the instruction is executed.
//
// The stack is owned by a single interpreter run and is not thread-safe.
type stack struct {
	data  []uint256.Int
	limit int // < maximum number of elements
}

// newStack creates an empty stack holding at most limit elements.
func newStack(limit int) *stack {
	return &stack{
		data:  make([]uint256.Int, 0, min(limit, defaultMaxStackSize)),
		limit: limit,
	}
}

// push adds a copy of the given value to the top of the stack.
func (s *stack) push(d *uint256.Int) {
	s.data = append(s.data, *d)
}

// pushUndefined adds a value with an undefined value to the top of the stack
// and returns a pointer to this element. Use this function if the element on
// the top stack should be modified directly using the returned pointer.
func (s *stack) pushUndefined() *uint256.Int {
	s.data = append(s.data, uint256.Int{})
	return &s.data[len(s.data)-1]
}

// pop removes the top element from the stack and returns a pointer to it. The
// obtained pointer is only valid until the next push operation.
func (s *stack) pop() *uint256.Int {
	top := &s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return top
}

// peek returns a pointer to the top element of the stack without removing it.
func (s *stack) peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// peekN returns a pointer to the n-th element from the top of the stack
// without removing it. peekN(0) is equivalent to peek().
func (s *stack) peekN(n int) *uint256.Int {
	return &s.data[len(s.data)-n-1]
}

// len returns the number of elements on the stack.
func (s *stack) len() int {
	return len(s.data)
}

// get returns the element at the given index. The bottom element is at index 0.
func (s *stack) get(i int) *uint256.Int {
	return &s.data[i]
}

// snapshot returns a copy of the stack content, bottom element first.
func (s *stack) snapshot() []uint256.Int {
	res := make([]uint256.Int, len(s.data))
	copy(res, s.data)
	return res
}

func (s *stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.len(); i++ {
		b.WriteString(fmt.Sprintf("    [%4d] %v\n", s.len()-i-1, formatWord(s.peekN(i))))
	}
	return b.String()
}

// formatWord prints a word as 0x-prefixed hex in four groups of 8 bytes.
func formatWord(z *uint256.Int) string {
	bytes := z.Bytes32()
	groups := make([]string, 0, 4)
	for i := 0; i < len(bytes); i += 8 {
		groups = append(groups, fmt.Sprintf("%x", bytes[i:i+8]))
	}
	return "0x" + strings.Join(groups, " ")
}
