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
	"sort"
	"strings"
	"sync"

	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
)

// statisticRunner is a runner that collects statistics about the instruction
// sequence of the executed code.
type statisticRunner struct {
	stats *Statistics
}

func (s *statisticRunner) run(c *context) error {
	stats := statsCollector{stats: newStatistics()}
	var executionError error
	for c.status == StatusRunning {
		if c.pc < len(c.code) {
			// Only instructions that pass all checks are counted.
			pc := c.pc
			executionError = step(c)
			if executionError != nil {
				break
			}
			stats.nextOp(vm.OpCode(c.code[pc]))
			continue
		}
		executionError = step(c)
	}
	s.stats.insert(stats.stats)
	return executionError
}

// Statistics contains the instruction sequence statistics of code executions.
// It counts the number of times each instruction is executed, as well as the
// number of times each pair of instructions is executed. Statistics may be
// shared by interpreters running concurrently.
type Statistics struct {
	mutex       sync.Mutex
	count       uint64
	singleCount map[uint64]uint64
	pairCount   map[uint64]uint64
}

// NewStatistics creates an empty statistics collection.
func NewStatistics() *Statistics {
	return newStatistics()
}

func newStatistics() *Statistics {
	return &Statistics{
		singleCount: map[uint64]uint64{},
		pairCount:   map[uint64]uint64{},
	}
}

// insert adds the instruction counts of the given statistics to this instance.
func (s *Statistics) insert(src *Statistics) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.count += src.count
	for k, v := range src.singleCount {
		s.singleCount[k] += v
	}
	for k, v := range src.pairCount {
		s.pairCount[k] += v
	}
}

// Steps returns the total number of counted instructions.
func (s *Statistics) Steps() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.count
}

// Count returns how often the given instruction was executed.
func (s *Statistics) Count(op vm.OpCode) uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.singleCount[uint64(op)]
}

// Reset clears the collected statistics.
func (s *Statistics) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.count = 0
	s.singleCount = map[uint64]uint64{}
	s.pairCount = map[uint64]uint64{}
}

// Summary returns a human-readable summary of the collected statistics
// listing the most frequent instructions and instruction pairs.
func (s *Statistics) Summary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	type entry struct {
		value uint64
		count uint64
	}

	getTopN := func(data map[uint64]uint64, n int) []entry {
		list := make([]entry, 0, len(data))
		for k, c := range data {
			list = append(list, entry{k, c})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].count != list[j].count {
				return list[i].count > list[j].count
			}
			return list[i].value < list[j].value
		})
		if len(list) < n {
			return list
		}
		return list[0:n]
	}

	percent := func(count uint64) float32 {
		if s.count == 0 {
			return 0
		}
		return float32(count*100) / float32(s.count)
	}

	builder := strings.Builder{}
	write := func(format string, args ...interface{}) {
		builder.WriteString(fmt.Sprintf(format, args...))
	}

	write("\n----- Statistics ------\n")
	write("\nSteps: %d\n", s.count)
	write("\nSingles:\n")
	for _, e := range getTopN(s.singleCount, 5) {
		write("\t%-12v: %d (%.2f%%)\n", vm.OpCode(e.value), e.count, percent(e.count))
	}
	write("\nPairs:\n")
	for _, e := range getTopN(s.pairCount, 5) {
		write("\t%-12v%-12v: %d (%.2f%%)\n", vm.OpCode(e.value>>8), vm.OpCode(e.value&0xff), e.count, percent(e.count))
	}
	write("\n")

	return builder.String()
}

// statsCollector keeps track of the last instruction executed by the VM to
// collect instruction pair statistics.
type statsCollector struct {
	stats *Statistics
	last  uint64
}

func (s *statsCollector) nextOp(op vm.OpCode) {
	cur := uint64(op)
	s.stats.count++
	s.stats.singleCount[cur]++
	if s.stats.count > 1 {
		s.stats.pairCount[s.last<<8|cur]++
	}
	s.last = cur
}
