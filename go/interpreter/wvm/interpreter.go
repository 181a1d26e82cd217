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
	"bytes"
	"fmt"
	"io"

	"github.com/Fantom-foundation/wordvm/go/tosca"
	"github.com/Fantom-foundation/wordvm/go/tosca/vm"
	"github.com/holiman/uint256"
)

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package wvm

// Status is the execution state of an interpreter.
type Status byte

const (
	StatusRunning Status = iota // < instructions are being processed
	StatusHalted                // < execution ended with STOP or at the end of the code
	StatusFailed                // < execution ended with an error
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusHalted:
		return "halted"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

const errConflictingRunners = tosca.ConstError("tracing and statistics can not be enabled at the same time")

// Config contains the configuration options of an interpreter. The zero value
// is a valid configuration using the defaults documented for each field.
type Config struct {
	// MaxStackDepth is the maximum number of words on the operand stack. If
	// zero or negative, the EVM limit of 1024 is used.
	MaxStackDepth int
	// StepLimit is the maximum number of instructions executed by a run. If
	// zero, the number of steps is only bounded by the length of the code.
	StepLimit uint64
	// Trace, if set, receives one line per executed instruction.
	Trace io.Writer
	// Statistics, if set, collects instruction statistics of all runs
	// using this configuration.
	Statistics *Statistics

	runner runner
}

// setDefaults fills in the defaults of unset configuration options and
// selects the runner.
func setDefaults(config *Config) error {
	if config.MaxStackDepth <= 0 {
		config.MaxStackDepth = defaultMaxStackSize
	}
	if config.Trace != nil && config.Statistics != nil {
		return errConflictingRunners
	}
	if config.runner == nil {
		switch {
		case config.Trace != nil:
			config.runner = newLogger(config.Trace)
		case config.Statistics != nil:
			config.runner = &statisticRunner{stats: config.Statistics}
		default:
			config.runner = vanillaRunner{}
		}
	}
	return nil
}

// context is the execution state of a single interpreter run: the code, the
// program counter and the operand stack, plus the bookkeeping of the run.
type context struct {
	code      []byte // < immutable, may be shared between runs
	pc        int
	stack     *stack
	status    Status
	err       error  // < the error that made the run fail
	steps     uint64 // < number of executed instructions
	stepLimit uint64
}

// fail records the given error and moves the run into the failed state.
func (c *context) fail(err error) error {
	c.status = StatusFailed
	c.err = err
	return err
}

// Interpreter executes a program on an operand stack of 256-bit words. An
// interpreter is created for exactly one run: it starts at pc 0 with an empty
// stack and ends halted or failed. Interpreters are not thread-safe, but
// independent interpreters may run concurrently.
type Interpreter struct {
	ctxt   context
	runner runner
}

// NewInterpreter decodes the given program text and returns an interpreter
// ready to run it. Malformed program texts are reported as an
// InvalidEncodingError.
func NewInterpreter(program string, config Config) (*Interpreter, error) {
	code, err := DecodeProgram(program)
	if err != nil {
		return nil, err
	}
	return newInterpreter(code, config)
}

// NewInterpreterForCode returns an interpreter running the given byte code.
// The code is copied.
func NewInterpreterForCode(code []byte, config Config) (*Interpreter, error) {
	return newInterpreter(bytes.Clone(code), config)
}

// newInterpreter creates an interpreter using the given code without copying
// it. The code must not be modified afterwards.
func newInterpreter(code []byte, config Config) (*Interpreter, error) {
	if err := setDefaults(&config); err != nil {
		return nil, err
	}
	return &Interpreter{
		ctxt: context{
			code:      code,
			stack:     newStack(config.MaxStackDepth),
			status:    StatusRunning,
			stepLimit: config.StepLimit,
		},
		runner: config.runner,
	}, nil
}

// Run executes the program until it halts or fails. The error causing a
// failure is returned; it is also retained and returned by subsequent calls.
func (i *Interpreter) Run() error {
	if i.ctxt.status != StatusRunning {
		return i.ctxt.err
	}
	if err := i.runner.run(&i.ctxt); err != nil {
		if i.ctxt.status == StatusRunning {
			return i.ctxt.fail(err)
		}
		return err
	}
	return nil
}

// Step executes a single instruction. Reaching the end of the code counts as
// a step moving the interpreter into the halted state.
func (i *Interpreter) Step() error {
	if i.ctxt.status != StatusRunning {
		return i.ctxt.err
	}
	return steps(&i.ctxt, true)
}

// Stack returns a copy of the operand stack. The bottom element comes first,
// the top of the stack is the last element.
func (i *Interpreter) Stack() []uint256.Int {
	return i.ctxt.stack.snapshot()
}

// Pc returns the program counter. After a STOP it points to the STOP
// instruction, after a failure to the failing instruction.
func (i *Interpreter) Pc() int {
	return i.ctxt.pc
}

// Status returns the execution state of the interpreter.
func (i *Interpreter) Status() Status {
	return i.ctxt.status
}

// Err returns the error that made the run fail, nil otherwise.
func (i *Interpreter) Err() error {
	return i.ctxt.err
}

// Steps returns the number of instructions executed so far.
func (i *Interpreter) Steps() uint64 {
	return i.ctxt.steps
}

// Code returns the byte code run by the interpreter. It must not be modified.
func (i *Interpreter) Code() []byte {
	return i.ctxt.code
}

// --- Runners ---

type runner interface {
	// run executes the code of the given context until it halts or fails.
	// Execution failures are recorded in the context and returned.
	run(*context) error
}

// vanillaRunner is the default runner that executes the code without any
// additional features.
type vanillaRunner struct{}

func (r vanillaRunner) run(c *context) error {
	return steps(c, false)
}

// --- Execution ---

// steps executes the code in the given context until the run halts or fails.
// If oneStepOnly is true, only the instruction pointed to by the program
// counter is executed.
func steps(c *context, oneStepOnly bool) error {
	for c.status == StatusRunning {
		if err := step(c); err != nil {
			return err
		}
		if oneStepOnly {
			return nil
		}
	}
	return nil
}

// step executes the instruction at the current program counter. All checks
// are performed before the stack is touched, so a failing instruction leaves
// the stack as it was.
func step(c *context) error {
	if c.pc >= len(c.code) {
		c.status = StatusHalted
		return nil
	}

	op := vm.OpCode(c.code[c.pc])
	inst := &instructionTable[op]
	if inst.execute == nil {
		return c.fail(&UnknownOpCodeError{OpCode: op, Pc: c.pc})
	}

	if c.stepLimit > 0 && c.steps >= c.stepLimit {
		return c.fail(&ResourceExhaustedError{Limit: c.stepLimit, Pc: c.pc})
	}

	if err := checkStackLimits(c.stack.len(), c.stack.limit, inst, c.pc); err != nil {
		return c.fail(err)
	}

	if width := op.ImmediateSize(); width > 0 {
		if err := checkImmediate(c.code, c.pc, width); err != nil {
			return c.fail(err)
		}
	}

	inst.execute(c)
	c.steps++

	if c.status == StatusRunning {
		c.pc += op.Width()
	}
	return nil
}
