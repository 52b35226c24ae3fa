// Package cpu implements the three-bit computer.
package cpu

import (
	"io"

	"github.com/holiman/uint256"

	"github.com/hexaflex/tbc/arch"
)

// TraceFunc represents a callback handler for debug trace output.
// It is called for every decoded instruction, before it is executed.
type TraceFunc func(*Instruction, *Registers)

// CPU implements the runtime.
type CPU struct {
	program arch.Program // Program being executed; never modified.
	regs    Registers    // Register file.
	instr   Instruction  // Decoded instruction data.
	trace   TraceFunc    // Handler for debug trace output.
	output  []uint8      // Values emitted by OUT.
	ip      int          // Instruction pointer.
	cycles  int          // Number of dispatched instructions.
	capped  bool         // Did the last Run stop at its cycle limit?
}

// New creates a new CPU for the given program and initial register values.
// Optionally with the given debug trace handler.
func New(program arch.Program, regs Registers, trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction, *Registers) { /* nop */ }
	}

	return &CPU{
		program: program,
		regs:    regs,
		trace:   trace,
	}
}

// Step performs a single execution step.
// Returns io.EOF if the program has reached its end.
func (c *CPU) Step() error {
	if c.Halted() {
		return io.EOF
	}

	instr := &c.instr
	regs := &c.regs

	if err := instr.Decode(c.program, c.ip); err != nil {
		return err
	}

	c.trace(instr, regs)
	c.cycles++

	next := c.ip + 2

	switch instr.Opcode {
	case arch.ADV:
		n, err := instr.Combo(regs)
		if err != nil {
			return err
		}
		shr(&regs.A, &regs.A, n)

	case arch.BXL:
		regs.B.Xor(&regs.B, uint256.NewInt(uint64(instr.Operand)))

	case arch.BST:
		v, err := instr.Combo(regs)
		if err != nil {
			return err
		}
		regs.B.SetUint64(v.Uint64() & 7)

	case arch.JNZ:
		if !regs.A.IsZero() {
			next = instr.Operand
		}

	case arch.BXC:
		regs.B.Xor(&regs.B, &regs.C)

	case arch.OUT:
		v, err := instr.Combo(regs)
		if err != nil {
			return err
		}
		c.output = append(c.output, uint8(v.Uint64()&7))

	case arch.BDV:
		n, err := instr.Combo(regs)
		if err != nil {
			return err
		}
		shr(&regs.B, &regs.A, n)

	case arch.CDV:
		n, err := instr.Combo(regs)
		if err != nil {
			return err
		}
		shr(&regs.C, &regs.A, n)
	}

	c.ip = next
	return nil
}

// Run executes the program until it halts or until maxCycles instructions
// have been dispatched. A maxCycles value <= 0 means no limit.
//
// Reaching the cycle limit is not an error; Capped reports it and the
// output produced so far remains available.
func (c *CPU) Run(maxCycles int) error {
	c.capped = false

	for n := 0; maxCycles <= 0 || n < maxCycles; n++ {
		if err := c.Step(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}

	c.capped = !c.Halted()
	return nil
}

// Halted returns true if the instruction pointer is past the end of the program.
func (c *CPU) Halted() bool {
	return c.ip >= len(c.program)
}

// Capped returns true if the last call to Run stopped at its cycle limit.
func (c *CPU) Capped() bool {
	return c.capped
}

// Output returns the values emitted so far.
func (c *CPU) Output() []uint8 {
	return c.output
}

// OutputString returns the emitted values as a comma separated list.
func (c *CPU) OutputString() string {
	return arch.Join(c.output)
}

// Registers returns a copy of the current register values.
func (c *CPU) Registers() Registers {
	return c.regs
}

// IP returns the current instruction pointer.
func (c *CPU) IP() int {
	return c.ip
}

// Cycles returns the number of instructions dispatched so far.
func (c *CPU) Cycles() int {
	return c.cycles
}

// shr sets dst to src >> n. Shifting by 256 bits or more clears dst.
func shr(dst, src, n *uint256.Int) {
	if !n.IsUint64() || n.Uint64() >= 256 {
		dst.Clear()
		return
	}
	dst.Rsh(src, uint(n.Uint64()))
}
