package asm

import (
	"strings"

	"github.com/hexaflex/tbc/arch"
	"github.com/hexaflex/tbc/asm/ar"
	"github.com/hexaflex/tbc/asm/parser"
	"github.com/hexaflex/tbc/cpu"
)

// assembler holds assembler context. It turns the statements of a single
// source file into an archive.
type assembler struct {
	ar      *ar.Archive    // Target archive.
	symbols map[string]int // Labels mapped to their addresses.
	regs    cpu.Registers  // Initial register values.
	seen    [arch.RegisterCount]bool
	address int  // Address at which next instruction is written.
	debug   bool // Emit debug symbols?
}

func newAssembler(debug bool) *assembler {
	return &assembler{
		ar:      ar.New(),
		symbols: make(map[string]int),
		debug:   debug,
	}
}

// Assemble compiles the given statements into an archive.
// The filename is recorded in the debug symbols, if requested.
func Assemble(list []parser.Statement, filename string, debug bool) (*ar.Archive, error) {
	a := newAssembler(debug)
	return a.assemble(list, filename)
}

// assemble compiles the given statements into an archive.
func (a *assembler) assemble(list []parser.Statement, filename string) (*ar.Archive, error) {
	if err := a.resolveLabels(list); err != nil {
		return nil, err
	}

	if a.debug {
		a.ar.Debug.Files = append(a.ar.Debug.Files, filename)
	}

	if err := a.compile(list); err != nil {
		return nil, err
	}

	a.ar.SetRegisters(&a.regs)
	return a.ar, nil
}

// resolveLabels assigns addresses to all labels.
func (a *assembler) resolveLabels(list []parser.Statement) error {
	a.address = 0
	for _, s := range list {
		switch s.Kind {
		case parser.LabelStatement:
			key := strings.ToLower(s.Name)
			if _, ok := a.symbols[key]; ok {
				return newError(s.Pos, "duplicate label %q", s.Name)
			}
			if arch.IsRegister(s.Name) {
				return newError(s.Pos, "label %q shadows a register name", s.Name)
			}
			a.symbols[key] = a.address

		case parser.InstructionStatement:
			a.address += 2
		}
	}
	return nil
}

// compile encodes all instructions and register definitions.
func (a *assembler) compile(list []parser.Statement) error {
	var label string

	a.address = 0
	for _, s := range list {
		switch s.Kind {
		case parser.LabelStatement:
			label = s.Name

		case parser.RegisterStatement:
			if err := a.compileRegister(s); err != nil {
				return err
			}

		case parser.InstructionStatement:
			if err := a.compileInstruction(s, label); err != nil {
				return err
			}
			label = ""
		}
	}
	return nil
}

// compileRegister sets an initial register value.
func (a *assembler) compileRegister(s parser.Statement) error {
	index := arch.RegisterIndex(s.Name)
	if index == -1 {
		return newError(s.Pos, "unknown register %q", s.Name)
	}

	if a.seen[index] {
		return newError(s.Pos, "duplicate definition of register %s", arch.RegisterName(index))
	}
	a.seen[index] = true

	v, err := parser.ParseWide(s.Arg)
	if err != nil {
		return newError(s.ArgPos, "invalid value %q for register %s: %v", s.Arg, arch.RegisterName(index), err)
	}

	a.regs.Get(index).Set(v)
	return nil
}

// compileInstruction encodes a single instruction.
func (a *assembler) compileInstruction(s parser.Statement, label string) error {
	opcode, ok := arch.Opcode(s.Name)
	if !ok {
		return newError(s.Pos, "unknown instruction %q", s.Name)
	}

	operand, err := a.encodeOperand(s, opcode)
	if err != nil {
		return err
	}

	a.ar.Instructions = append(a.ar.Instructions, byte(opcode), byte(operand))

	if a.debug {
		a.ar.Debug.Symbols = append(a.ar.Debug.Symbols, ar.DebugData{
			Address: a.address,
			File:    0,
			Line:    s.Pos.Line,
			Col:     s.Pos.Col,
			Offset:  s.Pos.Offset,
			Label:   label,
		})
	}

	a.address += 2
	return nil
}

// encodeOperand turns the statement's operand into its three-bit encoding.
func (a *assembler) encodeOperand(s parser.Statement, opcode int) (int, error) {
	if s.Arg == "" {
		if arch.Mode(opcode) == arch.Ignored {
			return 0, nil
		}
		return 0, newError(s.Pos, "missing operand for %s", strings.ToUpper(s.Name))
	}

	if index := arch.RegisterIndex(s.Arg); index != -1 {
		if !arch.IsCombo(opcode) {
			return 0, newError(s.ArgPos, "%s does not accept register operands", strings.ToUpper(s.Name))
		}
		return arch.ComboA + index, nil
	}

	if addr, ok := a.symbols[strings.ToLower(s.Arg)]; ok {
		if opcode != arch.JNZ {
			return 0, newError(s.ArgPos, "only JNZ accepts a label operand")
		}
		if addr >= arch.OpcodeCount {
			return 0, newError(s.ArgPos, "label %q at address %d is out of jump range", s.Arg, addr)
		}
		return addr, nil
	}

	v, err := parser.ParseNumber(s.Arg)
	if err != nil {
		return 0, newError(s.ArgPos, "undefined operand %q", s.Arg)
	}

	if v < 0 || v >= arch.OpcodeCount {
		return 0, newError(s.ArgPos, "operand %d is out of range [0,7]", v)
	}

	if arch.IsCombo(opcode) && v == arch.ComboInvalid {
		return 0, newError(s.ArgPos, "invalid combo operand %d", v)
	}

	return int(v), nil
}
