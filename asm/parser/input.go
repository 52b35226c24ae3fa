// Package parser reads puzzle inputs and assembly sources for the
// three-bit computer.
package parser

import (
	"io"
	"strings"

	"github.com/hexaflex/tbc/arch"
	"github.com/hexaflex/tbc/cpu"
)

// Input defines a parsed puzzle input: initial register values and a program.
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
type Input struct {
	Registers cpu.Registers
	Program   arch.Program
}

// ParseInput reads a puzzle input from the given reader. Registers which
// are not listed default to zero. The input is rejected as a whole if
// any program value is out of range.
func ParseInput(r io.Reader, filename string) (*Input, error) {
	tokens, err := tokenizeAll(r, filename)
	if err != nil {
		return nil, err
	}

	var in Input
	var seen [arch.RegisterCount]bool
	var haveProgram bool

	for _, line := range splitLines(tokens) {
		head := line[0]
		if head.typ != tokIdent {
			return nil, NewError(head.pos, "unexpected %q; expected Register or Program", head.value)
		}

		switch strings.ToLower(head.value) {
		case "register":
			if err := in.parseRegister(line, &seen); err != nil {
				return nil, err
			}

		case "program":
			if haveProgram {
				return nil, NewError(head.pos, "duplicate program definition")
			}
			if err := in.parseProgram(line); err != nil {
				return nil, err
			}
			haveProgram = true

		default:
			return nil, NewError(head.pos, "unexpected %q; expected Register or Program", head.value)
		}
	}

	if !haveProgram {
		return nil, NewError(Position{File: filename, Line: 1, Col: 1}, "missing program definition")
	}

	return &in, nil
}

// parseRegister parses `Register <name>: <value>`.
func (in *Input) parseRegister(line []token, seen *[arch.RegisterCount]bool) error {
	if len(line) != 4 || line[1].typ != tokIdent || line[2].typ != tokColon || line[3].typ != tokNumber {
		return NewError(line[0].pos, "invalid register definition; expected `Register <name>: <value>`")
	}

	index := arch.RegisterIndex(line[1].value)
	if index == -1 {
		return NewError(line[1].pos, "unknown register %q", line[1].value)
	}

	if seen[index] {
		return NewError(line[1].pos, "duplicate definition of register %s", arch.RegisterName(index))
	}
	seen[index] = true

	v, err := ParseWide(line[3].value)
	if err != nil {
		return NewError(line[3].pos, "invalid value %q for register %s: %v",
			line[3].value, arch.RegisterName(index), err)
	}

	in.Registers.Get(index).Set(v)
	return nil
}

// parseProgram parses `Program: <value>, <value>, ...`.
func (in *Input) parseProgram(line []token) error {
	if len(line) < 2 || line[1].typ != tokColon {
		return NewError(line[0].pos, "invalid program definition; expected `Program: <values>`")
	}

	if len(line) == 2 {
		return NewError(line[1].pos, "program has no values")
	}

	var values []int64
	var positions []Position

	for i, tok := range line[2:] {
		if i%2 == 1 {
			if tok.typ != tokComma {
				return NewError(tok.pos, "unexpected %q; expected ','", tok.value)
			}
			continue
		}

		if tok.typ != tokNumber {
			return NewError(tok.pos, "unexpected %q; expected a number", tok.value)
		}

		v, err := ParseNumber(tok.value)
		if err != nil {
			return NewError(tok.pos, "invalid number %q", tok.value)
		}

		values = append(values, v)
		positions = append(positions, tok.pos)
	}

	if line[len(line)-1].typ == tokComma {
		return NewError(line[len(line)-1].pos, "trailing ','")
	}

	program, err := arch.NewProgram(values)
	if err != nil {
		return withPositions(err, line[0].pos, positions)
	}

	in.Program = program
	return nil
}

// withPositions attaches source context to program validation errors.
func withPositions(err error, pos Position, positions []Position) error {
	set, ok := err.(arch.ErrorSet)
	if !ok {
		return WrapError(pos, err)
	}

	var out arch.ErrorSet
	for _, e := range set {
		if ve, ok := e.(*arch.ValueError); ok && ve.Index < len(positions) {
			out.Append(WrapError(positions[ve.Index], e))
		} else {
			out.Append(WrapError(pos, e))
		}
	}
	return out
}

// splitLines groups tokens by line, dropping empty lines.
func splitLines(tokens []token) [][]token {
	var lines [][]token
	var line []token

	for _, tok := range tokens {
		if tok.typ != tokEOL {
			line = append(line, tok)
			continue
		}
		if len(line) > 0 {
			lines = append(lines, line)
			line = nil
		}
	}

	if len(line) > 0 {
		lines = append(lines, line)
	}

	return lines
}
