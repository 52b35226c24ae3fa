package parser

import (
	"io"
	"strings"
)

// Kind identifies the type of a source statement.
type Kind int

// Known statement kinds.
const (
	LabelStatement       Kind = iota // loop:
	InstructionStatement             // adv 3
	RegisterStatement                // register a 729
)

// Statement defines a single assembly source statement.
type Statement struct {
	Kind   Kind
	Pos    Position
	Name   string   // Label name, instruction mnemonic or register name.
	Arg    string   // Operand or register value. Empty if omitted.
	ArgPos Position // Position of Arg.
}

// ParseSource reads assembly source from the given reader.
//
//	; Comment
//	register a 729
//	loop:
//	  adv 1
//	  out a
//	  jnz loop
func ParseSource(r io.Reader, filename string) ([]Statement, error) {
	tokens, err := tokenizeAll(r, filename)
	if err != nil {
		return nil, err
	}

	var list []Statement

	for _, line := range splitLines(tokens) {
		// Labels may share a line with an instruction.
		for len(line) >= 2 && line[0].typ == tokIdent && line[1].typ == tokColon {
			list = append(list, Statement{
				Kind: LabelStatement,
				Pos:  line[0].pos,
				Name: line[0].value,
			})
			line = line[2:]
		}

		if len(line) == 0 {
			continue
		}

		if line[0].typ != tokIdent {
			return nil, NewError(line[0].pos, "unexpected %q; expected label, instruction or register", line[0].value)
		}

		if strings.EqualFold(line[0].value, "register") {
			if len(line) != 3 || line[1].typ != tokIdent || line[2].typ != tokNumber {
				return nil, NewError(line[0].pos, "invalid register statement; expected `register <name> <value>`")
			}

			list = append(list, Statement{
				Kind:   RegisterStatement,
				Pos:    line[0].pos,
				Name:   line[1].value,
				Arg:    line[2].value,
				ArgPos: line[2].pos,
			})
			continue
		}

		stmt := Statement{
			Kind: InstructionStatement,
			Pos:  line[0].pos,
			Name: line[0].value,
		}

		switch len(line) {
		case 1:
		case 2:
			if line[1].typ != tokIdent && line[1].typ != tokNumber {
				return nil, NewError(line[1].pos, "unexpected %q; expected operand", line[1].value)
			}
			stmt.Arg = line[1].value
			stmt.ArgPos = line[1].pos
		default:
			return nil, NewError(line[2].pos, "unexpected %q; instructions take one operand", line[2].value)
		}

		list = append(list, stmt)
	}

	return list, nil
}
