// Package ar defines the compiled archive type, as well as an encoder
// and decoder for its file format.
//
// An archive is a gzip compressed CBOR document holding the initial
// register values, the program and optional debug symbols.
package ar

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/hexaflex/tbc/arch"
	"github.com/hexaflex/tbc/cpu"
)

// Archive defines a complete, compiled program along with the register
// values it should start with.
type Archive struct {
	Registers    [arch.RegisterCount]string `cbor:"registers"`       // Decimal register values.
	Instructions []byte                     `cbor:"instructions"`    // Opcode/operand pairs.
	Debug        Debug                      `cbor:"debug,omitempty"` // Optional debug symbols.
}

// New creates a new, empty archive.
func New() *Archive {
	return &Archive{
		Registers: [arch.RegisterCount]string{"0", "0", "0"},
	}
}

// Load reads archive data from the given stream.
func (a *Archive) Load(r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrapf(err, "ar: invalid archive format")
	}

	defer gz.Close()

	var b Archive
	if err := cbor.NewDecoder(gz).Decode(&b); err != nil {
		return errors.Wrapf(err, "ar: invalid archive data")
	}

	if _, _, err := b.Machine(); err != nil {
		return err
	}

	*a = b
	return nil
}

// Save writes archive data to the given stream.
func (a *Archive) Save(w io.Writer) error {
	gz := gzip.NewWriter(w)

	if err := cbor.NewEncoder(gz).Encode(a); err != nil {
		gz.Close()
		return errors.Wrapf(err, "ar")
	}

	return errors.Wrapf(gz.Close(), "ar")
}

// SetRegisters stores the given register values in the archive.
func (a *Archive) SetRegisters(r *cpu.Registers) {
	for i := range a.Registers {
		a.Registers[i] = r.Get(i).Dec()
	}
}

// Machine returns the validated program and initial register values.
func (a *Archive) Machine() (arch.Program, cpu.Registers, error) {
	var regs cpu.Registers

	for i, v := range a.Registers {
		if v == "" {
			continue
		}

		n, err := uint256.FromDecimal(v)
		if err != nil {
			return nil, regs, errors.Wrapf(err, "ar: invalid value for register %s", arch.RegisterName(i))
		}
		regs.Get(i).Set(n)
	}

	values := make([]int64, len(a.Instructions))
	for i, v := range a.Instructions {
		values[i] = int64(v)
	}

	program, err := arch.NewProgram(values)
	if err != nil {
		return nil, regs, errors.Wrapf(err, "ar: invalid program")
	}

	return program, regs, nil
}

// String returns a human-readable dump of the archive's contents.
func (a *Archive) String() string {
	var sb strings.Builder

	sb.WriteString("Registers:\n")
	for i, v := range a.Registers {
		fmt.Fprintf(&sb, " %s = %s\n", arch.RegisterName(i), v)
	}

	if len(a.Debug.Files) > 0 {
		fmt.Fprintf(&sb, "Source files (%d):\n", len(a.Debug.Files))
		for i, v := range a.Debug.Files {
			fmt.Fprintf(&sb, " %d: %s\n", i, v)
		}

		fmt.Fprintf(&sb, "Debug symbols (%d):\n", len(a.Debug.Symbols))
		for _, v := range a.Debug.Symbols {
			fmt.Fprintf(&sb, " %02d: File: %d, Line: %d, Col: %d", v.Address, v.File, v.Line, v.Col)
			if v.Label != "" {
				fmt.Fprintf(&sb, ", Label: %s", v.Label)
			}
			sb.WriteByte('\n')
		}
	}

	if len(a.Instructions) > 0 {
		fmt.Fprintf(&sb, "Instructions:\n%s", arch.Program(a.Instructions).Disassemble())
	}

	return sb.String()
}
