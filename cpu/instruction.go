package cpu

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hexaflex/tbc/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP      int // Instruction address.
	Opcode  int // Instruction opcode.
	Operand int // Raw operand value.
}

// Decode decodes the instruction at the given address.
func (i *Instruction) Decode(p arch.Program, ip int) error {
	i.IP = ip
	i.Opcode = -1
	i.Operand = -1

	if ip < 0 || ip+1 >= len(p) {
		return NewError(i, "truncated instruction")
	}

	i.Opcode = int(p[ip])
	i.Operand = int(p[ip+1])

	if i.Opcode >= arch.OpcodeCount {
		return NewError(i, "unknown opcode %d", i.Opcode)
	}
	if i.Operand >= arch.OpcodeCount {
		return NewError(i, "operand %d out of range", i.Operand)
	}

	return nil
}

// Combo resolves the operand as a combo operand against the given
// registers. The returned value must not be modified.
func (i *Instruction) Combo(r *Registers) (*uint256.Int, error) {
	switch {
	case i.Operand >= 0 && i.Operand <= 3:
		return uint256.NewInt(uint64(i.Operand)), nil
	case i.Operand == arch.ComboA:
		return &r.A, nil
	case i.Operand == arch.ComboB:
		return &r.B, nil
	case i.Operand == arch.ComboC:
		return &r.C, nil
	}
	return nil, NewError(i, "invalid combo operand %d", i.Operand)
}

func (i *Instruction) String() string {
	name, ok := arch.Name(i.Opcode)
	if !ok {
		name = fmt.Sprintf("%02x", i.Opcode)
	}

	if arch.IsCombo(i.Opcode) {
		return fmt.Sprintf("%02d %s %s", i.IP, name, arch.ComboName(i.Operand))
	}
	return fmt.Sprintf("%02d %s %d", i.IP, name, i.Operand)
}
