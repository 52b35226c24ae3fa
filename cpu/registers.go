package cpu

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hexaflex/tbc/arch"
)

// Registers holds the machine's three general purpose registers.
// Each register is a 256-bit unsigned integer.
type Registers struct {
	A uint256.Int
	B uint256.Int
	C uint256.Int
}

// NewRegisters creates a register file with the given initial values.
func NewRegisters(a, b, c uint64) Registers {
	var r Registers
	r.A.SetUint64(a)
	r.B.SetUint64(b)
	r.C.SetUint64(c)
	return r
}

// Get returns the register with the given index.
// Returns nil if the index is not recognized.
func (r *Registers) Get(index int) *uint256.Int {
	switch index {
	case arch.A:
		return &r.A
	case arch.B:
		return &r.B
	case arch.C:
		return &r.C
	}
	return nil
}

func (r *Registers) String() string {
	return fmt.Sprintf("A=%s B=%s C=%s", r.A.Dec(), r.B.Dec(), r.C.Dec())
}
