package arch

// OperandMode defines how an instruction interprets its operand.
type OperandMode byte

// Known operand modes.
const (
	Literal OperandMode = iota // x = operand
	Combo                      // x = 0..3, A, B or C
	Ignored                    // operand is read but not used
)

// Mode returns the operand mode for the given opcode.
func Mode(opcode int) OperandMode {
	switch opcode {
	case ADV, BST, OUT, BDV, CDV:
		return Combo
	case BXC:
		return Ignored
	}
	return Literal
}

// IsCombo returns true if the given opcode takes a combo operand.
func IsCombo(opcode int) bool {
	return Mode(opcode) == Combo
}

// Combo operand encodings which refer to registers.
const (
	ComboA       = 4
	ComboB       = 5
	ComboC       = 6
	ComboInvalid = 7
)

// ComboName returns a human readable name for the given combo operand.
func ComboName(operand int) string {
	switch {
	case operand >= 0 && operand <= 3:
		return string(rune('0' + operand))
	case operand >= ComboA && operand <= ComboC:
		return RegisterName(operand - ComboA)
	}
	return "invalid"
}
