// Package arch defines the three-bit computer's instruction set along with
// some related helper functions.
package arch

import "strings"

// Known opcodes.
const (
	ADV = iota // A = A >> combo
	BXL        // B = B ^ literal
	BST        // B = combo % 8
	JNZ        // if A != 0: ip = literal
	BXC        // B = B ^ C
	OUT        // output combo % 8
	BDV        // B = A >> combo
	CDV        // C = A >> combo
)

// OpcodeCount is the number of valid opcodes. Opcodes and operands
// both fit in three bits.
const OpcodeCount = 8

// Opcode returns the opcode for the given instruction name.
// Returns false if the name is not recognized.
func Opcode(name string) (int, bool) {
	switch strings.ToUpper(name) {
	case "ADV":
		return ADV, true
	case "BXL":
		return BXL, true
	case "BST":
		return BST, true
	case "JNZ":
		return JNZ, true
	case "BXC":
		return BXC, true
	case "OUT":
		return OUT, true
	case "BDV":
		return BDV, true
	case "CDV":
		return CDV, true
	}
	return 0, false
}

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case ADV:
		return "ADV", true
	case BXL:
		return "BXL", true
	case BST:
		return "BST", true
	case JNZ:
		return "JNZ", true
	case BXC:
		return "BXC", true
	case OUT:
		return "OUT", true
	case BDV:
		return "BDV", true
	case CDV:
		return "CDV", true
	}
	return "", false
}
