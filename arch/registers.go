package arch

import "strings"

// Register indices.
const (
	A = iota
	B
	C
)

// RegisterCount is the number of registers in the machine.
const RegisterCount = 3

// IsRegister returns true if the given name represents a known register.
func IsRegister(name string) bool {
	return RegisterIndex(name) > -1
}

// RegisterIndex returns the index for the given register.
// Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	switch strings.ToLower(name) {
	case "a":
		return A
	case "b":
		return B
	case "c":
		return C
	}
	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	switch n {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	}
	return ""
}
