package arch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotLoop is returned by Program.Reduced when the program does not
// end with a jump instruction.
var ErrNotLoop = errors.New("program does not end in a JNZ instruction")

// Program defines a sequence of opcode/operand pairs. Every value
// fits in three bits. A Program is never modified after it is created.
type Program []uint8

// NewProgram validates the given values and returns them as a Program.
// All out-of-range values are reported, not just the first one.
func NewProgram(values []int64) (Program, error) {
	var errorset ErrorSet

	if len(values)%2 != 0 {
		errorset.Append(errors.Errorf("program has odd length %d; expected opcode/operand pairs", len(values)))
	}

	p := make(Program, len(values))
	for i, v := range values {
		if v < 0 || v >= OpcodeCount {
			errorset.Append(&ValueError{Index: i, Value: v})
			continue
		}
		p[i] = uint8(v)
	}

	if errorset.Len() > 0 {
		return nil, errorset
	}

	return p, nil
}

// String returns the comma separated form of the program.
func (p Program) String() string {
	return Join(p)
}

// Equal returns true if the given values match the program exactly.
func (p Program) Equal(values []uint8) bool {
	if len(p) != len(values) {
		return false
	}
	for i := range p {
		if p[i] != values[i] {
			return false
		}
	}
	return true
}

// Reduced returns the program without its trailing jump instruction.
// This turns a loop body into straight-line code which runs exactly once.
func (p Program) Reduced() (Program, error) {
	n := len(p)
	if n < 2 || p[n-2] != JNZ {
		return nil, ErrNotLoop
	}
	return p[:n-2:n-2], nil
}

// Disassemble returns a human readable listing of the program.
func (p Program) Disassemble() string {
	var sb strings.Builder

	for ip := 0; ip+1 < len(p); ip += 2 {
		opcode, operand := int(p[ip]), int(p[ip+1])
		name, _ := Name(opcode)

		fmt.Fprintf(&sb, "%02d %s %d", ip, name, operand)

		switch Mode(opcode) {
		case Combo:
			fmt.Fprintf(&sb, "\t(combo: %s)", ComboName(operand))
		case Ignored:
			sb.WriteString("\t(ignored)")
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

// Join renders the given values as a comma separated list.
func Join(values []uint8) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	return sb.String()
}

// ValueError defines a program value outside the three-bit range.
type ValueError struct {
	Index int
	Value int64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("value %d at index %d is out of range [0,7]", e.Value, e.Index)
}
