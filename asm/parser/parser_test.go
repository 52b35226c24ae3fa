package parser

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/tbc/arch"
)

const exampleInput = `Register A: 729
Register B: 0
Register C: 0

Program: 0,1,5,4,3,0
`

func TestParseInput(t *testing.T) {
	in, err := ParseInput(strings.NewReader(exampleInput), "input.txt")
	require.NoError(t, err)

	assert.Equal(t, uint64(729), in.Registers.A.Uint64())
	assert.True(t, in.Registers.B.IsZero())
	assert.True(t, in.Registers.C.IsZero())
	assert.Equal(t, arch.Program{0, 1, 5, 4, 3, 0}, in.Program)
}

func TestParseInputNoTrailingNewline(t *testing.T) {
	src := "Register B: 16#ff\r\nProgram: 2, 6 ,5,5"
	in, err := ParseInput(strings.NewReader(src), "input.txt")
	require.NoError(t, err)

	assert.True(t, in.Registers.A.IsZero())
	assert.Equal(t, uint64(255), in.Registers.B.Uint64())
	assert.Equal(t, arch.Program{2, 6, 5, 5}, in.Program)
}

func TestParseInputWideRegister(t *testing.T) {
	src := "Register A: 340282366920938463463374607431768211456\nProgram: 3,0\n"
	in, err := ParseInput(strings.NewReader(src), "")
	require.NoError(t, err)
	assert.Equal(t, 129, in.Registers.A.BitLen())
}

func TestParseInputErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		src  string
		want string
	}{
		{"unknown register", "Register D: 1\nProgram: 3,0", "input.txt:1:10 unknown register \"D\""},
		{"duplicate register", "Register A: 1\nRegister a: 2\nProgram: 3,0", "input.txt:2:10 duplicate definition of register A"},
		{"negative register", "Register A: -1\nProgram: 3,0", "input.txt:1:13 invalid value \"-1\" for register A"},
		{"missing program", "Register A: 1\n", "input.txt:1:1 missing program definition"},
		{"empty program", "Program:\n", "input.txt:1:8 program has no values"},
		{"duplicate program", "Program: 3,0\nProgram: 3,0", "input.txt:2:1 duplicate program definition"},
		{"missing comma", "Program: 3 0", "input.txt:1:12 unexpected \"0\"; expected ','"},
		{"trailing comma", "Program: 3,0,", "input.txt:1:13 trailing ','"},
		{"bad character", "Program: 3,0\n$", "input.txt:2:1 unexpected character '$'"},
		{"out of range", "Program: 3,9", "input.txt:1:12 value 9 at index 1 is out of range [0,7]"},
		{"negative value", "Program: -1,0", "input.txt:1:10 value -1 at index 0 is out of range [0,7]"},
		{"odd length", "Program: 3,0,5", "input.txt:1:1 program has odd length 3"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput(strings.NewReader(tt.src), "input.txt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseInputReportsAllValues(t *testing.T) {
	_, err := ParseInput(strings.NewReader("Program: 8,0,3,9"), "input.txt")
	require.Error(t, err)

	set, ok := err.(arch.ErrorSet)
	require.True(t, ok, "expected ErrorSet; have %T", err)
	require.Equal(t, 2, set.Len())

	var verr *arch.ValueError
	require.True(t, errors.As(set[1], &verr))
	assert.Equal(t, 3, verr.Index)

	var perr *Error
	require.True(t, errors.As(set[1], &perr))
	assert.Equal(t, 16, perr.Pos.Col)
}

const exampleSource = `; Counts down from A, printing each step.
register a 2024

loop: adv 1
      out a   ; A % 8
      jnz loop
`

func TestParseSource(t *testing.T) {
	list, err := ParseSource(strings.NewReader(exampleSource), "count.tbc")
	require.NoError(t, err)
	require.Len(t, list, 5)

	assert.Equal(t, RegisterStatement, list[0].Kind)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "2024", list[0].Arg)

	assert.Equal(t, LabelStatement, list[1].Kind)
	assert.Equal(t, "loop", list[1].Name)
	assert.Equal(t, 4, list[1].Pos.Line)

	assert.Equal(t, InstructionStatement, list[2].Kind)
	assert.Equal(t, "adv", list[2].Name)
	assert.Equal(t, "1", list[2].Arg)
	assert.Equal(t, 4, list[2].Pos.Line)
	assert.Equal(t, 7, list[2].Pos.Col)

	assert.Equal(t, "out", list[3].Name)
	assert.Equal(t, "a", list[3].Arg)
	assert.Equal(t, 5, list[3].ArgPos.Line)
	assert.Equal(t, 11, list[3].ArgPos.Col)

	assert.Equal(t, "jnz", list[4].Name)
	assert.Equal(t, "loop", list[4].Arg)
}

func TestParseSourceErrors(t *testing.T) {
	for _, tt := range []struct {
		src  string
		want string
	}{
		{"adv 1 2", "x.tbc:1:7 unexpected \"2\"; instructions take one operand"},
		{"register a", "x.tbc:1:1 invalid register statement"},
		{"1 adv", "x.tbc:1:1 unexpected \"1\"; expected label"},
		{"adv ,", "x.tbc:1:5 unexpected \",\"; expected operand"},
	} {
		_, err := ParseSource(strings.NewReader(tt.src), "x.tbc")
		require.Error(t, err, tt.src)
		assert.Contains(t, err.Error(), tt.want, tt.src)
	}
}

func TestParseWide(t *testing.T) {
	v, err := ParseWide("1_000")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v.Uint64())

	v, err = ParseWide("16#00ff")
	require.NoError(t, err)
	assert.Equal(t, uint64(255), v.Uint64())

	_, err = ParseWide("2#101")
	assert.Error(t, err)
}
