package arch

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgram(t *testing.T) {
	p, err := NewProgram([]int64{0, 1, 5, 4, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, Program{0, 1, 5, 4, 3, 0}, p)
	assert.Equal(t, "0,1,5,4,3,0", p.String())
}

func TestNewProgramInvalid(t *testing.T) {
	_, err := NewProgram([]int64{0, 8, 5, -1, 3})
	require.Error(t, err)

	errorset, ok := err.(ErrorSet)
	require.True(t, ok, "expected ErrorSet; have %T", err)
	require.Equal(t, 3, errorset.Len())

	var verr *ValueError
	require.True(t, errors.As(errorset[1], &verr))
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, int64(8), verr.Value)
	assert.Contains(t, err.Error(), "odd length 5")
}

func TestReduced(t *testing.T) {
	p := Program{0, 3, 5, 4, 3, 0}
	r, err := p.Reduced()
	require.NoError(t, err)
	assert.Equal(t, Program{0, 3, 5, 4}, r)
	assert.Equal(t, Program{0, 3, 5, 4, 3, 0}, p)

	_, err = Program{5, 4, 0, 3}.Reduced()
	assert.Equal(t, ErrNotLoop, err)

	_, err = Program{}.Reduced()
	assert.Equal(t, ErrNotLoop, err)
}

func TestEqual(t *testing.T) {
	p := Program{0, 3, 5, 4, 3, 0}
	assert.True(t, p.Equal([]uint8{0, 3, 5, 4, 3, 0}))
	assert.False(t, p.Equal([]uint8{0, 3, 5, 4, 3}))
	assert.False(t, p.Equal([]uint8{0, 3, 5, 4, 3, 1}))
}

func TestDisassemble(t *testing.T) {
	want := "00 ADV 1\t(combo: 1)\n" +
		"02 OUT 4\t(combo: A)\n" +
		"04 BXC 0\t(ignored)\n" +
		"06 JNZ 0\n"
	assert.Equal(t, want, Program{0, 1, 5, 4, 4, 0, 3, 0}.Disassemble())
}

func TestOpcodeNames(t *testing.T) {
	for opcode := 0; opcode < OpcodeCount; opcode++ {
		name, ok := Name(opcode)
		require.True(t, ok)

		have, ok := Opcode(name)
		require.True(t, ok)
		assert.Equal(t, opcode, have)
	}

	_, ok := Name(OpcodeCount)
	assert.False(t, ok)

	op, ok := Opcode("out")
	assert.True(t, ok)
	assert.Equal(t, OUT, op)
}

func TestComboName(t *testing.T) {
	for operand, want := range []string{"0", "1", "2", "3", "A", "B", "C", "invalid"} {
		assert.Equal(t, want, ComboName(operand))
	}
}

func TestMode(t *testing.T) {
	for _, op := range []int{ADV, BST, OUT, BDV, CDV} {
		assert.True(t, IsCombo(op))
	}
	assert.Equal(t, Literal, Mode(BXL))
	assert.Equal(t, Literal, Mode(JNZ))
	assert.Equal(t, Ignored, Mode(BXC))
}

func TestRegisters(t *testing.T) {
	for i := 0; i < RegisterCount; i++ {
		assert.Equal(t, i, RegisterIndex(RegisterName(i)))
	}
	assert.True(t, IsRegister("b"))
	assert.False(t, IsRegister("d"))
}
