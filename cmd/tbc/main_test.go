package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexaflex/tbc/asm"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	c := rootCommand()
	c.SetArgs(args)
	c.SetOut(&stdout)
	c.SetErr(&stderr)

	err := c.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, data string) string {
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))
	return file
}

func TestRun(t *testing.T) {
	file := writeFile(t, "input.txt", "Register A: 729\nRegister B: 0\nRegister C: 0\n\nProgram: 0,1,5,4,3,0\n")

	stdout, _, err := execute(t, "run", file)
	require.NoError(t, err)
	assert.Equal(t, "4,6,3,5,6,3,5,2,1,0\n", stdout)
}

func TestSolve(t *testing.T) {
	file := writeFile(t, "input.txt", "Register A: 2024\nProgram: 0,3,5,4,3,0\n")

	stdout, _, err := execute(t, "solve", file)
	require.NoError(t, err)
	assert.Equal(t, "part1: 5,7,3,0\npart2: 117440\n", stdout)
}

func TestQuineNotFound(t *testing.T) {
	file := writeFile(t, "input.txt", "Program: 0,3,5,5,3,0\n")

	stdout, _, err := execute(t, "quine", file)
	require.NoError(t, err)
	assert.Equal(t, "not found\n", stdout)

	file = writeFile(t, "input.txt", "Program: 5,4,0,3\n")

	stdout, _, err = execute(t, "quine", file)
	require.NoError(t, err)
	assert.Equal(t, "not found\n", stdout)
}

func TestMalformedInput(t *testing.T) {
	file := writeFile(t, "input.txt", "Register A: 1\nProgram: 0,9,5,4\n")

	stdout, _, err := execute(t, "solve", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.Empty(t, stdout)
}

func TestCycleCap(t *testing.T) {
	file := writeFile(t, "input.txt", "Register A: 10\nProgram: 5,0,3,0\n")

	stdout, stderr, err := execute(t, "run", "--max-cycles", "6", file)
	require.NoError(t, err)
	assert.Equal(t, "0,0,0\n", stdout)
	assert.Contains(t, stderr, "cycle limit of 6 reached")
}

func TestTrace(t *testing.T) {
	file := writeFile(t, "count.tbc", "register a 8\nloop: adv 3\nout a\njnz loop\n")

	stdout, stderr, err := execute(t, "run", "--trace", file)
	require.NoError(t, err)
	assert.Equal(t, "1,0\n", stdout)
	assert.Contains(t, stderr, "00 ADV 3 (3)")
	assert.Contains(t, stderr, "A=8 B=0 C=0")
	assert.Contains(t, stderr, "count.tbc:2:7 loop:")
}

func TestAsm(t *testing.T) {
	src := writeFile(t, "quine.tbc", "register a 117440\nloop: adv 3\nout a\njnz loop\n")
	out := filepath.Join(t.TempDir(), "build", "quine.a")

	_, _, err := execute(t, "asm", "--debug", "-o", out, src)
	require.NoError(t, err)

	archive, err := asm.Build(out, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 3, 5, 4, 3, 0}, archive.Instructions)
	assert.Len(t, archive.Debug.Symbols, 3)

	stdout, _, err := execute(t, "run", out)
	require.NoError(t, err)
	assert.Equal(t, "0,3,5,4,3,0\n", stdout)

	stdout, _, err = execute(t, "disasm", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "00 ADV 3\t(combo: 3)")
	assert.Contains(t, stdout, "Label: loop")
}

func TestAsmStripsDebug(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, "quine.tbc", "register a 117440\nloop: adv 3\nout a\njnz loop\n")
	withDebug := filepath.Join(dir, "debug.a")
	stripped := filepath.Join(dir, "stripped.a")

	_, _, err := execute(t, "asm", "--debug", "-o", withDebug, src)
	require.NoError(t, err)

	_, _, err = execute(t, "asm", "-o", stripped, withDebug)
	require.NoError(t, err)

	archive, err := asm.Build(stripped, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 3, 5, 4, 3, 0}, archive.Instructions)
	assert.Equal(t, "117440", archive.Registers[0])
	assert.Empty(t, archive.Debug.Files)
	assert.Empty(t, archive.Debug.Symbols)
}

func TestConfigFile(t *testing.T) {
	file := writeFile(t, "tbc.toml", "max-cycles = 4\ntrial-cycles = 20\n")
	input := writeFile(t, "input.txt", "Register A: 10\nProgram: 5,0,3,0\n")

	stdout, _, err := execute(t, "run", "--config", file, input)
	require.NoError(t, err)
	assert.Equal(t, "0,0\n", stdout)

	stdout, _, err = execute(t, "run", "--config", file, "--max-cycles", "2", input)
	require.NoError(t, err)
	assert.Equal(t, "0\n", stdout)
}

func TestConfigLoad(t *testing.T) {
	c := NewConfig()
	require.NoError(t, c.Load(writeFile(t, "tbc.toml", "trace = true\n")))
	assert.True(t, c.Trace)
	assert.Equal(t, DefaultMaxCycles, c.MaxCycles)

	err := NewConfig().Load(writeFile(t, "tbc.toml", "cycles = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: cycles")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, AppName)
}
