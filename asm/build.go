// Package asm implements an assembler which turns source files into
// archives, ready for use on the three-bit computer. It also loads puzzle
// inputs and existing archives, so every supported file ends up as an
// archive.
package asm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/tbc/asm/ar"
	"github.com/hexaflex/tbc/asm/parser"
)

// Known file extensions.
const (
	SourceExt  = ".tbc" // Assembly source.
	ArchiveExt = ".a"   // Compiled archive.
)

// Build loads the given file as an archive. Assembly sources are compiled,
// optionally with debug symbols. Archives are loaded as-is. Anything else
// is treated as a puzzle input.
func Build(file string, debug bool) (*ar.Archive, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case SourceExt:
		return BuildSource(file, debug)
	case ArchiveExt:
		return LoadArchive(file)
	}
	return LoadInput(file)
}

// BuildSource assembles the given source file.
func BuildSource(file string, debug bool) (*ar.Archive, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	list, err := parser.ParseSource(fd, file)
	if err != nil {
		return nil, err
	}

	return Assemble(list, file, debug)
}

// LoadArchive reads a compiled archive from the given file.
func LoadArchive(file string) (*ar.Archive, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	a := ar.New()
	if err := a.Load(fd); err != nil {
		return nil, errors.Wrapf(err, "%s", file)
	}
	return a, nil
}

// LoadInput reads a puzzle input and returns it as an archive.
func LoadInput(file string) (*ar.Archive, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	in, err := parser.ParseInput(fd, file)
	if err != nil {
		return nil, err
	}

	a := ar.New()
	a.SetRegisters(&in.Registers)
	a.Instructions = []byte(in.Program)
	return a, nil
}
