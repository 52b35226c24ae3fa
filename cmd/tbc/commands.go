package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/luxfi/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hexaflex/tbc/arch"
	"github.com/hexaflex/tbc/asm"
	"github.com/hexaflex/tbc/asm/ar"
	"github.com/hexaflex/tbc/cpu"
	"github.com/hexaflex/tbc/search"
)

// Subcommand flag names.
const (
	OutputKey = "out"
	DebugKey  = "debug"
)

// notFound is printed when no quine value exists.
const notFound = "not found"

func runCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Runs a program and prints its output",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			config, m, err := setup(c, args[0])
			if err != nil {
				return err
			}

			out, err := m.run(config, c.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), out)
			return nil
		},
	}
}

func quineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quine <file>",
		Short: "Finds the smallest value for register A which makes a program print itself",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			config, m, err := setup(c, args[0])
			if err != nil {
				return err
			}

			out, err := m.quine(config)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.OutOrStdout(), out)
			return nil
		},
	}
}

func solveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve <file>",
		Short: "Runs a program and searches its quine value",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			config, m, err := setup(c, args[0])
			if err != nil {
				return err
			}

			part1, err := m.run(config, c.ErrOrStderr())
			if err != nil {
				return err
			}

			part2, err := m.quine(config)
			if err != nil {
				return err
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "part1: %s\n", part1)
			fmt.Fprintf(w, "part2: %s\n", part2)
			return nil
		},
	}
}

func disasmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file>",
		Short: "Prints a human-readable listing of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			archive, err := asm.Build(args[0], true)
			if err != nil {
				return err
			}

			fmt.Fprint(c.OutOrStdout(), archive.String())
			return nil
		},
	}
}

func asmCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "asm <source>",
		Short: "Builds an archive from a source file or puzzle input",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			flags := c.Flags()

			output, err := flags.GetString(OutputKey)
			if err != nil {
				return err
			}

			debug, err := flags.GetBool(DebugKey)
			if err != nil {
				return err
			}

			archive, err := asm.Build(args[0], debug)
			if err != nil {
				return err
			}

			// Loaded archives keep their symbols unless asked to.
			if !debug {
				archive.Debug.Clear()
			}

			return save(archive, output)
		},
	}

	flags := c.Flags()
	flags.StringP(OutputKey, "o", "out"+asm.ArchiveExt, "Output file")
	flags.Bool(DebugKey, false, "Include debug symbols in the build")
	return c
}

// machine holds a loaded program and its initial state.
type machine struct {
	archive *ar.Archive
	program arch.Program
	regs    cpu.Registers
	log     log.Logger
}

// setup reads the configuration and loads the given file.
func setup(c *cobra.Command, file string) (*Config, *machine, error) {
	config, err := ParseFlags(c.Flags())
	if err != nil {
		return nil, nil, err
	}

	// Debug symbols are only of use to the tracer.
	archive, err := asm.Build(file, config.Trace)
	if err != nil {
		return nil, nil, err
	}

	program, regs, err := archive.Machine()
	if err != nil {
		return nil, nil, err
	}

	return config, &machine{
		archive: archive,
		program: program,
		regs:    regs,
		log:     config.Logger(),
	}, nil
}

// run executes the program with its initial registers and returns
// the comma separated output.
func (m *machine) run(config *Config, stderr io.Writer) (string, error) {
	c := cpu.New(m.program, m.regs, traceFunc(config, stderr, &m.archive.Debug))
	if err := c.Run(config.MaxCycles); err != nil {
		return "", err
	}

	if c.Capped() {
		fmt.Fprintf(stderr, "warning: cycle limit of %d reached; output is incomplete\n", config.MaxCycles)
	}

	m.log.Info("program finished",
		log.Int("cycles", c.Cycles()),
		log.Bool("capped", c.Capped()),
		log.Stringer("registers", registers(c.Registers())))

	return c.OutputString(), nil
}

// quine searches the value for register A which makes the program
// print itself. Returns "not found" if there is none.
func (m *machine) quine(config *Config) (string, error) {
	s, err := search.New(m.program, search.Config{
		TrialCycles: config.TrialCycles,
		Logger:      m.log,
	})

	if errors.Cause(err) == arch.ErrNotLoop {
		m.log.Warn("program does not end in a loop", log.String("program", m.program.String()))
		return notFound, nil
	}

	if err != nil {
		return "", err
	}

	res, err := s.Run()
	if err != nil {
		return "", err
	}

	if !res.Found {
		return notFound, nil
	}

	return res.A.Dec(), nil
}

// registers adapts a register copy to fmt.Stringer.
func registers(r cpu.Registers) fmt.Stringer {
	return &r
}

// save writes the archive to the given file.
func save(archive *ar.Archive, file string) error {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	fd, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := archive.Save(fd); err != nil {
		fd.Close()
		return err
	}

	return fd.Close()
}
