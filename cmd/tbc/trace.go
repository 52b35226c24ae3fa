package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hexaflex/tbc/arch"
	"github.com/hexaflex/tbc/asm/ar"
	"github.com/hexaflex/tbc/cpu"
)

// tracer prints instruction trace data, along with source context if the
// archive carries debug symbols.
type tracer struct {
	w     io.Writer
	debug *ar.Debug
}

// traceFunc returns the cpu trace handler for the given configuration.
// Returns nil if tracing is disabled.
func traceFunc(c *Config, w io.Writer, debug *ar.Debug) cpu.TraceFunc {
	if !c.Trace {
		return nil
	}
	t := &tracer{w: w, debug: debug}
	return t.trace
}

func (t *tracer) trace(i *cpu.Instruction, r *cpu.Registers) {
	var sb strings.Builder
	sb.Grow(120)

	name, _ := arch.Name(i.Opcode)
	fmt.Fprintf(&sb, "%02d %s %d", i.IP, name, i.Operand)
	if arch.IsCombo(i.Opcode) {
		fmt.Fprintf(&sb, " (%s)", arch.ComboName(i.Operand))
	}

	pad(&sb, 20)
	sb.WriteString(r.String())

	// Add source context if it is available.
	if dbg := t.debug.Find(i.IP); dbg != nil && dbg.File < len(t.debug.Files) {
		sb.WriteString("  ")
		fmt.Fprintf(&sb, "%s:%d:%d", t.debug.Files[dbg.File], dbg.Line, dbg.Col)
		if dbg.Label != "" {
			fmt.Fprintf(&sb, " %s:", dbg.Label)
		}
	}

	fmt.Fprintln(t.w, sb.String())
}

// pad pads sb with spaces up to column n.
func pad(sb *strings.Builder, n int) {
	for sb.Len() < n {
		sb.WriteByte(' ')
	}
}
