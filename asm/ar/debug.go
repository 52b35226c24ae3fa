package ar

// Debug defines any debug data stored in an archive.
type Debug struct {
	Files   []string    `cbor:"files,omitempty"`   // File names associated with the source that makes up this archive.
	Symbols []DebugData `cbor:"symbols,omitempty"` // Per-instruction source context.
}

// Clear empties all data.
func (d *Debug) Clear() {
	d.Files = nil
	d.Symbols = nil
}

// Find returns the debug data associated with the given address.
// Returns nil if there is none.
func (d *Debug) Find(addr int) *DebugData {
	for i := range d.Symbols {
		if d.Symbols[i].Address == addr {
			return &d.Symbols[i]
		}
	}
	return nil
}

// DebugData defines one set of debug symbols.
type DebugData struct {
	Address int    `cbor:"addr"`            // Address for which this debug data is defined.
	File    int    `cbor:"file"`            // Index into list of file paths in which symbol was defined.
	Line    int    `cbor:"line"`            // Line number at which symbol was defined.
	Col     int    `cbor:"col"`             // Column number at which symbol was defined.
	Offset  int    `cbor:"offset"`          // Byte offset at which symbol was defined.
	Label   string `cbor:"label,omitempty"` // Label defined at this address, if any.
}
