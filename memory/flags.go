// Package memory implements the handle-indexed global (GMEM) and local
// (LMEM) heaps: movable/discardable/pinned semantics and owner-scoped bulk
// reclamation, patterned after the Windows 3.1 GlobalAlloc/LocalAlloc
// contracts (spec §3, §4.2, §4.3).
package memory

// Flags describes an allocation's semantics. Flags are combinable.
type Flags uint16

const (
	// Fixed blocks never move and are never discarded.
	Fixed Flags = 1 << iota
	// Movable blocks may (in a future design, see Compact) be relocated.
	Movable
	// ZeroInit requires the buffer be zeroed before Alloc returns.
	ZeroInit
	// Discardable blocks may have their buffer released while memory-pressured.
	Discardable
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }
