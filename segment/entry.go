// Package segment implements the NE segment manager: a per-segment state
// machine {Loaded, Evicted} with lock counts and file-image-backed reload
// (spec §4.4).
package segment

import (
	"github.com/MaiRat/WinDOS-sub002/internal/slots"
	"github.com/MaiRat/WinDOS-sub002/memory"
)

// Handle identifies one segment within a Manager's table.
type Handle = slots.Handle

// State is a segment's lifecycle state. Loaded and Evicted are mutually
// exclusive.
type State uint8

const (
	Loaded State = iota
	Evicted
)

// String returns the state's name.
func (s State) String() string {
	if s == Evicted {
		return "Evicted"
	}
	return "Loaded"
}

// Entry is one segment's metadata and (when Loaded) backing buffer.
// Flags reuses memory.Flags: a segment cares about Movable and
// Discardable, the two bits spec §3 requires it to support.
type Entry struct {
	Handle    Handle
	Flags     memory.Flags
	State     State
	Data      []byte
	AllocSize uint32
	FileOff   uint32
	FileSize  uint32
	LockCount int
}
