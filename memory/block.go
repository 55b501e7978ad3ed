package memory

import "github.com/MaiRat/WinDOS-sub002/internal/slots"

// Handle identifies one block within a single heap's table.
type Handle = slots.Handle

// Block is one allocated unit of memory, shared by the shape of both GMEM
// and LMEM entries (spec §3: GMemBlock / LMemBlock).
type Block struct {
	Handle    Handle
	Flags     Flags
	Data      []byte
	LockCount int
	Owner     uint16 // owning task handle; 0 = no owner. Unused by LMEM heaps.
}

// Size returns the block's current buffer length.
func (b *Block) Size() uint32 { return uint32(len(b.Data)) }
