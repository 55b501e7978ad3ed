package memory

import (
	"unsafe"

	"github.com/MaiRat/WinDOS-sub002/errs"
	"github.com/MaiRat/WinDOS-sub002/internal/slots"
	"github.com/MaiRat/WinDOS-sub002/logging"
)

// GlobalHeap is the process-wide (GMEM) handle table: spec §4.2.
type GlobalHeap struct {
	table  *slots.Table[Handle, *Block]
	logger logging.Logger
}

// NewGlobalHeap allocates a slot table bounded to capacity entries (spec's
// table_init).
func NewGlobalHeap(capacity int, opts ...Option) *GlobalHeap {
	cfg := resolveOptions(opts)
	return &GlobalHeap{
		table:  slots.New[Handle, *Block](capacity),
		logger: cfg.logger,
	}
}

// Alloc allocates a block of size bytes with the given flags, optionally
// owned by owner (0 for unowned). ZeroInit requires the buffer be zeroed,
// which a freshly made Go slice already is.
func (h *GlobalHeap) Alloc(flags Flags, size uint32, owner uint16) (Handle, error) {
	const op = "gmem.alloc"
	if size == 0 {
		return slots.Invalid, errs.New(op, errs.ZeroSize)
	}
	block := &Block{Flags: flags, Data: make([]byte, size), Owner: owner}
	handle, ok := h.table.Insert(block)
	if !ok {
		return slots.Invalid, errs.New(op, errs.Full)
	}
	block.Handle = handle
	return handle, nil
}

// Free releases handle's buffer regardless of lock count; the caller is
// responsible for not dereferencing a stale slice returned by a prior Lock.
func (h *GlobalHeap) Free(handle Handle) error {
	const op = "gmem.free"
	if handle == slots.Invalid {
		return errs.New(op, errs.BadHandle)
	}
	if _, ok := h.table.Delete(handle); !ok {
		return errs.New(op, errs.NotFound)
	}
	return nil
}

// Lock increments handle's lock count and returns a slice over its buffer,
// valid until the next Free on this handle.
func (h *GlobalHeap) Lock(handle Handle) ([]byte, error) {
	block, err := h.FindBlock(handle)
	if err != nil {
		return nil, err
	}
	block.LockCount++
	return block.Data, nil
}

// Unlock decrements handle's lock count. It saturates at 0: decrementing an
// already-unlocked block is a caller bug, not an error this method reports.
func (h *GlobalHeap) Unlock(handle Handle) error {
	block, err := h.FindBlock(handle)
	if err != nil {
		return err
	}
	if block.LockCount > 0 {
		block.LockCount--
	}
	return nil
}

// Size returns handle's current buffer size.
func (h *GlobalHeap) Size(handle Handle) (uint32, error) {
	block, err := h.FindBlock(handle)
	if err != nil {
		return 0, err
	}
	return block.Size(), nil
}

// BlockFlags returns handle's allocation flags.
func (h *GlobalHeap) BlockFlags(handle Handle) (Flags, error) {
	block, err := h.FindBlock(handle)
	if err != nil {
		return 0, err
	}
	return block.Flags, nil
}

// HandleOf performs a linear scan to find the handle whose buffer backs
// ptr, returning the invalid handle if none matches.
func (h *GlobalHeap) HandleOf(ptr []byte) Handle {
	if len(ptr) == 0 {
		return slots.Invalid
	}
	target := unsafe.SliceData(ptr)
	found := slots.Invalid
	h.table.Each(func(handle Handle, block *Block) bool {
		if len(block.Data) > 0 && unsafe.SliceData(block.Data) == target {
			found = handle
			return false
		}
		return true
	})
	return found
}

// FindBlock returns the block entry for handle.
func (h *GlobalHeap) FindBlock(handle Handle) (*Block, error) {
	const op = "gmem.find_block"
	if handle == slots.Invalid {
		return nil, errs.New(op, errs.BadHandle)
	}
	block, ok := h.table.Get(handle)
	if !ok {
		return nil, errs.New(op, errs.NotFound)
	}
	return block, nil
}

// FreeByOwner frees every block owned by owner, returning the number
// reclaimed. Blocks with a different owner, or no owner (0), are untouched.
func (h *GlobalHeap) FreeByOwner(owner uint16) int {
	if owner == 0 {
		return 0
	}
	var toFree []Handle
	h.table.Each(func(handle Handle, block *Block) bool {
		if block.Owner == owner {
			toFree = append(toFree, handle)
		}
		return true
	})
	for _, handle := range toFree {
		h.table.Delete(handle)
	}
	return len(toFree)
}

// Compact is reserved for coalescing movable blocks into a contiguous
// arena. The design defers that work; this always returns 0.
func (h *GlobalHeap) Compact() uint32 { return 0 }

// Len returns the current block count.
func (h *GlobalHeap) Len() int { return h.table.Len() }
