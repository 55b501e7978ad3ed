package memory

import (
	"github.com/MaiRat/WinDOS-sub002/errs"
	"github.com/MaiRat/WinDOS-sub002/internal/slots"
	"github.com/MaiRat/WinDOS-sub002/logging"
)

// MaxLocalSize is the largest size an LMEM block may hold (spec §4.3:
// "16-bit sizes").
const MaxLocalSize = 0xFFFF

// DefaultLocalCapacity is MAX_LMEM_BLOCKS from spec §4.3.
const DefaultLocalCapacity = 64

// LocalHeap is a single per-heap (LMEM) handle table: spec §4.3. Unlike
// GlobalHeap, a LocalHeap carries no owner field and has no cross-heap
// free_by_owner; the heap itself is the unit of bulk reclamation via
// HeapFree. The Memory Manager does not enforce the typical 1:1 task/heap
// association; callers own that convention.
type LocalHeap struct {
	table  *slots.Table[Handle, *Block]
	logger logging.Logger
}

// NewLocalHeap allocates a slot table bounded to capacity entries. A
// capacity of 0 uses DefaultLocalCapacity.
func NewLocalHeap(capacity int, opts ...Option) *LocalHeap {
	if capacity == 0 {
		capacity = DefaultLocalCapacity
	}
	cfg := resolveOptions(opts)
	return &LocalHeap{
		table:  slots.New[Handle, *Block](capacity),
		logger: cfg.logger,
	}
}

// Alloc allocates a block of size bytes (must fit MaxLocalSize) with the
// given flags.
func (h *LocalHeap) Alloc(flags Flags, size uint32) (Handle, error) {
	const op = "lmem.alloc"
	if size == 0 {
		return slots.Invalid, errs.New(op, errs.ZeroSize)
	}
	if size > MaxLocalSize {
		return slots.Invalid, errs.New(op, errs.AllocFailure)
	}
	block := &Block{Flags: flags, Data: make([]byte, size)}
	handle, ok := h.table.Insert(block)
	if !ok {
		return slots.Invalid, errs.New(op, errs.Full)
	}
	block.Handle = handle
	return handle, nil
}

// Free releases handle's buffer.
func (h *LocalHeap) Free(handle Handle) error {
	const op = "lmem.free"
	if handle == slots.Invalid {
		return errs.New(op, errs.BadHandle)
	}
	if _, ok := h.table.Delete(handle); !ok {
		return errs.New(op, errs.NotFound)
	}
	return nil
}

// Lock increments handle's lock count and returns its buffer.
func (h *LocalHeap) Lock(handle Handle) ([]byte, error) {
	block, err := h.FindBlock(handle)
	if err != nil {
		return nil, err
	}
	block.LockCount++
	return block.Data, nil
}

// Unlock decrements handle's lock count, saturating at 0.
func (h *LocalHeap) Unlock(handle Handle) error {
	block, err := h.FindBlock(handle)
	if err != nil {
		return err
	}
	if block.LockCount > 0 {
		block.LockCount--
	}
	return nil
}

// Realloc copies min(old, new) bytes into a freshly sized buffer, frees the
// old buffer, and updates metadata. The handle value is preserved.
func (h *LocalHeap) Realloc(handle Handle, newSize uint32, flags Flags) error {
	const op = "lmem.realloc"
	if newSize == 0 {
		return errs.New(op, errs.ZeroSize)
	}
	if newSize > MaxLocalSize {
		return errs.New(op, errs.AllocFailure)
	}
	block, err := h.FindBlock(handle)
	if err != nil {
		return err
	}
	next := make([]byte, newSize)
	copy(next, block.Data)
	block.Data = next
	block.Flags = flags
	return nil
}

// Size returns handle's current buffer size.
func (h *LocalHeap) Size(handle Handle) (uint32, error) {
	block, err := h.FindBlock(handle)
	if err != nil {
		return 0, err
	}
	return block.Size(), nil
}

// BlockFlags returns handle's allocation flags.
func (h *LocalHeap) BlockFlags(handle Handle) (Flags, error) {
	block, err := h.FindBlock(handle)
	if err != nil {
		return 0, err
	}
	return block.Flags, nil
}

// FindBlock returns the block entry for handle.
func (h *LocalHeap) FindBlock(handle Handle) (*Block, error) {
	const op = "lmem.find_block"
	if handle == slots.Invalid {
		return nil, errs.New(op, errs.BadHandle)
	}
	block, ok := h.table.Get(handle)
	if !ok {
		return nil, errs.New(op, errs.NotFound)
	}
	return block, nil
}

// HeapFree releases every block in the heap, returning the count reclaimed.
// This is LMEM's equivalent of GMEM's free_by_owner: the heap, not a task
// handle, is the unit of bulk reclamation.
func (h *LocalHeap) HeapFree() int {
	handles := h.table.Handles()
	for _, handle := range handles {
		h.table.Delete(handle)
	}
	return len(handles)
}

// Compact is reserved for future coalescing; it always returns 0.
func (h *LocalHeap) Compact() uint32 { return 0 }

// Len returns the current block count.
func (h *LocalHeap) Len() int { return h.table.Len() }
