package segment

import (
	"github.com/MaiRat/WinDOS-sub002/errs"
	"github.com/MaiRat/WinDOS-sub002/internal/slots"
	"github.com/MaiRat/WinDOS-sub002/logging"
	"github.com/MaiRat/WinDOS-sub002/memory"
)

// Manager is the segment table: spec §4.4.
type Manager struct {
	table  *slots.Table[Handle, *Entry]
	image  FileImage
	logger logging.Logger
}

// NewManager allocates a slot table bounded to capacity entries.
func NewManager(capacity int, opts ...Option) *Manager {
	cfg := resolveOptions(opts)
	return &Manager{
		table:  slots.New[Handle, *Entry](capacity),
		image:  cfg.image,
		logger: cfg.logger,
	}
}

// BindFileImage attaches (or replaces) the file image Reload reads from.
func (m *Manager) BindFileImage(img FileImage) {
	m.image = img
}

// AddSegment registers a segment already loaded into data (the external NE
// parser's job), in state Loaded. fileOff/fileSize describe where this
// segment's payload lives in the bound file image, for a future Evict then
// Reload; allocSize is the buffer size to allocate on reload (>= fileSize).
func (m *Manager) AddSegment(flags memory.Flags, data []byte, fileOff, fileSize, allocSize uint32) (Handle, error) {
	const op = "segment.add_segment"
	entry := &Entry{
		Flags:     flags,
		State:     Loaded,
		Data:      data,
		AllocSize: allocSize,
		FileOff:   fileOff,
		FileSize:  fileSize,
	}
	handle, ok := m.table.Insert(entry)
	if !ok {
		return slots.Invalid, errs.New(op, errs.Full)
	}
	entry.Handle = handle
	return handle, nil
}

// Evict transitions handle from Loaded to Evicted, freeing its buffer.
// Permitted only when the segment is Discardable and unlocked.
func (m *Manager) Evict(handle Handle) error {
	const op = "segment.evict"
	entry, err := m.Find(handle)
	if err != nil {
		return err
	}
	if entry.State == Evicted {
		return errs.New(op, errs.StateError)
	}
	if !entry.Flags.Has(memory.Discardable) {
		return errs.New(op, errs.StateError)
	}
	if entry.LockCount > 0 {
		return errs.New(op, errs.StateError)
	}
	entry.Data = nil
	entry.State = Evicted
	logging.Emit(m.logger, logging.Entry{
		Level: logging.LevelDebug, Component: "segment", Op: op, Handle: handle,
		Message: "segment evicted",
	})
	return nil
}

// Reload transitions handle from Evicted to Loaded, reading FileSize bytes
// from FileOff in the bound file image into a freshly allocated AllocSize
// buffer. The segment is left Evicted (not a third state) if the read or
// allocation fails, so a later retry is possible.
func (m *Manager) Reload(handle Handle) error {
	const op = "segment.reload"
	entry, err := m.Find(handle)
	if err != nil {
		return err
	}
	if entry.State == Loaded {
		return errs.New(op, errs.StateError)
	}
	if m.image == nil {
		return errs.New(op, errs.NotInitialized)
	}
	payload, err := m.image.ReadAt(entry.FileOff, entry.FileSize)
	if err != nil {
		return errs.Wrap(op, errs.IO, err)
	}
	allocSize := entry.AllocSize
	if allocSize < entry.FileSize {
		allocSize = entry.FileSize
	}
	buf := make([]byte, allocSize)
	copy(buf, payload)
	entry.Data = buf
	entry.State = Loaded
	logging.Emit(m.logger, logging.Entry{
		Level: logging.LevelDebug, Component: "segment", Op: op, Handle: handle,
		Message: "segment reloaded",
	})
	return nil
}

// Lock increments handle's lock count and returns its buffer. An Evicted
// segment cannot be locked; callers must Reload first.
func (m *Manager) Lock(handle Handle) ([]byte, error) {
	const op = "segment.lock"
	entry, err := m.Find(handle)
	if err != nil {
		return nil, err
	}
	if entry.State == Evicted {
		return nil, errs.New(op, errs.StateError)
	}
	entry.LockCount++
	return entry.Data, nil
}

// Unlock decrements handle's lock count, saturating at 0.
func (m *Manager) Unlock(handle Handle) error {
	entry, err := m.Find(handle)
	if err != nil {
		return err
	}
	if entry.LockCount > 0 {
		entry.LockCount--
	}
	return nil
}

// Find returns the entry for handle.
func (m *Manager) Find(handle Handle) (*Entry, error) {
	const op = "segment.find"
	if handle == slots.Invalid {
		return nil, errs.New(op, errs.BadHandle)
	}
	entry, ok := m.table.Get(handle)
	if !ok {
		return nil, errs.New(op, errs.NotFound)
	}
	return entry, nil
}

// Compact returns the count of MOVABLE, unlocked, Loaded segments whose
// backing buffer could be relocated. Locked and Fixed (non-Movable)
// segments are skipped; relocation itself is not performed at this level.
func (m *Manager) Compact() int {
	count := 0
	m.table.Each(func(_ Handle, entry *Entry) bool {
		if entry.State == Loaded && entry.LockCount == 0 && entry.Flags.Has(memory.Movable) {
			count++
		}
		return true
	})
	return count
}

// Len returns the current segment count.
func (m *Manager) Len() int { return m.table.Len() }
