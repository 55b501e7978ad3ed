package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaiRat/WinDOS-sub002/memory"
)

func TestEvictReload_RestoresByteIdenticalContents(t *testing.T) {
	file := make(BytesImage, 24)
	for i := range file {
		file[i] = byte(i)
	}

	m := NewManager(4, WithFileImage(file))
	initial := append([]byte(nil), file[8:24]...)
	handle, err := m.AddSegment(memory.Discardable|memory.Movable, initial, 8, 16, 16)
	require.NoError(t, err)

	require.NoError(t, m.Evict(handle))
	entry, err := m.Find(handle)
	require.NoError(t, err)
	assert.Nil(t, entry.Data)
	assert.Equal(t, Evicted, entry.State)

	require.NoError(t, m.Reload(handle))
	entry, err = m.Find(handle)
	require.NoError(t, err)
	assert.Equal(t, Loaded, entry.State)
	assert.Equal(t, []byte(file[8:24]), entry.Data[:16])
}

func TestEvict_NotDiscardable(t *testing.T) {
	m := NewManager(4)
	handle, err := m.AddSegment(memory.Movable, []byte{1, 2, 3}, 0, 3, 3)
	require.NoError(t, err)

	err = m.Evict(handle)
	require.Error(t, err)
}

func TestEvict_Locked(t *testing.T) {
	m := NewManager(4)
	handle, err := m.AddSegment(memory.Discardable, []byte{1, 2, 3}, 0, 3, 3)
	require.NoError(t, err)

	_, err = m.Lock(handle)
	require.NoError(t, err)

	err = m.Evict(handle)
	require.Error(t, err)
}

func TestReload_NoFileImage(t *testing.T) {
	m := NewManager(4)
	handle, err := m.AddSegment(memory.Discardable, []byte{1, 2, 3}, 0, 3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Evict(handle))

	err = m.Reload(handle)
	require.Error(t, err)
}

func TestReload_AlreadyLoaded(t *testing.T) {
	m := NewManager(4, WithFileImage(BytesImage{1, 2, 3}))
	handle, err := m.AddSegment(memory.Discardable, []byte{1, 2, 3}, 0, 3, 3)
	require.NoError(t, err)

	err = m.Reload(handle)
	require.Error(t, err)
}

func TestReload_OutOfBounds_LeavesEvicted(t *testing.T) {
	m := NewManager(4, WithFileImage(BytesImage{1, 2, 3}))
	handle, err := m.AddSegment(memory.Discardable, []byte{1, 2, 3}, 0, 3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Evict(handle))

	entry, err := m.Find(handle)
	require.NoError(t, err)
	entry.FileOff = 100 // now out of bounds

	err = m.Reload(handle)
	require.Error(t, err)

	entry, err = m.Find(handle)
	require.NoError(t, err)
	assert.Equal(t, Evicted, entry.State)
}

func TestLock_Evicted_Errors(t *testing.T) {
	m := NewManager(4, WithFileImage(BytesImage{1, 2, 3}))
	handle, err := m.AddSegment(memory.Discardable, []byte{1, 2, 3}, 0, 3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Evict(handle))

	_, err = m.Lock(handle)
	require.Error(t, err)
}

func TestCompact_SkipsLockedAndFixed(t *testing.T) {
	m := NewManager(4)
	movable, err := m.AddSegment(memory.Movable, []byte{1}, 0, 1, 1)
	require.NoError(t, err)
	fixed, err := m.AddSegment(0, []byte{1}, 0, 1, 1)
	require.NoError(t, err)
	_ = fixed

	lockedMovable, err := m.AddSegment(memory.Movable, []byte{1}, 0, 1, 1)
	require.NoError(t, err)
	_, err = m.Lock(lockedMovable)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Compact())
	_ = movable
}
