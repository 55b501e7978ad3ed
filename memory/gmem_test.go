package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalHeap_AllocFree_RestoresCount(t *testing.T) {
	h := NewGlobalHeap(8)
	handle, err := h.Alloc(Fixed, 16, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Len())

	require.NoError(t, h.Free(handle))
	assert.Equal(t, 0, h.Len())
}

func TestGlobalHeap_ZeroInit_BufferIsZero(t *testing.T) {
	h := NewGlobalHeap(8)
	handle, err := h.Alloc(ZeroInit, 32, 0)
	require.NoError(t, err)

	buf, err := h.Lock(handle)
	require.NoError(t, err)
	for i, b := range buf {
		assert.Equalf(t, byte(0), b, "byte %d not zero", i)
	}
}

func TestGlobalHeap_LockUnlock_RoundTrip(t *testing.T) {
	h := NewGlobalHeap(8)
	handle, err := h.Alloc(Movable, 4, 0)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := h.Lock(handle)
		require.NoError(t, err)
	}
	block, err := h.FindBlock(handle)
	require.NoError(t, err)
	assert.Equal(t, 3, block.LockCount)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.Unlock(handle))
	}
	assert.Equal(t, 0, block.LockCount)

	// unlocking below zero saturates, it does not underflow.
	require.NoError(t, h.Unlock(handle))
	assert.Equal(t, 0, block.LockCount)
}

func TestGlobalHeap_FreeByOwner(t *testing.T) {
	h := NewGlobalHeap(8)
	a, err := h.Alloc(Fixed, 4, 1)
	require.NoError(t, err)
	_, err = h.Alloc(Fixed, 4, 1)
	require.NoError(t, err)
	b, err := h.Alloc(Fixed, 4, 2)
	require.NoError(t, err)

	n := h.FreeByOwner(1)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, h.Len())

	_, err = h.FindBlock(a)
	assert.Error(t, err)
	block, err := h.FindBlock(b)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), block.Owner)
}

func TestGlobalHeap_FreeByOwner_ZeroOwnerUntouched(t *testing.T) {
	h := NewGlobalHeap(8)
	_, err := h.Alloc(Fixed, 4, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, h.FreeByOwner(0))
	assert.Equal(t, 1, h.Len())
}

func TestGlobalHeap_Full(t *testing.T) {
	h := NewGlobalHeap(1)
	_, err := h.Alloc(Fixed, 4, 0)
	require.NoError(t, err)

	_, err = h.Alloc(Fixed, 4, 0)
	require.Error(t, err)
	assert.Equal(t, 1, h.Len())
}

func TestGlobalHeap_ZeroSize(t *testing.T) {
	h := NewGlobalHeap(8)
	_, err := h.Alloc(Fixed, 0, 0)
	require.Error(t, err)
}

func TestGlobalHeap_HandlesNeverReused(t *testing.T) {
	h := NewGlobalHeap(8)
	a, err := h.Alloc(Fixed, 4, 0)
	require.NoError(t, err)
	require.NoError(t, h.Free(a))

	b, err := h.Alloc(Fixed, 4, 0)
	require.NoError(t, err)
	assert.Greater(t, b, a)
}

func TestGlobalHeap_HandleOf(t *testing.T) {
	h := NewGlobalHeap(8)
	handle, err := h.Alloc(Fixed, 4, 0)
	require.NoError(t, err)

	buf, err := h.Lock(handle)
	require.NoError(t, err)
	assert.Equal(t, handle, h.HandleOf(buf))
}

func TestGlobalHeap_Compact_IsStub(t *testing.T) {
	h := NewGlobalHeap(8)
	assert.Equal(t, uint32(0), h.Compact())
}

func TestGlobalHeap_BadHandle(t *testing.T) {
	h := NewGlobalHeap(8)
	_, err := h.FindBlock(0)
	require.Error(t, err)

	err = h.Free(0)
	require.Error(t, err)
}

func TestGlobalHeap_NotFound(t *testing.T) {
	h := NewGlobalHeap(8)
	err := h.Free(999)
	require.Error(t, err)
}
