package trap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_FatalDefault_NoHandler(t *testing.T) {
	var hookCalls int
	d := NewDispatcher()
	d.SetPanicHook(func(msg string, ctx *Context, user any) {
		hookCalls++
	}, nil)

	code := d.Dispatch(GPFault, &Context{Vector: GPFault})
	assert.Equal(t, Panic, code)
	assert.Equal(t, 1, hookCalls)
}

func TestDispatch_NonFatalDefault_NoHandler(t *testing.T) {
	d := NewDispatcher()
	code := d.Dispatch(Breakpoint, &Context{Vector: Breakpoint})
	assert.Equal(t, Skip, code)
}

func TestDispatch_OverrideThenRestore(t *testing.T) {
	var hookCalls int
	d := NewDispatcher()
	d.SetPanicHook(func(string, *Context, any) { hookCalls++ }, nil)

	require.NoError(t, d.Install(GPFault, func(ctx *Context, user any) RecoveryCode {
		return Skip
	}, nil))

	code := d.Dispatch(GPFault, &Context{Vector: GPFault})
	assert.Equal(t, Skip, code)
	assert.Equal(t, 0, hookCalls)

	require.NoError(t, d.Remove(GPFault))

	code = d.Dispatch(GPFault, &Context{Vector: GPFault})
	assert.Equal(t, Panic, code)
	assert.Equal(t, 1, hookCalls)
}

func TestInstall_RoundTrip(t *testing.T) {
	d := NewDispatcher()
	h := func(ctx *Context, user any) RecoveryCode { return Retry }

	require.NoError(t, d.Install(Overflow, h, nil))
	require.NoError(t, d.Remove(Overflow))
	require.NoError(t, d.Install(Overflow, h, nil))

	assert.Equal(t, Retry, d.Dispatch(Overflow, &Context{Vector: Overflow}))
}

func TestInstall_BadVector(t *testing.T) {
	d := NewDispatcher()
	err := d.Install(Vector(16), nil, nil)
	require.Error(t, err)
}

func TestDispatch_OutOfRangeVector(t *testing.T) {
	var hookCalls int
	d := NewDispatcher()
	d.SetPanicHook(func(string, *Context, any) { hookCalls++ }, nil)

	code := d.Dispatch(Vector(16), &Context{Vector: Vector(16)})
	assert.Equal(t, Panic, code)
	assert.Equal(t, 1, hookCalls)
}

func TestDispatch_NilDispatcherIsPanic(t *testing.T) {
	var d *Dispatcher
	assert.Equal(t, Panic, d.Dispatch(GPFault, &Context{}))
}

func TestDispatch_HandlerOutOfRangeCodeIsSkip(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, d.Install(Bound, func(ctx *Context, user any) RecoveryCode {
		return RecoveryCode(99)
	}, nil))
	assert.Equal(t, Skip, d.Dispatch(Bound, &Context{Vector: Bound}))
}

func TestVectorNames(t *testing.T) {
	assert.Equal(t, "GPFault", GPFault.String())
	assert.Equal(t, "vector12", Vector(12).String())
}
