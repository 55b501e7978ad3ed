// Package trap implements the CPU trap dispatcher: a 16-slot per-vector
// handler table, a three-way recovery protocol, and a panic hook.
//
// The hosted build (this implementation) treats dispatch as a direct,
// in-process call from whatever detects the fault (a test, or a simulated
// CPU in a future layer). The bare-metal lowering is a trampoline: a single
// package-level Dispatcher pointer, set by Install/Remove and never
// otherwise mutated, that each vector's ISR stub calls Dispatch through.
// That trampoline is intentionally not implemented here, since this module
// targets the hosted semantics (spec §1: "hosted semantics are normative").
package trap

import (
	"fmt"
	"os"

	"github.com/MaiRat/WinDOS-sub002/logging"
)

// slot holds one vector's installed handler and its opaque user data.
type slot struct {
	handler Handler
	user    any
}

// Dispatcher is the per-vector trap handler table.
type Dispatcher struct {
	slots     [VectorCount]slot
	logger    logging.Logger
	panicHook PanicHook
	panicUser any
	exitFunc  func(code int)
}

// NewDispatcher creates an empty dispatcher: every vector falls back to the
// default policy (fatal set -> Panic, otherwise Skip) until Install is
// called.
func NewDispatcher(opts ...Option) *Dispatcher {
	cfg := resolveOptions(opts)
	d := &Dispatcher{
		logger:   cfg.logger,
		exitFunc: cfg.exitFunc,
	}
	if d.exitFunc == nil {
		d.exitFunc = os.Exit
	}
	return d
}

// Install stores handler for vec, replacing any previous handler. Passing a
// nil handler reverts vec to the default policy. Fails with BadVector if
// vec is out of range.
func (d *Dispatcher) Install(vec Vector, handler Handler, user any) error {
	if d == nil {
		return newErr("trap.install", errNull)
	}
	if int(vec) >= VectorCount {
		return newErr("trap.install", errBadVector)
	}
	d.slots[vec] = slot{handler: handler, user: user}
	return nil
}

// Remove reverts vec to the default policy. On the bare-metal lowering this
// would additionally restore the original (pre-Install) interrupt vector;
// the hosted build has no original vector to restore.
func (d *Dispatcher) Remove(vec Vector) error {
	return d.Install(vec, nil, nil)
}

// SetPanicHook installs the hook Panic calls on an unrecoverable fault. A
// nil hook reverts to the default: log then terminate the process.
func (d *Dispatcher) SetPanicHook(hook PanicHook, user any) {
	if d == nil {
		return
	}
	d.panicHook = hook
	d.panicUser = user
}

// Dispatch runs the recovery protocol for a fault on vec. It is invoked by
// the vector's ISR stub on the bare-metal lowering, or directly by callers
// (tests, or a future simulated-CPU layer) on the hosted build.
func (d *Dispatcher) Dispatch(vec Vector, ctx *Context) RecoveryCode {
	if d == nil {
		return Panic
	}
	if int(vec) >= VectorCount {
		d.Log(vec, ctx)
		d.Panic(fmt.Sprintf("trap: vector %d out of range", uint8(vec)), ctx)
		return Panic
	}

	s := d.slots[vec]
	var code RecoveryCode
	if s.handler != nil {
		code = s.handler(ctx, s.user)
		if !code.valid() {
			// A custom handler returning an out-of-range code is treated as
			// Skip, the defensive default (spec §4.1 failure semantics).
			code = Skip
		}
	} else if IsFatal(vec) {
		code = Panic
	} else {
		code = Skip
	}

	if code == Panic {
		d.Panic(fmt.Sprintf("trap: unrecoverable fault on %s", vec), ctx)
	}
	return code
}

// Log writes one diagnostic entry naming vec and dumping ctx's register
// snapshot. A nil log sink (the default) is a no-op.
func (d *Dispatcher) Log(vec Vector, ctx *Context) {
	if d == nil || d.logger == nil {
		return
	}
	logging.Emit(d.logger, logging.Entry{
		Level:     logging.LevelError,
		Component: "trap",
		Op:        "dispatch",
		Message:   fmt.Sprintf("%s fault: regs=%+v error_code=%#x", vec, ctx.Regs, ctx.ErrorCode),
	})
}

// Panic runs the panic protocol: if a panic hook is installed, it is
// called (and may return, which lets tests observe a panic without killing
// the process); otherwise Panic logs and terminates the process.
func (d *Dispatcher) Panic(msg string, ctx *Context) {
	if d == nil {
		return
	}
	if d.panicHook != nil {
		d.panicHook(msg, ctx, d.panicUser)
		return
	}
	logging.Emit(d.logger, logging.Entry{
		Level:     logging.LevelError,
		Component: "trap",
		Op:        "panic",
		Message:   msg,
	})
	if d.exitFunc != nil {
		d.exitFunc(1)
	}
}
