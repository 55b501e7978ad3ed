package trap

// Registers is a register snapshot. The hosted build populates it from a
// Go-level simulation of the fault; the bare-metal lowering populates it
// from the ISR stub's saved frame. Field set is deliberately minimal and
// generic across the traps this module cares about.
type Registers struct {
	AX, BX, CX, DX uint32
	SI, DI, BP, SP uint32
	IP, Flags      uint32
}

// Context is the register snapshot plus fault metadata passed to a handler
// and to the log sink.
type Context struct {
	Vector    Vector
	ErrorCode uint32
	Regs      Registers
}

// Handler is an installable per-vector trap handler. user is the opaque
// pointer supplied at Install time.
type Handler func(ctx *Context, user any) RecoveryCode

// PanicHook is invoked by Panic when one is installed. It may return
// normally, in which case dispatch terminates with no further action
// (this is how tests observe a panic without killing the process); if no
// hook is installed, Panic logs and terminates the process instead.
type PanicHook func(msg string, ctx *Context, user any)
