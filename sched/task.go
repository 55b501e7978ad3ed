package sched

import "github.com/MaiRat/WinDOS-sub002/internal/slots"

// Handle identifies one task within a Scheduler's table.
type Handle = slots.Handle

// MaxOwnedMem bounds TaskDescriptor.owned_mem (spec §9: "a simple bounded
// list, not an unbounded set").
const MaxOwnedMem = 32

// DefaultStackSize is used when Create is given a stackSize of 0.
const DefaultStackSize = 4096

// MinStackSize is the smallest stack a task may request.
const MinStackSize = 256

// Yielder is the interface an EntryFunc uses to cooperatively suspend
// itself. It exposes nothing but Yield, keeping the rest of Task's fields
// out of entry code's reach even though the concrete value passed is a
// *Task.
type Yielder interface {
	// Yield suspends the calling task until the scheduler next activates
	// it. Calling Yield when the receiver is not the currently Running
	// task is a no-op (spec §9: preserved from the source).
	Yield()
}

// EntryFunc is the work a task executes. arg is the opaque pointer
// supplied to Create.
type EntryFunc func(y Yielder, arg any)

// Task is one scheduled unit of work (spec §3: TaskDescriptor).
type Task struct {
	Handle    Handle
	state     State
	priority  Priority
	entry     EntryFunc
	arg       any
	stack     []byte // owned buffer; freed only by Scheduler.Destroy.
	ownedMem  []uint16
	started   bool
	resume    chan struct{}
	back      chan struct{}
}

// State returns the task's current lifecycle state.
func (t *Task) State() State { return t.state }

// Priority returns the task's scheduling band.
func (t *Task) Priority() Priority { return t.priority }

// StackSize returns the size of the task's owned stack buffer.
func (t *Task) StackSize() int { return len(t.stack) }

// OwnedMem returns a copy of the task's owned GMEM handle list.
func (t *Task) OwnedMem() []uint16 {
	out := make([]uint16, len(t.ownedMem))
	copy(out, t.ownedMem)
	return out
}

// Yield implements Yielder. It saves the calling task's logical state by
// handing control back to the scheduler goroutine over the back channel,
// then blocks until the scheduler sends on resume again.
func (t *Task) Yield() {
	if t.state != Running {
		return // no-op: this task is not the Running one (spec §9).
	}
	t.state = Yielded
	t.back <- struct{}{}
	<-t.resume
	t.state = Running
}
