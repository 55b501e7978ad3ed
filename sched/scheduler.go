package sched

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/MaiRat/WinDOS-sub002/errs"
	"github.com/MaiRat/WinDOS-sub002/internal/slots"
	"github.com/MaiRat/WinDOS-sub002/logging"
)

// Scheduler is the task table and run-pass loop (spec §4.5).
type Scheduler struct {
	table            *slots.Table[Handle, *Task]
	current          Handle
	logger           logging.Logger
	reclaimer        MemoryReclaimer
	defaultStackSize int
	metricsEnabled   bool
	stats            Stats
	sem              *semaphore.Weighted
}

// Stats is a cheap read-only snapshot of scheduler activity, populated only
// when WithMetrics(true) is set.
type Stats struct {
	Passes     uint64
	Activated  uint64
	Terminated uint64
}

// NewScheduler allocates a task table bounded to capacity entries (spec's
// table_init).
func NewScheduler(capacity int, opts ...Option) *Scheduler {
	cfg := resolveOptions(opts)
	return &Scheduler{
		table:            slots.New[Handle, *Task](capacity),
		logger:           cfg.logger,
		reclaimer:        cfg.reclaimer,
		defaultStackSize: cfg.defaultStackSize,
		metricsEnabled:   cfg.metricsEnabled,
		sem:              semaphore.NewWeighted(int64(capacity)),
	}
}

// Create allocates a task's stack, sets it to state Ready, and returns a
// fresh handle. A stackSize of 0 uses the scheduler's default (4 KiB
// unless overridden by WithDefaultStackSize); a non-zero stackSize below
// MinStackSize is an AllocFailure.
func (s *Scheduler) Create(entry EntryFunc, arg any, stackSize int, priority Priority) (Handle, error) {
	const op = "sched.create"
	if entry == nil {
		return slots.Invalid, errs.New(op, errs.Null)
	}
	if stackSize == 0 {
		stackSize = s.defaultStackSize
	}
	if stackSize < MinStackSize {
		return slots.Invalid, errs.New(op, errs.AllocFailure)
	}
	task := &Task{
		entry:    entry,
		arg:      arg,
		priority: priority,
		state:    Ready,
		stack:    make([]byte, stackSize),
	}
	handle, ok := s.table.Insert(task)
	if !ok {
		return slots.Invalid, errs.New(op, errs.Full)
	}
	task.Handle = handle
	return handle, nil
}

// Destroy frees handle's stack and clears its slot. Destroying the
// currently Running task is a StateError.
func (s *Scheduler) Destroy(handle Handle) error {
	const op = "sched.destroy"
	task, err := s.Get(handle)
	if err != nil {
		return err
	}
	if task.state == Running {
		return errs.New(op, errs.StateError)
	}
	s.table.Delete(handle)
	task.stack = nil
	if task.started && task.state != Terminated {
		s.sem.Release(1)
	}
	if s.reclaimer != nil {
		s.reclaimer.FreeByOwner(uint16(handle))
	}
	return nil
}

// Get returns the task descriptor for handle.
func (s *Scheduler) Get(handle Handle) (*Task, error) {
	const op = "sched.get"
	if handle == slots.Invalid {
		return nil, errs.New(op, errs.BadHandle)
	}
	task, ok := s.table.Get(handle)
	if !ok {
		return nil, errs.New(op, errs.NotFound)
	}
	return task, nil
}

// OwnMem adds memHandle to handle's owned-memory list. Owning an
// already-owned handle is a no-op. Fails Full once MaxOwnedMem is reached.
func (s *Scheduler) OwnMem(handle Handle, memHandle uint16) error {
	const op = "sched.own_mem"
	task, err := s.Get(handle)
	if err != nil {
		return err
	}
	for _, h := range task.ownedMem {
		if h == memHandle {
			return nil
		}
	}
	if len(task.ownedMem) >= MaxOwnedMem {
		return errs.New(op, errs.Full)
	}
	task.ownedMem = append(task.ownedMem, memHandle)
	return nil
}

// DisownMem removes memHandle from handle's owned-memory list.
func (s *Scheduler) DisownMem(handle Handle, memHandle uint16) error {
	const op = "sched.disown_mem"
	task, err := s.Get(handle)
	if err != nil {
		return err
	}
	for i, h := range task.ownedMem {
		if h == memHandle {
			task.ownedMem = append(task.ownedMem[:i], task.ownedMem[i+1:]...)
			return nil
		}
	}
	return errs.New(op, errs.NotFound)
}

// Current returns the handle of the task currently Running inside
// RunPass, or the invalid handle if none is.
func (s *Scheduler) Current() Handle { return s.current }

// Stats returns a snapshot of run-pass counters. Always zero unless
// WithMetrics(true) was set at construction.
func (s *Scheduler) Stats() Stats { return s.stats }

// RunPass executes one scheduling sweep: every High-priority Ready/Yielded
// task is activated at least once before any Normal task, and every Normal
// task before any Low task (spec §4.5). It returns the number of
// activations performed.
func (s *Scheduler) RunPass() int {
	runCount := 0
	if s.metricsEnabled {
		s.stats.Passes++
	}
	for _, pri := range priorityOrder {
		for _, handle := range s.table.Handles() {
			task, ok := s.table.Get(handle)
			if !ok || task.priority != pri {
				continue
			}
			if task.state != Ready && task.state != Yielded {
				continue
			}
			s.current = handle
			task.state = Running
			runCount++
			if s.metricsEnabled {
				s.stats.Activated++
			}
			s.activate(task)
			if task.state == Terminated && s.metricsEnabled {
				s.stats.Terminated++
			}
			s.current = slots.Invalid
		}
	}
	return runCount
}

// activate performs the context switch into task, starting its goroutine
// on first activation, and blocks until the task yields or terminates.
func (s *Scheduler) activate(task *Task) {
	if !task.started {
		task.started = true
		task.resume = make(chan struct{})
		task.back = make(chan struct{})
		_ = s.sem.Acquire(context.Background(), 1)
		entry, arg := task.entry, task.arg
		go func() {
			<-task.resume
			entry(task, arg)
			task.state = Terminated
			close(task.back)
		}()
	}
	task.resume <- struct{}{}
	<-task.back
	if task.state == Terminated {
		s.sem.Release(1)
	}
	logging.Emit(s.logger, logging.Entry{
		Level: logging.LevelDebug, Component: "sched", Op: "activate",
		Handle: task.Handle, Message: "task " + task.state.String(),
	})
}
