package sched

import "github.com/MaiRat/WinDOS-sub002/logging"

// MemoryReclaimer is the interface the Scheduler uses to reclaim a
// destroyed task's owned memory blocks on Destroy (spec §2: "On task
// destruction, the MemoryManager is asked to reclaim all blocks owned by
// the departing task"). memory.GlobalHeap satisfies this directly.
type MemoryReclaimer interface {
	FreeByOwner(owner uint16) int
}

// schedulerOptions holds configuration applied at construction time.
type schedulerOptions struct {
	logger          logging.Logger
	reclaimer       MemoryReclaimer
	metricsEnabled  bool
	defaultStackSize int
}

// Option configures a Scheduler.
type Option interface {
	applyScheduler(*schedulerOptions)
}

type optionFunc func(*schedulerOptions)

func (f optionFunc) applyScheduler(o *schedulerOptions) { f(o) }

// WithLogger sets the scheduler's diagnostic log sink. A nil logger (the
// default) is a no-op.
func WithLogger(l logging.Logger) Option {
	return optionFunc(func(o *schedulerOptions) { o.logger = l })
}

// WithMemoryReclaimer wires a MemoryManager so Destroy reclaims the
// departing task's owned blocks in bulk.
func WithMemoryReclaimer(r MemoryReclaimer) Option {
	return optionFunc(func(o *schedulerOptions) { o.reclaimer = r })
}

// WithMetrics enables Stats() bookkeeping. Disabled by default so the run
// loop pays nothing for counters nobody reads.
func WithMetrics(enabled bool) Option {
	return optionFunc(func(o *schedulerOptions) { o.metricsEnabled = enabled })
}

// WithDefaultStackSize overrides DefaultStackSize for Create calls that
// pass a stackSize of 0.
func WithDefaultStackSize(size int) Option {
	return optionFunc(func(o *schedulerOptions) { o.defaultStackSize = size })
}

func resolveOptions(opts []Option) *schedulerOptions {
	cfg := &schedulerOptions{defaultStackSize: DefaultStackSize}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyScheduler(cfg)
	}
	return cfg
}
