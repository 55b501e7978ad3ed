package memory

import "github.com/MaiRat/WinDOS-sub002/logging"

// heapOptions holds configuration applied at construction time.
type heapOptions struct {
	logger logging.Logger
}

// Option configures a GlobalHeap or LocalHeap.
type Option interface {
	applyHeap(*heapOptions)
}

type optionFunc func(*heapOptions)

func (f optionFunc) applyHeap(o *heapOptions) { f(o) }

// WithLogger sets the heap's diagnostic log sink. A nil logger (the
// default) is a no-op.
func WithLogger(l logging.Logger) Option {
	return optionFunc(func(o *heapOptions) { o.logger = l })
}

func resolveOptions(opts []Option) *heapOptions {
	cfg := &heapOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyHeap(cfg)
	}
	return cfg
}
