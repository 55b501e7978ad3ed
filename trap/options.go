package trap

import "github.com/MaiRat/WinDOS-sub002/logging"

// dispatcherOptions holds configuration applied at construction time.
type dispatcherOptions struct {
	logger   logging.Logger
	exitFunc func(code int)
}

// Option configures a Dispatcher.
type Option interface {
	applyDispatcher(*dispatcherOptions)
}

type optionFunc func(*dispatcherOptions)

func (f optionFunc) applyDispatcher(o *dispatcherOptions) { f(o) }

// WithLogger sets the log sink used by Log and by Dispatch's out-of-range
// and fatal-default diagnostics. A nil logger (the default) is a no-op.
func WithLogger(l logging.Logger) Option {
	return optionFunc(func(o *dispatcherOptions) { o.logger = l })
}

// WithExitFunc overrides the function called to terminate the process on an
// unhandled, hook-less Panic. Intended for tests; production code should
// leave this at the default (os.Exit).
func WithExitFunc(fn func(code int)) Option {
	return optionFunc(func(o *dispatcherOptions) { o.exitFunc = fn })
}

func resolveOptions(opts []Option) *dispatcherOptions {
	cfg := &dispatcherOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyDispatcher(cfg)
	}
	return cfg
}
