package segment

import "github.com/MaiRat/WinDOS-sub002/logging"

// managerOptions holds configuration applied at construction time.
type managerOptions struct {
	logger logging.Logger
	image  FileImage
}

// Option configures a Manager.
type Option interface {
	applyManager(*managerOptions)
}

type optionFunc func(*managerOptions)

func (f optionFunc) applyManager(o *managerOptions) { f(o) }

// WithLogger sets the manager's diagnostic log sink. A nil logger (the
// default) is a no-op.
func WithLogger(l logging.Logger) Option {
	return optionFunc(func(o *managerOptions) { o.logger = l })
}

// WithFileImage binds the file image Reload reads evicted segments back
// from. Equivalent to calling Manager.BindFileImage after construction.
func WithFileImage(img FileImage) Option {
	return optionFunc(func(o *managerOptions) { o.image = img })
}

func resolveOptions(opts []Option) *managerOptions {
	cfg := &managerOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyManager(cfg)
	}
	return cfg
}
