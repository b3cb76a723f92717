package hidapi

import "github.com/ethereum/go-ethereum/log"

// Library brackets all use of the underlying HID stack: opening it runs the
// stack's global initialization, closing it runs the teardown. Every
// Enumeration and device handle is created through a Library and must be
// released before the Library is closed; the underlying stack does not
// tolerate use outside the init/teardown bracket and this layer does not
// guard against it.
//
// A process is expected to hold at most one open Library at a time.
type Library struct {
	backend Backend
	logger  log.Logger
	closed  bool
}

// Option configures a Library before initialization.
type Option func(*Library)

// WithBackend selects the capability backend. The default is the native
// hidapi backend.
func WithBackend(b Backend) Option {
	return func(l *Library) { l.backend = b }
}

// WithLogger routes this layer's diagnostics to the given logger.
func WithLogger(logger log.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// OpenLibrary initializes the underlying HID stack and returns the guard
// owning it. On failure it returns an *InitError and no state is left alive.
func OpenLibrary(opts ...Option) (*Library, error) {
	l := &Library{
		backend: NewNativeBackend(),
		logger:  log.Root(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.backend.Init(); err != nil {
		return nil, &InitError{Err: err}
	}
	return l, nil
}

// Close tears the underlying HID stack down. All enumerations and device
// handles still open become invalid; close them first. Closing twice does
// nothing beyond a warning.
func (l *Library) Close() {
	if l.closed {
		l.logger.Warn("HID library closed twice")
		return
	}
	l.closed = true
	l.backend.Exit()
}
