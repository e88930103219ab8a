package bind

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// ErrRunning is returned by Run when the loop is already being run by another
// goroutine.
var ErrRunning = errors.New("bind: loop is already running")

// Loop is a single logical thread of execution shared by event dispatch and
// timer expiry. Tasks posted with Do run one at a time, in order, on the
// goroutine that called Run, so handlers and callbacks for the same element
// never run concurrently.
type Loop struct {
	clock  clock.Clock
	speeds Speeds
	logger *zap.Logger

	running atomic.Bool
	mux     sync.Mutex
	queue   []func()
	wakeup  chan struct{}
}

// NewLoop creates a new Loop. Nothing is executed until Run is called.
func NewLoop(opts ...Option) *Loop {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Loop{
		clock:  cfg.clock,
		speeds: cfg.speeds,
		logger: cfg.logger,
		wakeup: make(chan struct{}, 1),
	}
}

// Run executes queued tasks until ctx is done, and returns ctx.Err(). Only one
// goroutine may run the loop at a time; a concurrent call returns ErrRunning
// without executing anything. The loop can be run again once Run has
// returned.
//
// Panics raised by tasks, including handlers and callbacks, are not
// recovered and propagate out of Run.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	for {
		for {
			task, ok := l.next()
			if !ok {
				break
			}
			task()

			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wakeup:
		}
	}
}

// Do enqueues f to run on the loop. It never blocks, and is safe for
// concurrent use.
func (l *Loop) Do(f func()) {
	l.mux.Lock()
	l.queue = append(l.queue, f)
	l.mux.Unlock()

	select {
	case l.wakeup <- struct{}{}:
	default:
	}
}

// Flush blocks until every task enqueued before the call has run, or ctx is
// done.
func (l *Loop) Flush(ctx context.Context) error {
	done := make(chan struct{})
	l.Do(func() { close(done) })

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Speeds returns a copy of the speed configuration the loop resolves
// durations with.
func (l *Loop) Speeds() Speeds {
	return l.speeds.clone()
}

func (l *Loop) next() (func(), bool) {
	l.mux.Lock()
	defer l.mux.Unlock()

	if len(l.queue) == 0 {
		return nil, false
	}

	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]

	return task, true
}
