package bind

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const waitFor = time.Second

// harness runs a Loop driven by a mock clock.
type harness struct {
	t     *testing.T
	clock *clock.Mock
	loop  *Loop
	logs  *observer.ObservedLogs
	start time.Time
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	mock := clock.NewMock()
	core, logs := observer.New(zap.DebugLevel)

	opts = append([]Option{WithClock(mock), WithLogger(zap.New(core))}, opts...)
	loop := NewLoop(opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return &harness{
		t:     t,
		clock: mock,
		loop:  loop,
		logs:  logs,
		start: mock.Now(),
	}
}

func (h *harness) flush() {
	h.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()

	require.NoError(h.t, h.loop.Flush(ctx))
}

// trigger fires event on el and waits for its handlers to run.
func (h *harness) trigger(el *Element, event string, data any) {
	h.t.Helper()

	el.Trigger(event, data)
	h.flush()
}

// advance moves the mock clock forward by d.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()

	h.clock.Add(d)
	h.flush()
}

// waitLog waits until msg has been logged n times in total.
func (h *harness) waitLog(msg string, n int) {
	h.t.Helper()

	require.Eventually(h.t, func() bool {
		return h.logs.FilterMessage(msg).Len() >= n
	}, waitFor, time.Millisecond)
	h.flush()
}

// elapsed returns how long the mock clock has advanced since the harness was
// created.
func (h *harness) elapsed() time.Duration {
	return h.clock.Now().Sub(h.start)
}

type call struct {
	target string
	event  string
	data   any
	at     time.Duration
}

// recorder collects callback invocations.
type recorder struct {
	h     *harness
	mux   sync.Mutex
	calls []call
}

func newRecorder(h *harness) *recorder {
	return &recorder{h: h}
}

func (r *recorder) callback(target *Element, e Event) {
	r.mux.Lock()
	defer r.mux.Unlock()

	r.calls = append(r.calls, call{
		target: target.Name(),
		event:  e.Type,
		data:   e.Data,
		at:     r.h.elapsed(),
	})
}

func (r *recorder) get() []call {
	r.mux.Lock()
	defer r.mux.Unlock()

	return append([]call(nil), r.calls...)
}

func (r *recorder) count() int {
	return len(r.get())
}

// waitCount waits until at least n calls have been recorded.
func (r *recorder) waitCount(n int) {
	r.h.t.Helper()

	require.Eventually(r.h.t, func() bool {
		return r.count() >= n
	}, waitFor, time.Millisecond)
	r.h.flush()
}
