package launcher

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrWriterClosed is reported for jobs submitted after Close.
var ErrWriterClosed = errors.New("writer is closed")

type job struct {
	name string
	fn   func(ctx context.Context) error
	errc chan error
}

// Writer runs store writes one at a time on its own goroutine, in
// submission order. The gesture path submits and moves on; whoever needs
// the outcome waits on the returned channel. The queue is unbounded so
// Submit never waits for the store.
type Writer struct {
	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	done   chan struct{}
	log    *logrus.Entry

	mu     sync.Mutex
	queue  []job
	closed bool
}

// NewWriter starts a writer. capacity preallocates the queue.
func NewWriter(log *logrus.Entry, capacity int) *Writer {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{
		ctx:    ctx,
		cancel: cancel,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		log:    log,
		queue:  make([]job, 0, max(capacity, 0)),
	}
	go w.loop()
	return w
}

// Submit queues fn. The returned channel receives fn's error, or nil, and
// is then closed.
func (w *Writer) Submit(name string, fn func(ctx context.Context) error) <-chan error {
	errc := make(chan error, 1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		errc <- ErrWriterClosed
		close(errc)
		return errc
	}
	w.queue = append(w.queue, job{name: name, fn: fn, errc: errc})
	w.mu.Unlock()

	w.signal()
	return errc
}

// Close stops accepting jobs, runs the ones already queued and waits for
// the loop to exit.
func (w *Writer) Close() {
	w.mu.Lock()
	already := w.closed
	w.closed = true
	w.mu.Unlock()

	if !already {
		w.signal()
	}
	<-w.done
	w.cancel()
}

func (w *Writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest job. ok is false once the writer is closed and
// drained.
func (w *Writer) next() (j job, ok bool) {
	for {
		w.mu.Lock()
		if len(w.queue) > 0 {
			j = w.queue[0]
			w.queue[0] = job{}
			w.queue = w.queue[1:]
			w.mu.Unlock()
			return j, true
		}
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return job{}, false
		}
		<-w.wake
	}
}

func (w *Writer) loop() {
	defer close(w.done)
	for {
		j, ok := w.next()
		if !ok {
			return
		}
		err := j.fn(w.ctx)
		if err != nil {
			w.log.WithError(err).WithField("job", j.name).Error("store write failed")
		}
		j.errc <- err
		close(j.errc)
	}
}

// Wait blocks until errc delivers or ctx is done.
func Wait(ctx context.Context, errc <-chan error) error {
	if errc == nil {
		return nil
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
