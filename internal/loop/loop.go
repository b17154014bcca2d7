// Package loop provides the single-threaded cooperative scheduler the zoom
// controller runs on. All controller state is touched only from tasks run by
// a Scheduler, so no locking is needed beyond the scheduler itself.
package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// Scheduler runs callbacks one at a time.
type Scheduler interface {
	// Post queues fn to run as soon as possible.
	Post(fn func())
	// After queues fn to run once d has elapsed. Timers are not cancellable.
	After(d time.Duration, fn func())
}

// defaultQueueSize bounds the number of tasks buffered before Post falls
// back to a goroutine hand-off.
const defaultQueueSize = 256

// Loop is a Scheduler backed by a goroutine draining a task queue. It is
// safe to Post from any goroutine, including syscall/js callbacks.
type Loop struct {
	tasks  chan func()
	logger *log.Logger
}

// New creates a Loop. Call Run to start draining it.
func New(logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{
		tasks:  make(chan func(), defaultQueueSize),
		logger: logger,
	}
}

// Post queues fn. It never blocks the caller: when the queue is full the
// hand-off happens on a new goroutine and ordering with respect to other
// posts is no longer guaranteed.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	default:
		go func() { l.tasks <- fn }()
	}
}

// After posts fn once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	if d <= 0 {
		l.Post(fn)
		return
	}
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Run executes queued tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			run(l.logger, fn)
		}
	}
}

// run executes one task, recovering a panic so later tasks still run.
func run(logger *log.Logger, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("scheduled task panicked", "panic", r)
		}
	}()
	fn()
}
