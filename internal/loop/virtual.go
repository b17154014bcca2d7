package loop

import (
	"container/heap"
	"time"

	"github.com/charmbracelet/log"
)

// Virtual is a deterministic Scheduler driven by a manual clock. Tasks due at
// the same instant run in the order they were scheduled. It is not safe for
// concurrent use; the headless host and tests drive it from one goroutine.
type Virtual struct {
	now    time.Duration
	seq    uint64
	queue  timerQueue
	ran    int
	logger *log.Logger
}

// NewVirtual returns a Virtual scheduler at time zero.
func NewVirtual(logger *log.Logger) *Virtual {
	if logger == nil {
		logger = log.Default()
	}
	return &Virtual{logger: logger}
}

// Post queues fn at the current virtual time.
func (v *Virtual) Post(fn func()) { v.After(0, fn) }

// After queues fn at now+d.
func (v *Virtual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	heap.Push(&v.queue, &timer{at: v.now + d, seq: v.seq, fn: fn})
	v.seq++
}

// Now returns the elapsed virtual time.
func (v *Virtual) Now() time.Duration { return v.now }

// Pending returns the number of queued tasks.
func (v *Virtual) Pending() int { return v.queue.Len() }

// Ran returns the total number of tasks executed so far.
func (v *Virtual) Ran() int { return v.ran }

// Advance moves the clock forward by d, running every task that falls due,
// including tasks scheduled by those tasks. It returns the number of tasks run.
func (v *Virtual) Advance(d time.Duration) int {
	deadline := v.now + d
	n := 0
	for v.queue.Len() > 0 && v.queue[0].at <= deadline {
		t := heap.Pop(&v.queue).(*timer)
		v.now = t.at
		run(v.logger, t.fn)
		v.ran++
		n++
	}
	v.now = deadline
	return n
}

// RunUntilIdle runs tasks until the queue is empty or the next task lies
// beyond horizon from the current time. It returns the number of tasks run.
func (v *Virtual) RunUntilIdle(horizon time.Duration) int {
	limit := v.now + horizon
	n := 0
	for v.queue.Len() > 0 && v.queue[0].at <= limit {
		n += v.Advance(v.queue[0].at - v.now)
	}
	return n
}

type timer struct {
	at  time.Duration
	seq uint64
	fn  func()
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
