package sim

import "time"

type FrameID uint64

type FrameFunc func(now time.Duration)

// Scheduler runs a callback once at the next display frame, in the manner
// of requestAnimationFrame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type queuedFrame struct {
	id FrameID
	fn FrameFunc
}

// FrameQueue is a Scheduler for hosts that own their frame loop. Each
// Flush runs the callbacks requested before it; callbacks requested during
// a Flush wait for the next one.
type FrameQueue struct {
	next    FrameID
	pending []queuedFrame
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.next++
	q.pending = append(q.pending, queuedFrame{id: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Flush runs the due callbacks and reports how many ran.
func (q *FrameQueue) Flush(now time.Duration) int {
	due := q.pending
	q.pending = nil
	for _, f := range due {
		f.fn(now)
	}
	return len(due)
}

func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Loop re-requests its callback after every frame until stopped.
type Loop struct {
	sched   Scheduler
	fn      FrameFunc
	id      FrameID
	running bool
}

func NewLoop(sched Scheduler, fn FrameFunc) *Loop {
	return &Loop{sched: sched, fn: fn}
}

func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.id = l.sched.RequestFrame(l.frame)
}

// Stop cancels the pending frame request.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.running = false
	l.sched.CancelFrame(l.id)
}

func (l *Loop) Running() bool {
	return l.running
}

func (l *Loop) frame(now time.Duration) {
	if !l.running {
		return
	}
	l.fn(now)
	if l.running {
		l.id = l.sched.RequestFrame(l.frame)
	}
}
