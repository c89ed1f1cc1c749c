package thread

import "novakernel/ioport"

// WaitQueue is a FIFO of Blocked threads, one per mutex or condition
// variable (spec.md §3). It is built on the same intrusive queueLink
// every thread already carries, so pushing a thread here costs no
// allocation and is mutually exclusive with the thread also being on the
// ready queue or the zombie list.
type WaitQueue struct {
	l *list
}

// NewWaitQueue returns an empty wait-queue.
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{l: newList(queueLinkOf)}
}

// Empty reports whether the queue holds any waiters.
func (q *WaitQueue) Empty() bool { return q.l.empty() }

// WaitOn implements spec.md §4.D's wait_on: called with interrupts already
// disabled (tok is that disable's token), it pushes the current thread
// onto q, marks it Blocked, and invokes the scheduler. On return,
// interrupts are in whatever state schedule restored.
func (s *Scheduler) WaitOn(q *WaitQueue, tok ioport.IFToken) {
	q.l.pushBack(s.current)
	s.Sleep(tok)
}

// WakeFirst implements wake_first: if q is non-empty, pop its head,
// assert it was Blocked, and append it to the ready queue. Reports
// whether a waiter was woken.
func (s *Scheduler) WakeFirst(q *WaitQueue) bool {
	t := q.l.popFront()
	if t == nil {
		return false
	}
	s.Wake(t)
	return true
}

// WakeAll implements wake_all: repeat WakeFirst until q is empty.
func (s *Scheduler) WakeAll(q *WaitQueue) {
	for s.WakeFirst(q) {
	}
}
