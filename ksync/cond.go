package ksync

import (
	"novakernel/kernel/klog"
	"novakernel/thread"
)

// Cond is a condition variable: a wait-queue with no associated state or
// predicate. Waiters must re-check their own predicate after Wait
// returns, per spec.md §4.D.
type Cond struct {
	s       *thread.Scheduler
	waiters *thread.WaitQueue
}

// NewCond returns an empty Cond scheduled by s.
func NewCond(s *thread.Scheduler) *Cond {
	return &Cond{s: s, waiters: thread.NewWaitQueue()}
}

// Wait must be called with m locked by the current thread. It atomically
// (with respect to interrupts, and therefore with respect to every other
// thread on this single-CPU cooperative scheduler) releases m and blocks
// on the condition variable's wait-queue, then reacquires m before
// returning.
func (c *Cond) Wait(m *Mutex) {
	tok := c.s.DisableInterrupts()
	self := c.s.Self()
	klog.Assert(m.Owner() == self, "ksync: Cond.Wait with mutex not held by thread %d", self.ID())

	m.unlockUnsafe()
	c.s.WaitOn(c.waiters, tok)

	m.Lock()
}

// Signal wakes the longest-waiting thread blocked on c, if any.
func (c *Cond) Signal() {
	tok := c.s.DisableInterrupts()
	c.s.WakeFirst(c.waiters)
	c.s.RestoreInterrupts(tok)
}

// Broadcast wakes every thread blocked on c. A Broadcast with no waiters
// is a no-op.
func (c *Cond) Broadcast() {
	tok := c.s.DisableInterrupts()
	c.s.WakeAll(c.waiters)
	c.s.RestoreInterrupts(tok)
}

// Destroy asserts that no thread is waiting on c.
func (c *Cond) Destroy() {
	klog.Assert(c.waiters.Empty(), "ksync: Cond destroyed with non-empty wait-queue")
}
