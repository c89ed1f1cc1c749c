// Package ksync implements the kernel core's mutex and condition-variable
// primitives on top of thread's wait-queues and interrupt-disable critical
// sections, per spec.md §4.D. There are no spinlocks anywhere in this
// package: the CPU is uniprocessor and non-preemptive, so disabling
// interrupts for the duration of a list mutation is full mutual exclusion.
package ksync

import (
	"novakernel/kernel/klog"
	"novakernel/thread"
)

// Mutex is a non-recursive, FIFO-fair lock. Its wait-queue is a thread
// WaitQueue, and "held" is tracked as an owner thread handle rather than a
// boolean, so Lock can assert against self-re-entry.
type Mutex struct {
	s       *thread.Scheduler
	owner   *thread.Thread
	waiters *thread.WaitQueue
}

// NewMutex returns an unlocked Mutex scheduled by s.
func NewMutex(s *thread.Scheduler) *Mutex {
	return &Mutex{s: s, waiters: thread.NewWaitQueue()}
}

// Lock blocks until the mutex is uncontended, then takes ownership. A
// thread that already owns m asserts rather than deadlocking or
// recursing: spec.md §9 calls this out explicitly as "a bug to surface
// loudly, not to accommodate".
//
// Fairness: strict FIFO among waiters, but not strict handoff. Unlock
// wakes the head of the wait-queue before clearing owner, so an awoken
// waiter and a brand-new Lock caller both observe owner == nil once
// Unlock returns and race to claim it; the awoken waiter is not
// guaranteed to win. This matches the source's documented behavior.
func (m *Mutex) Lock() {
	tok := m.s.DisableInterrupts()
	self := m.s.Self()
	klog.Assert(m.owner != self, "ksync: recursive Lock by thread %d", self.ID())
	for m.owner != nil {
		m.s.WaitOn(m.waiters, tok)
		tok = m.s.DisableInterrupts()
	}
	m.owner = self
	m.s.RestoreInterrupts(tok)
}

// Unlock releases m, waking the longest-waiting blocked locker if any.
func (m *Mutex) Unlock() {
	tok := m.s.DisableInterrupts()
	self := m.s.Self()
	klog.Assert(m.owner == self, "ksync: Unlock by non-owner thread %d", self.ID())
	m.unlockUnsafe()
	m.s.RestoreInterrupts(tok)
}

// unlockUnsafe is Unlock without the ownership assertion or the caller's
// own interrupt disable/restore, for Cond.Wait's atomic release-and-block,
// which already holds both.
func (m *Mutex) unlockUnsafe() {
	m.s.WakeFirst(m.waiters)
	m.owner = nil
}

// TryLock acquires m iff it is uncontended, without ever blocking.
func (m *Mutex) TryLock() bool {
	tok := m.s.DisableInterrupts()
	defer m.s.RestoreInterrupts(tok)
	if m.owner != nil {
		return false
	}
	m.owner = m.s.Self()
	return true
}

// Owner returns the current owner, or nil if unlocked. For test
// assertions and Cond's "must be called with mutex locked by self"
// contract check.
func (m *Mutex) Owner() *thread.Thread { return m.owner }

// Destroy asserts that no thread is waiting on m, per spec.md §3's
// destroy-time invariant: a mutex's wait-queue must be empty when
// destroyed.
func (m *Mutex) Destroy() {
	klog.Assert(m.waiters.Empty(), "ksync: Mutex destroyed with non-empty wait-queue")
}
