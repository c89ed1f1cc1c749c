package thread

import (
	"novakernel/ioport"
	"novakernel/kernel/klog"
)

const stackSize = 32 * 1024

// Scheduler owns the ready queue, the global list, the zombie list, and
// the current-thread pointer: the "single Kernel instance" spec.md §9
// describes, constructed explicitly (instead of package globals) so
// multiple independent schedulers can coexist in one test binary.
type Scheduler struct {
	bus   ioport.Bus
	alloc Allocator

	ready  *list
	global *list
	zombie *list

	current *Thread
	idle    *Thread
	reaper  *Thread

	nextID uint64
}

// NewScheduler constructs a Scheduler bound to bus, drawing thread stacks
// from alloc. Call Init before creating any other thread.
func NewScheduler(bus ioport.Bus, alloc Allocator) *Scheduler {
	return &Scheduler{
		bus:    bus,
		alloc:  alloc,
		ready:  newList(queueLinkOf),
		global: newList(globalLinkOf),
		zombie: newList(queueLinkOf),
	}
}

// Init publishes the calling goroutine as the kernel thread (id 0,
// Runnable), then spawns the idle and reaper threads, per spec.md §4.C.
// Must be called exactly once, before Yield/Sleep/Create.
func (s *Scheduler) Init() {
	kernel := &Thread{id: s.nextID, status: Runnable, ctx: newExecContext()}
	s.nextID++
	s.global.pushBack(kernel)
	s.current = kernel

	s.idle = s.spawn(func(any) { s.idleLoop() }, nil)
	s.reaper = s.spawn(func(any) { s.reaperLoop() }, nil)

	// The idle and reaper threads start life on the ready queue like any
	// other Create'd thread; the idle thread is never meant to sit there
	// (schedule() only ever picks it when the queue is otherwise empty),
	// so pull it back off immediately.
	s.ready.remove(s.idle)
}

// Create allocates a thread record and stack, primes the stack so its
// first resume lands in the trampoline, and appends it to the global list
// and ready queue.
func (s *Scheduler) Create(fn func(arg any), arg any) *Thread {
	tok := s.bus.DisableInterrupts()
	t := s.spawn(fn, arg)
	s.bus.RestoreInterrupts(tok)
	return t
}

// spawn does the work of Create without touching interrupt state, so
// Init can use it before there is anything to race with.
func (s *Scheduler) spawn(fn func(arg any), arg any) *Thread {
	t := &Thread{
		id:     s.nextID,
		status: Runnable,
		stack:  s.alloc.Alloc(stackSize),
		ctx:    newExecContext(),
		fn:     fn,
		arg:    arg,
	}
	s.nextID++

	t.ctx.start(t.stack, func() { s.trampoline(t) })

	s.global.pushBack(t)
	s.ready.pushBack(t)
	return t
}

// trampoline is what a freshly created thread's stack resumes into: it
// enables interrupts, runs the thread's function, then exits. It must
// never return; Exit never returns control to its caller.
func (s *Scheduler) trampoline(t *Thread) {
	s.bus.EnableInterrupts()
	t.fn(t.arg)
	s.Exit(nil)
	klog.Fatal("thread: trampoline resumed after exit for thread %d", t.id)
}

// Self returns the currently running thread.
func (s *Scheduler) Self() *Thread { return s.current }

// Setspecific stores ptr in the current thread's single TLS slot.
func (s *Scheduler) Setspecific(ptr any) { s.current.tls = ptr }

// Getspecific returns the current thread's TLS slot.
func (s *Scheduler) Getspecific() any { return s.current.tls }

// Yield invokes the scheduler, remaining Runnable and surrendering the
// CPU.
func (s *Scheduler) Yield() {
	tok := s.bus.DisableInterrupts()
	s.schedule(tok)
}

// Exit marks the current thread Exited and invokes the scheduler. It
// never returns to its caller.
func (s *Scheduler) Exit(value any) {
	tok := s.bus.DisableInterrupts()
	s.current.status = Exited
	s.current.exitValue = value
	s.schedule(tok)
	klog.Fatal("thread: Exit returned for thread %d", s.current.id)
}

// Sleep marks the current thread Blocked and invokes the scheduler. The
// caller must already have placed the current thread on some wait-queue
// before calling Sleep, or it will never be woken; Scheduler itself has
// no notion of "the" wait-queue, that bookkeeping lives in WaitOn
// (waitqueue.go).
func (s *Scheduler) Sleep(tok ioport.IFToken) {
	s.current.status = Blocked
	s.schedule(tok)
}

// Wake marks t Runnable and appends it to the ready queue. Safe to call
// from an IRQ handler, which runs with interrupts already disabled.
func (s *Scheduler) Wake(t *Thread) {
	klog.Assert(t.status == Blocked, "thread: Wake on non-Blocked thread %d (status=%s)", t.id, t.status)
	t.status = Runnable
	s.ready.pushBack(t)
}

// DisableInterrupts and RestoreInterrupts expose the scheduler's bus so
// ksync can implement its own interrupts-disabled critical sections
// without reaching around the Scheduler for the bus.
func (s *Scheduler) DisableInterrupts() ioport.IFToken    { return s.bus.DisableInterrupts() }
func (s *Scheduler) RestoreInterrupts(tok ioport.IFToken) { s.bus.RestoreInterrupts(tok) }

// Threads returns a snapshot of the global list, for enumeration/debug
// purposes only (spec.md §3: "used for enumeration/debug only").
func (s *Scheduler) Threads() []*Thread {
	var out []*Thread
	s.global.each(func(t *Thread) { out = append(out, t) })
	return out
}

// schedule implements spec.md §4.C's scheduler algorithm. Entered with
// interrupts already disabled (tok is the token from that disable); its
// last act is to restore interrupts using the *resumed* thread's own
// saved token, not tok, so IF reflects the resumed thread's policy.
func (s *Scheduler) schedule(tok ioport.IFToken) {
	prev := s.current

	if prev != s.idle {
		switch prev.status {
		case Runnable:
			s.ready.pushBack(prev)
		case Blocked:
			// already placed on some wait-queue by the caller
		case Exited, Killed:
			s.zombie.pushBack(prev)
			if s.reaper.status == Blocked {
				s.Wake(s.reaper)
			}
		default:
			klog.Fatal("thread: unknown status %s for thread %d in schedule", prev.status, prev.id)
		}
	}

	var next *Thread
	if s.ready.empty() {
		next = s.idle
	} else {
		next = s.ready.popFront()
	}

	prev.savedToken = tok

	if next == prev {
		s.bus.RestoreInterrupts(tok)
		return
	}

	s.current = next
	prev.ctx.switchTo(next.ctx)

	// Execution resumes here only when some later schedule() call
	// switches back to prev (now s.current again, since ctx.switchTo
	// only returns once this thread is the one being resumed).
	s.bus.RestoreInterrupts(s.current.savedToken)
}

// idleLoop is the idle thread's body: yield, then halt until the next
// interrupt. It is never placed on the ready queue; schedule() only picks
// it when the queue is otherwise empty.
func (s *Scheduler) idleLoop() {
	for {
		s.Yield()
		s.bus.Halt()
	}
}

// reaperLoop frees every zombie's stack and record, then blocks until
// schedule() wakes it again because another thread exited.
func (s *Scheduler) reaperLoop() {
	for {
		tok := s.bus.DisableInterrupts()
		for !s.zombie.empty() {
			t := s.zombie.popFront()
			s.global.remove(t)
			t.stack = nil
		}
		s.current.status = Blocked
		s.schedule(tok)
	}
}
