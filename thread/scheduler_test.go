package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"novakernel/ioport"
)

// drainReaper gives the reaper thread a couple of extra scheduling turns
// so exited threads are actually freed before a test asserts on the
// global list; the reaper only runs when schedule() picks it off the
// ready queue.
func drainReaper(s *Scheduler) {
	for i := 0; i < 4; i++ {
		s.Yield()
	}
}

// bumpAllocator is a minimal stand-in for kernel.Allocator: an
// upward-moving break over a fixed arena, no free-list, matching the
// contract Scheduler's Allocator interface requires without pulling in
// the kernel package (which imports thread, so it cannot be imported
// back from thread's own tests).
type bumpAllocator struct {
	arena []byte
	brk   uintptr
}

func newBumpAllocator(size uintptr) *bumpAllocator {
	return &bumpAllocator{arena: make([]byte, size)}
}

func (a *bumpAllocator) Alloc(n uintptr) []byte {
	region := a.arena[a.brk : a.brk+n]
	a.brk += n
	return region
}

func newTestScheduler(t *testing.T) *Scheduler {
	bus := ioport.NewSimBus()
	s := NewScheduler(bus, newBumpAllocator(1<<20))
	s.Init()
	return s
}

func TestInitPublishesKernelThread(t *testing.T) {
	s := newTestScheduler(t)
	require.Equal(t, uint64(0), s.Self().ID())
	require.Equal(t, Runnable, s.Self().Status())
}

func TestCreateAppendsToGlobalAndRunsBody(t *testing.T) {
	s := newTestScheduler(t)

	done := make(chan struct{})
	s.Create(func(any) {
		close(done)
	}, nil)

	s.Yield()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("created thread never ran")
	}
}

func TestExitReachesExitedAndIsReaped(t *testing.T) {
	s := newTestScheduler(t)

	th := s.Create(func(any) {}, nil)
	s.Yield() // let it run to completion

	require.Eventually(t, func() bool {
		return th.Status() == Exited
	}, time.Second, time.Millisecond)

	drainReaper(s)

	ids := map[uint64]bool{}
	for _, t := range s.Threads() {
		ids[t.ID()] = true
	}
	require.False(t, ids[th.ID()], "reaped thread should no longer be on the global list")
}

func TestSetspecificGetspecificPerThread(t *testing.T) {
	s := newTestScheduler(t)

	results := make(chan any, 2)
	s.Create(func(any) {
		s.Setspecific("a")
		s.Yield()
		results <- s.Getspecific()
	}, nil)
	s.Create(func(any) {
		s.Setspecific("b")
		s.Yield()
		results <- s.Getspecific()
	}, nil)

	for i := 0; i < 6; i++ {
		s.Yield()
	}

	got := map[any]bool{}
	for i := 0; i < 2; i++ {
		select {
		case v := <-results:
			got[v] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for TLS results")
		}
	}
	require.True(t, got["a"])
	require.True(t, got["b"])
}

func TestYieldWithNoWorkPendingDoesNotDeadlock(t *testing.T) {
	s := newTestScheduler(t)
	// Only the kernel, idle, and reaper threads exist; yielding must not
	// deadlock. The first Yield runs the reaper, which blocks again; after
	// that the kernel thread is the only Runnable thread, so schedule()
	// requeues and picks it straight back.
	require.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			s.Yield()
		}
	})
}

func TestTrampolineEnablesInterrupts(t *testing.T) {
	bus := ioport.NewSimBus()
	bus.DisableInterrupts()
	s := NewScheduler(bus, newBumpAllocator(1<<20))
	s.Init()

	enabled := make(chan bool, 1)
	s.Create(func(any) {
		enabled <- bus.InterruptsEnabled()
	}, nil)
	s.Yield()

	select {
	case got := <-enabled:
		require.True(t, got)
	case <-time.After(time.Second):
		t.Fatal("created thread never ran")
	}
}
