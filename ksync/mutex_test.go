package ksync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"novakernel/ioport"
	"novakernel/thread"
)

// bumpAllocator mirrors kernel.Allocator's break-bumping contract without
// importing the kernel package, so these tests depend only on thread and
// ioport.
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

func newTestScheduler() *thread.Scheduler {
	s := thread.NewScheduler(ioport.NewSimBus(), newBumpAllocator(1<<20))
	s.Init()
	return s
}

func TestTryLockUncontendedSucceeds(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)
	require.True(t, m.TryLock())
	require.Equal(t, s.Self(), m.Owner())
}

func TestTryLockContendedFails(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)

	locked := make(chan struct{})
	release := make(chan struct{})
	s.Create(func(any) {
		m.Lock()
		close(locked)
		// Yield rather than block on release: only the thread holding the
		// scheduler's baton runs, so blocking here would stall the test.
		for {
			select {
			case <-release:
				m.Unlock()
				return
			default:
				s.Yield()
			}
		}
	}, nil)
	s.Yield()
	<-locked

	require.False(t, m.TryLock())
	close(release)
}

func TestLockUnlockRoundTrip(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)
	m.Lock()
	require.Equal(t, s.Self(), m.Owner())
	m.Unlock()
	require.Nil(t, m.Owner())
}

// TestStrictFIFOMutex is spec.md §8 scenario 2: five threads created in
// order T1..T5 all contend for a mutex T0 (the kernel thread) already
// holds; as T0 unlocks and relocks five times, they enter the critical
// section in creation order.
func TestStrictFIFOMutex(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)
	m.Lock() // T0 (kernel thread) holds it first

	var order []int
	orderCh := make(chan int, 5)

	for i := 1; i <= 5; i++ {
		i := i
		s.Create(func(any) {
			m.Lock()
			orderCh <- i
			m.Unlock()
		}, nil)
	}

	// Let all five threads run up to and block on m.Lock().
	for i := 0; i < 10; i++ {
		s.Yield()
	}

	for i := 0; i < 5; i++ {
		m.Unlock()
		m.Lock()
		for i := 0; i < 4; i++ {
			s.Yield()
		}
	}
	m.Unlock()

	// Give the woken waiters CPU time to take the lock in turn.
	for i := 0; i < 20; i++ {
		s.Yield()
	}

	for i := 0; i < 5; i++ {
		select {
		case v := <-orderCh:
			order = append(order, v)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for entry %d", i)
		}
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, order)
}

func TestRecursiveLockAsserts(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)
	m.Lock()
	require.Panics(t, func() { m.Lock() })
}

func TestUnlockByNonOwnerAsserts(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)

	done := make(chan struct{})
	s.Create(func(any) {
		m.Lock()
		close(done)
	}, nil)
	s.Yield()
	<-done

	require.Panics(t, func() { m.Unlock() })
}

func TestDestroyWithWaiterAsserts(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)
	m.Lock()

	blocked := make(chan struct{})
	s.Create(func(any) {
		m.Lock()
		close(blocked)
		m.Unlock()
	}, nil)
	s.Yield()

	require.Panics(t, func() { m.Destroy() })
}

func TestDestroyUncontendedDoesNotAssert(t *testing.T) {
	s := newTestScheduler()
	m := NewMutex(s)
	require.NotPanics(t, func() { m.Destroy() })
}
