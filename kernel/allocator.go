package kernel

import "novakernel/kernel/klog"

// Allocator implements the heap-growing, no-free-list memory contract
// spec.md §6 describes: Alloc bumps a program break and returns a fresh,
// contiguous region starting at the previous break. There is no
// free-list, no coalescing, and no reclamation; thread stacks handed out
// by it are never individually returned, only dropped to the Go
// runtime's own collector once a reaped Thread record becomes
// unreachable.
//
// Alloc returns a []byte rather than the raw uintptr break address the
// contract names, since hosted Go gives no safe way to treat an arbitrary
// integer as addressable memory outside the baremetal build; the backing
// arena is still a single contiguous reservation and the break still only
// ever moves up, so the observable contract (no free-list, no
// coalescing, monotonic break) is unchanged. Callers that need the raw
// address (the baremetal stack-switch primitive) recover it with
// unsafe.Pointer(&region[0]).
type Allocator struct {
	arena []byte
	brk   uintptr
}

// NewAllocator reserves size bytes of backing memory, standing in for the
// region between the end of the loaded kernel image and the top of
// available memory a real boot stub would hand off.
func NewAllocator(size uintptr) *Allocator {
	return &Allocator{arena: make([]byte, size)}
}

// Alloc returns the next n bytes from the break and advances it. Running
// out of backing memory is fatal: the kernel thread that would need to
// report the failure has no allocator-free path to do so over.
func (a *Allocator) Alloc(n uintptr) []byte {
	if a.brk+n > uintptr(len(a.arena)) {
		klog.Fatal("kernel: allocator exhausted: requested %d bytes at break %d of %d", n, a.brk, len(a.arena))
	}
	region := a.arena[a.brk : a.brk+n]
	a.brk += n
	return region
}

// Break reports the current program break, for diagnostics.
func (a *Allocator) Break() uintptr { return a.brk }
