// Package ioport provides the raw port I/O and CPU primitives the rest of
// the kernel core is built on: byte/word/dword reads and writes to an I/O
// port, block transfers, cli/sti/hlt, rdtsc, and the interrupts-disable /
// interrupts-restore pair every critical section in thread and ksync uses.
package ioport

// IFToken is returned by DisableInterrupts and consumed by RestoreInterrupts.
// It encodes whether interrupts were enabled at the point of the call; it is
// not a counter and does not nest.
type IFToken struct {
	wasEnabled bool
}

// PortAccess records a single port read or write, for assertions in tests.
type PortAccess struct {
	Port  uint16
	Write bool
	Size  int // 1, 2, or 4
	Value uint32
}

// Bus abstracts the CPU/port-I/O surface so the rest of the kernel core
// never branches on build tag. Three implementations exist: the real
// baremetal backend (ioport_baremetal_amd64.go + .s, build tag
// "baremetal && amd64"), the software SimBus used by every hosted build
// and all tests, and the opt-in HostPortBus (build tag "hostport").
type Bus interface {
	Inb(port uint16) uint8
	Outb(port uint16, val uint8)
	Inw(port uint16) uint16
	Outw(port uint16, val uint16)
	Indw(port uint16) uint32
	Outdw(port uint16, val uint32)

	// Ins/Outs perform count-word block transfers starting at port.
	Ins(port uint16, count int) []uint16
	Outs(port uint16, data []uint16)

	Rdtsc() uint64

	// DisableInterrupts masks interrupts (cli) and returns a token
	// encoding whether they were previously enabled.
	DisableInterrupts() IFToken
	// RestoreInterrupts re-enables interrupts (sti) iff tok indicates
	// they were enabled before the matching DisableInterrupts call.
	RestoreInterrupts(tok IFToken)
	// EnableInterrupts unconditionally enables interrupts. Used only by
	// a freshly created thread's trampoline, which has no saved token to
	// restore from since it never went through DisableInterrupts itself.
	EnableInterrupts()

	Halt()
}

// Default is the process-wide Bus used by packages that do not construct
// their own (the cmd binaries pass an explicit Bus to kernel.Boot; Default
// exists for small standalone programs and tests that want the ambient
// backend without wiring one up by hand).
var Default Bus
