//go:build !baremetal

package ioport

// SimBus is a pure-software Bus: reads return the last value written to a
// port (zero otherwise), and interrupt state is tracked as a plain bool
// instead of a real IF flag. It is what every hosted build and all tests
// run against; it gives the interrupt and thread packages something to
// exercise without real hardware or a cross-compiler.
//
// ports/enabled/tsc/trace carry no lock: novakernel's cooperative
// scheduler guarantees exactly one goroutine is ever actually running at
// a time (thread/context_sim.go's baton hands control from one context's
// goroutine to the next and blocks the sender), the same single-CPU,
// non-preemptive assumption the rest of the kernel core relies on instead
// of spinlocks (spec.md §9). A SimBus is itself only ever reached through
// that same cooperative handoff, so it needs no synchronization of its
// own beyond what a real CPU's ports would need.
type SimBus struct {
	ports   map[uint16]uint32
	enabled bool
	tsc     uint64
	trace   []PortAccess
	tracing bool
}

// NewSimBus returns a SimBus with interrupts enabled, matching the state a
// freshly booted CPU is in after the boot stub's first sti.
func NewSimBus() *SimBus {
	return &SimBus{
		ports:   make(map[uint16]uint32),
		enabled: true,
	}
}

func init() {
	Default = NewSimBus()
}

// Trace returns a copy of the accesses recorded since the last
// StartTracing. Recording continues after the call; there is no call that
// stops it.
func (b *SimBus) Trace() []PortAccess {
	out := make([]PortAccess, len(b.trace))
	copy(out, b.trace)
	return out
}

// StartTracing begins recording port accesses from this point on.
func (b *SimBus) StartTracing() {
	b.tracing = true
	b.trace = nil
}

func (b *SimBus) record(port uint16, write bool, size int, value uint32) {
	if b.tracing {
		b.trace = append(b.trace, PortAccess{Port: port, Write: write, Size: size, Value: value})
	}
}

func (b *SimBus) Inb(port uint16) uint8 {
	v := uint8(b.ports[port])
	b.record(port, false, 1, uint32(v))
	return v
}

func (b *SimBus) Outb(port uint16, val uint8) {
	b.ports[port] = uint32(val)
	b.record(port, true, 1, uint32(val))
}

func (b *SimBus) Inw(port uint16) uint16 {
	v := uint16(b.ports[port])
	b.record(port, false, 2, uint32(v))
	return v
}

func (b *SimBus) Outw(port uint16, val uint16) {
	b.ports[port] = uint32(val)
	b.record(port, true, 2, uint32(val))
}

func (b *SimBus) Indw(port uint16) uint32 {
	v := b.ports[port]
	b.record(port, false, 4, v)
	return v
}

func (b *SimBus) Outdw(port uint16, val uint32) {
	b.ports[port] = val
	b.record(port, true, 4, val)
}

func (b *SimBus) Ins(port uint16, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = b.Inw(port)
	}
	return out
}

func (b *SimBus) Outs(port uint16, data []uint16) {
	for _, v := range data {
		b.Outw(port, v)
	}
}

func (b *SimBus) Rdtsc() uint64 {
	b.tsc++
	return b.tsc
}

func (b *SimBus) DisableInterrupts() IFToken {
	tok := IFToken{wasEnabled: b.enabled}
	b.enabled = false
	return tok
}

func (b *SimBus) RestoreInterrupts(tok IFToken) {
	if tok.wasEnabled {
		b.enabled = true
	}
}

func (b *SimBus) EnableInterrupts() {
	b.enabled = true
}

// Halt is a no-op on the sim backend: there is no hardware to actually
// pause, and the caller (the idle thread) always loops back to Yield.
func (b *SimBus) Halt() {}

// InterruptsEnabled reports the current IF state, for test assertions.
func (b *SimBus) InterruptsEnabled() bool {
	return b.enabled
}
