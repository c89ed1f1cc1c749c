// Package interrupt implements the IDT/PIC manager: it programs the
// cascaded 8259 pair, builds the 256-entry IDT, dispatches IRQs to
// installed handlers, and maintains the shadow interrupt mask described in
// spec.md §4.B.
package interrupt

import (
	"novakernel/ioport"
	"novakernel/kernel/klog"
)

// Handler is a user-installed IRQ handler. It receives the IRQ line number
// (0-15) it was invoked for.
type Handler func(irq int)

// HandlerKind distinguishes the two sentinel handlers from a real
// user-supplied one, per the Design Notes' "type-safe sentinel"
// recommendation. SIG_DFL/SIG_IGN in the signal package map onto these.
type HandlerKind int

const (
	// KindDefault acknowledges the interrupt and does nothing else.
	KindDefault HandlerKind = iota
	// KindIgnore returns without acknowledging; the IRQ stub's usual EOI
	// is skipped for this IRQ, per spec.md §4.B.
	KindIgnore
	// KindUser is an installed user handler.
	KindUser
)

const numIRQ = 16

type binding struct {
	kind HandlerKind
	fn   Handler
}

// Controller owns the IDT, the shadow mask, and the handler table. Exactly
// one Controller exists per booted kernel (see kernel.Boot); it is not a
// package-level singleton so multiple independent kernels can coexist in
// one test binary.
//
// mask, handlers, idt, and exceptions are guarded by disabling interrupts
// around each access, the same discipline thread and ksync use for their
// own shared state, not a sync.Mutex: the CPU is uniprocessor and
// non-preemptive, so a critical section that cannot itself be interrupted
// is already exclusive. The source this was distilled from follows the
// identical rule — every mutator of signal_mask/descriptors in idt.c runs
// either before interrupts are ever enabled or from inside an IRQ/exception
// stub, never behind a lock.
type Controller struct {
	bus ioport.Bus

	mask     Mask
	handlers [numIRQ]binding
	idt      idtTable

	exceptions [17]ExceptionHandler
}

// NewController constructs a Controller bound to bus. Call Init before
// unmasking or dispatching any IRQ.
func NewController(bus ioport.Bus) *Controller {
	c := &Controller{bus: bus}
	for i := range c.handlers {
		c.handlers[i] = binding{kind: KindDefault}
	}
	return c
}

// Init programs the PIC pair, installs trap gates for CPU exceptions 0-16,
// fills the unused vector range 17-255 with the default interrupt gate,
// and installs interrupt gates for IRQs 0-15 at vectors 32-47.
func (c *Controller) Init() {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)

	c.mask = programPIC(c.bus)

	for v := 0; v <= 16; v++ {
		c.idt.set(v, NewGateDescriptor(exceptionStubAddr(v), GateTrap))
		c.exceptions[v] = HandleFatal
	}
	for v := 17; v < idtSize; v++ {
		c.idt.set(v, NewGateDescriptor(defaultStubAddr, GateInterrupt))
	}
	for irq := 0; irq < numIRQ; irq++ {
		c.idt.set(irqVector(irq), NewGateDescriptor(irqStubAddr(irq), GateInterrupt))
	}
}

func irqVector(irq int) int { return 32 + irq }

// these return a placeholder "address": on the baremetal backend the real
// build's linker assigns the actual stub addresses; the simulated backend
// never dereferences them; they exist purely so the IDT image Init builds
// is a faithful 256-entry table shaped exactly like spec.md describes.
func exceptionStubAddr(vector int) uint32 { return 0x00100000 + uint32(vector)*16 }
func irqStubAddr(irq int) uint32          { return 0x00200000 + uint32(irq)*16 }

const defaultStubAddr uint32 = 0x00100000 // shared default-interrupt-gate stub

// Gate returns the installed descriptor for vector, for test assertions
// about gate kind and wiring.
func (c *Controller) Gate(vector int) GateDescriptor {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)
	return c.idt[vector]
}

// Install binds fn as IRQ irq's handler. kind is interpreted the way
// sigaction does: SIG_DFL and SIG_IGN (KindDefault/KindIgnore, fn==nil)
// install the matching sentinel; anything else installs a user handler.
// It returns the previously installed binding (kind + handler), mirroring
// sigaction's "old" out-parameter.
func (c *Controller) Install(irq int, kind HandlerKind, fn Handler) (HandlerKind, Handler) {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)
	old := c.handlers[irq]
	c.handlers[irq] = binding{kind: kind, fn: fn}
	return old.kind, old.fn
}

// Mask sets bit irq in the shadow mask and reprograms both PICs.
func (c *Controller) Mask(irq int) {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)
	c.mask = updateMask(c.bus, c.mask|(1<<uint(irq)))
}

// Unmask clears bit irq in the shadow mask and reprograms both PICs.
func (c *Controller) Unmask(irq int) {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)
	c.mask = updateMask(c.bus, c.mask&^(1<<uint(irq)))
}

// Snapshot returns the current shadow mask, for invariant assertions.
func (c *Controller) Snapshot() Mask {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)
	return c.mask
}

// SetException overrides the handler installed for a fatal CPU exception
// vector (0-16). Init installs HandleFatal in every slot; callers that want a diagnostic specific to, say, page faults
// can override just that vector.
func (c *Controller) SetException(vector int, fn ExceptionHandler) {
	tok := c.bus.DisableInterrupts()
	defer c.bus.RestoreInterrupts(tok)
	c.exceptions[vector] = fn
}

// RaiseException implements the exception-stub contract for vectors 0-16:
// look up the installed handler and invoke it with the stack walk the stub
// captured. Per spec.md §4.B these never return; every ExceptionHandler is
// expected to end in klog.Fatal, but RaiseException itself also falls back
// to HandleFatal if a vector has no handler installed or the handler
// returns anyway.
func (c *Controller) RaiseException(vector int, errorCode uint32, faultAddr uintptr, frames FrameWalker) {
	tok := c.bus.DisableInterrupts()
	fn := c.exceptions[vector]
	c.bus.RestoreInterrupts(tok)

	info := ExceptionInfo{
		Vector:       vector,
		ErrorCode:    errorCode,
		HasErrorCode: vectorHasErrorCode(vector),
		FaultAddr:    faultAddr,
	}
	if fn == nil {
		fn = HandleFatal
	}
	fn(info, frames)
	HandleFatal(info, frames)
}

// Dispatch implements the IRQ stub contract: look up the installed
// handler, invoke it, and send EOI (to the slave too when irq>=8) unless
// the bound handler is the ignore sentinel, in which case no EOI is sent
// and the line is left pending, per spec.md §4.B.
func (c *Controller) Dispatch(irq int) {
	tok := c.bus.DisableInterrupts()
	b := c.handlers[irq]
	c.bus.RestoreInterrupts(tok)

	switch b.kind {
	case KindIgnore:
		return
	case KindDefault:
		sendEOI(c.bus, irq)
	case KindUser:
		if b.fn != nil {
			b.fn(irq)
		}
		sendEOI(c.bus, irq)
	default:
		klog.Fatal("interrupt: unknown handler kind %d for IRQ %d", b.kind, irq)
	}
}
