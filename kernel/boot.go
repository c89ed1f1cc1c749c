// Package kernel wires the rest of the kernel core together: the
// allocator, the interrupt controller, the scheduler, the signal façade,
// and the PIT, in the order spec.md §6 describes. cmd/kernel (baremetal)
// and cmd/kernelsim (hosted demo) both boot through kernel.Boot rather
// than constructing these pieces by hand, so the two entry points stay
// in lockstep.
package kernel

import (
	"novakernel/interrupt"
	"novakernel/ioport"
	"novakernel/kernel/klog"
	"novakernel/signal"
	"novakernel/thread"
)

// Kernel holds every piece a booted novakernel needs: it is not a
// package-level singleton, so tests and cmd/kernelsim can construct more
// than one in the same process.
type Kernel struct {
	Bus        ioport.Bus
	Allocator  *Allocator
	Interrupts *interrupt.Controller
	Scheduler  *thread.Scheduler
	Signals    *signal.Facade
	PIT        *interrupt.PIT
}

// Boot constructs a Kernel from cfg and brings it up to the point
// cmd/kernel's boot stub would hand off to the idle thread: the IDT/PIC
// pair programmed, IRQ0 unmasked for the PIT, and the scheduler
// initialized with its kernel/idle/reaper threads.
//
// bus lets callers (cmd/kernel, cmd/kernelsim, tests) choose which
// ioport.Bus backend to boot against; ioport.Default is used if bus is
// nil.
func Boot(cfg Config, bus ioport.Bus) *Kernel {
	if bus == nil {
		bus = ioport.Default
	}

	if err := klog.SetLevel(cfg.LogLevel); err != nil {
		klog.Errorf("kernel: invalid log level %q, leaving level unchanged: %v", cfg.LogLevel, err)
	}

	k := &Kernel{
		Bus:       bus,
		Allocator: NewAllocator(cfg.MemSize),
	}

	k.Interrupts = interrupt.NewController(bus)
	k.Interrupts.Init()
	k.Signals = signal.NewFacade(k.Interrupts)

	k.PIT = interrupt.NewPIT(k.Interrupts)
	k.PIT.Program(defaultPITReload)
	k.Interrupts.Unmask(0)

	k.Scheduler = thread.NewScheduler(bus, k.Allocator)
	k.Scheduler.Init()

	klog.Info("kernel: boot complete, mem=%d irq_lines=%d", cfg.MemSize, cfg.IRQLines)
	return k
}

// defaultPITReload is an arbitrary small reload value; novakernel has no
// wall-clock requirement (spec.md's non-goals exclude real-time
// guarantees), it only needs the timer to fire periodically enough for
// the idle-fallback scenario (spec.md §8 scenario 4) to exercise IRQ0
// within a test's patience.
const defaultPITReload = 100

// Idle runs the idle thread's body forever; cmd/kernel's boot stub calls
// this and never returns, matching spec.md §6's "blocks forever in the
// idle loop" boot contract.
func (k *Kernel) Idle() {
	for {
		k.Scheduler.Yield()
		k.Bus.Halt()
	}
}
