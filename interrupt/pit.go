package interrupt

// PIT ports. novakernel only drives counter 0 (the system timer wired to
// IRQ0); counters 1 and 2 (RAM refresh, PC speaker) have no real hardware
// behind the sim backend and are not modeled.
const (
	pitPortCounter0 uint16 = 0x40
	pitPortCommand  uint16 = 0x43

	pitCommandLoHi = 0x34 // select counter 0, LSB then MSB, mode 2, binary
)

// PIT is a minimal software model of the 8254 timer's counter 0, just
// enough to raise IRQ0 on a schedule: load a 16-bit reload value, and each
// Tick decrements the counter, reloading and dispatching IRQ0 through ctrl
// when it reaches zero. Real hardware free-runs off an external 1.193182
// MHz clock; novakernel instead advances the counter once per explicit
// Tick call, so callers (the idle loop, or a test) control the timebase.
//
// reload/count are guarded by disabling interrupts around each access
// (via ctrl's bus), the same discipline Controller's own shared state
// uses, not a sync.Mutex: the single-CPU cooperative model this package
// targets has no concurrent accessor a real lock would need to arbitrate.
type PIT struct {
	ctrl *Controller

	reload uint16
	count  uint16
}

// NewPIT constructs a PIT that raises IRQ0 through ctrl.
func NewPIT(ctrl *Controller) *PIT {
	return &PIT{ctrl: ctrl}
}

// Program writes the counter-0 reload value, as if the command port had
// selected LSB/MSB mode 2 and the two data bytes had followed. A reload of
// 0 is a full 16-bit period (0x10000 ticks), matching real 8254 semantics.
func (p *PIT) Program(reload uint16) {
	tok := p.ctrl.bus.DisableInterrupts()
	defer p.ctrl.bus.RestoreInterrupts(tok)
	p.reload = reload
	p.count = reload
}

// Tick advances the counter by one. When it reaches zero it reloads and
// dispatches IRQ0 through the controller, exactly as the hardware line
// from the 8254 into the master PIC's IRQ0 input would.
func (p *PIT) Tick() {
	tok := p.ctrl.bus.DisableInterrupts()
	p.count--
	fire := p.count == 0
	if fire {
		p.count = p.reload
	}
	p.ctrl.bus.RestoreInterrupts(tok)

	if fire {
		p.ctrl.Dispatch(0)
	}
}

// Counter reports the current countdown value, for test assertions.
func (p *PIT) Counter() uint16 {
	tok := p.ctrl.bus.DisableInterrupts()
	defer p.ctrl.bus.RestoreInterrupts(tok)
	return p.count
}
