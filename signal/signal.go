// Package signal is a POSIX-shaped façade over interrupt's IDT/PIC
// manager: sigemptyset/sigaddset/sigdelset style bitmask manipulation,
// sigprocmask, and sigaction, mapped onto the IRQ mask and handler table
// interrupt.Controller already maintains (spec.md §4.E).
package signal

import "novakernel/interrupt"

// Sigset is a 32-bit bitmask over signal numbers 0-15 (the IRQ lines);
// bits 16-31 are reserved and always zero, kept only so the type has the
// same width a POSIX sigset_t boundary would.
type Sigset uint32

// Sigemptyset returns the empty set.
func Sigemptyset() Sigset { return 0 }

// Sigaddset returns set with signum added.
func Sigaddset(set Sigset, signum int) Sigset { return set | (1 << uint(signum)) }

// Sigdelset returns set with signum removed.
func Sigdelset(set Sigset, signum int) Sigset { return set &^ (1 << uint(signum)) }

// Ismember reports whether signum is in set.
func Ismember(set Sigset, signum int) bool { return set&(1<<uint(signum)) != 0 }

// How selects sigprocmask's operation.
type How int

const (
	Block How = iota
	Unblock
	SetMask
)

const numSignals = 16

// maskFromSet converts the Sigset the caller uses as a set to/from an
// interrupt.Mask: bit n set in a Sigset under sigprocmask means signal n
// is to be masked/blocked, the same polarity interrupt.Mask already uses
// (bit n set ⇒ IRQ n masked).
func maskFromSet(set Sigset) interrupt.Mask {
	return interrupt.Mask(set & ((1 << numSignals) - 1))
}

func setFromMask(m interrupt.Mask) Sigset { return Sigset(m) }

// Facade wraps one interrupt.Controller with the signal-surface operations.
// Exactly one exists per booted kernel, constructed alongside its
// Controller.
type Facade struct {
	ctrl *interrupt.Controller
}

// NewFacade wraps ctrl.
func NewFacade(ctrl *interrupt.Controller) *Facade {
	return &Facade{ctrl: ctrl}
}

// Sigprocmask updates the shadow IRQ mask per how and set, and returns the
// pre-change mask. Bit 2 (cascade) is normalized automatically by
// interrupt.Controller's Mask/Unmask: it is clear whenever any of bits
// 8..15 is clear, and set once all of them are set.
func (f *Facade) Sigprocmask(how How, set Sigset) (old Sigset) {
	before := f.ctrl.Snapshot()
	old = setFromMask(before)

	delta := maskFromSet(set)
	switch how {
	case Block:
		for signum := 0; signum < numSignals; signum++ {
			if delta.IsMasked(signum) {
				f.ctrl.Mask(signum)
			}
		}
	case Unblock:
		for signum := 0; signum < numSignals; signum++ {
			if delta.IsMasked(signum) {
				f.ctrl.Unmask(signum)
			}
		}
	case SetMask:
		for signum := 0; signum < numSignals; signum++ {
			if delta.IsMasked(signum) {
				f.ctrl.Mask(signum)
			} else {
				f.ctrl.Unmask(signum)
			}
		}
	}
	return old
}
