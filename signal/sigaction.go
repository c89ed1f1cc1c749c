package signal

import "novakernel/interrupt"

// Disposition is the type-safe replacement for SIG_DFL/SIG_IGN described
// in spec.md §9's "sentinel handler values" design note: rather than
// representing them as the integers 0 and 1 cast to a function pointer,
// novakernel uses a tagged variant so an invalid Handled action with a nil
// Handler cannot be constructed by mistake.
type Disposition int

const (
	// Default acknowledges the IRQ and does nothing else (SIG_DFL).
	Default Disposition = iota
	// Ignore returns without acknowledging the IRQ (SIG_IGN).
	Ignore
	// Handled runs the installed Handler.
	Handled
)

// Action describes a signal disposition, the same role POSIX's
// struct sigaction plays.
type Action struct {
	Disposition Disposition
	Handler     func(signum int)
}

func (a Action) toBinding() (interrupt.HandlerKind, interrupt.Handler) {
	switch a.Disposition {
	case Ignore:
		return interrupt.KindIgnore, nil
	case Handled:
		return interrupt.KindUser, interrupt.Handler(a.Handler)
	default:
		return interrupt.KindDefault, nil
	}
}

func actionFromBinding(kind interrupt.HandlerKind, fn interrupt.Handler) Action {
	switch kind {
	case interrupt.KindIgnore:
		return Action{Disposition: Ignore}
	case interrupt.KindUser:
		return Action{Disposition: Handled, Handler: fn}
	default:
		return Action{Disposition: Default}
	}
}

// Sigaction installs new as the disposition for signum (0 <= signum < 16)
// and returns the previously installed disposition. Per spec.md §4.E,
// installing always unblocks signum afterward.
func (f *Facade) Sigaction(signum int, new Action) (old Action) {
	kind, fn := new.toBinding()
	oldKind, oldFn := f.ctrl.Install(signum, kind, fn)
	old = actionFromBinding(oldKind, oldFn)
	f.ctrl.Unmask(signum)
	return old
}

// RawHandler is the boundary-compatible representation spec.md §9
// preserves alongside Disposition: SIG_DFL and SIG_IGN as the sentinel
// values 0 and 1, any other non-nil value an installable handler. It
// exists so code migrating from the raw-pointer convention has a direct
// conversion instead of having to construct an Action by hand.
type RawHandler uintptr

const (
	SigDfl RawHandler = 0
	SigIgn RawHandler = 1
)

// ActionFromRaw converts a raw handler value plus the function it denotes
// (when neither sentinel applies) into an Action.
func ActionFromRaw(raw RawHandler, fn func(signum int)) Action {
	switch raw {
	case SigDfl:
		return Action{Disposition: Default}
	case SigIgn:
		return Action{Disposition: Ignore}
	default:
		return Action{Disposition: Handled, Handler: fn}
	}
}
