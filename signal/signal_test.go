package signal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"novakernel/interrupt"
)

func TestSigaddsetSigdelsetIsmember(t *testing.T) {
	set := Sigemptyset()
	require.False(t, Ismember(set, 3))

	set = Sigaddset(set, 3)
	require.True(t, Ismember(set, 3))

	set = Sigdelset(set, 3)
	require.False(t, Ismember(set, 3))
}

func newTestFacade() (*Facade, *interrupt.Controller) {
	bus := newTestBus()
	ctrl := interrupt.NewController(bus)
	ctrl.Init()
	return NewFacade(ctrl), ctrl
}

func TestSigprocmaskBlockUnblockSetMaskRoundTrip(t *testing.T) {
	f, _ := newTestFacade()

	set := Sigaddset(Sigemptyset(), 5)
	before := f.Sigprocmask(Block, set)
	after := f.Sigprocmask(SetMask, before)

	// IRQ 5 is already masked after Init, so Block changes nothing but the
	// cascade bit: Init's literal 0xFB leaves bit 2 clear, and the first
	// mask update sets it because every IRQ 8..15 is masked.
	require.Equal(t, Sigaddset(before, 2), after)
}

func TestSigprocmaskUnblockHighIRQSetsCascade(t *testing.T) {
	f, ctrl := newTestFacade()

	f.Sigprocmask(Unblock, Sigaddset(Sigemptyset(), 12))
	require.False(t, ctrl.Snapshot().IsMasked(2))
	require.False(t, ctrl.Snapshot().IsMasked(12))
}

func TestSigactionDefaultIgnoreUserRoundTrip(t *testing.T) {
	f, _ := newTestFacade()

	old := f.Sigaction(4, Action{Disposition: Ignore})
	require.Equal(t, Default, old.Disposition)

	old = f.Sigaction(4, Action{Disposition: Handled, Handler: func(int) {}})
	require.Equal(t, Ignore, old.Disposition)
}

func TestSigactionUnblocksInstalledSignal(t *testing.T) {
	f, ctrl := newTestFacade()
	ctrl.Mask(7)
	require.True(t, ctrl.Snapshot().IsMasked(7))

	f.Sigaction(7, Action{Disposition: Default})
	require.False(t, ctrl.Snapshot().IsMasked(7))
}

func TestActionFromRawSentinels(t *testing.T) {
	require.Equal(t, Action{Disposition: Default}, ActionFromRaw(SigDfl, nil))
	require.Equal(t, Action{Disposition: Ignore}, ActionFromRaw(SigIgn, nil))

	called := false
	fn := func(int) { called = true }
	act := ActionFromRaw(RawHandler(0x1000), fn)
	require.Equal(t, Handled, act.Disposition)
	act.Handler(1)
	require.True(t, called)
}
