package ioport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimBusReadBackWhatWasWritten(t *testing.T) {
	b := NewSimBus()
	b.Outb(0x60, 0x42)
	require.EqualValues(t, 0x42, b.Inb(0x60))

	b.Outw(0x64, 0xBEEF)
	require.EqualValues(t, 0xBEEF, b.Inw(0x64))

	b.Outdw(0x3000, 0xDEADBEEF)
	require.EqualValues(t, 0xDEADBEEF, b.Indw(0x3000))
}

func TestSimBusInterruptsRestoreIsNoOpOnIF(t *testing.T) {
	b := NewSimBus()
	require.True(t, b.InterruptsEnabled())

	tok := b.DisableInterrupts()
	require.False(t, b.InterruptsEnabled())
	b.RestoreInterrupts(tok)
	require.True(t, b.InterruptsEnabled())
}

func TestSimBusRestoreDoesNotEnableIfTokenSaysDisabled(t *testing.T) {
	b := NewSimBus()
	outer := b.DisableInterrupts() // wasEnabled=true
	inner := b.DisableInterrupts() // wasEnabled=false
	b.RestoreInterrupts(inner)
	require.False(t, b.InterruptsEnabled())
	b.RestoreInterrupts(outer)
	require.True(t, b.InterruptsEnabled())
}

func TestSimBusTrace(t *testing.T) {
	b := NewSimBus()
	b.StartTracing()
	b.Outb(0x21, 0xFB)
	b.Outb(0xA1, 0xFF)
	trace := b.Trace()
	require.Len(t, trace, 2)
	require.Equal(t, PortAccess{Port: 0x21, Write: true, Size: 1, Value: 0xFB}, trace[0])
	require.Equal(t, PortAccess{Port: 0xA1, Write: true, Size: 1, Value: 0xFF}, trace[1])
}

func TestSimBusOutsIns(t *testing.T) {
	b := NewSimBus()
	b.Outs(0x1F0, []uint16{1, 2, 3})
	require.Equal(t, []uint16{3, 3, 3}, b.Ins(0x1F0, 3))
}
