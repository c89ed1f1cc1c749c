package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGateDescriptorInterruptVsTrap(t *testing.T) {
	intGate := NewGateDescriptor(0x1234, GateInterrupt)
	require.EqualValues(t, typeAttrInterruptGate, intGate.TypeAttr)

	trapGate := NewGateDescriptor(0x1234, GateTrap)
	require.EqualValues(t, typeAttrTrapGate, trapGate.TypeAttr)
}

func TestNewGateDescriptorSplitsOffset(t *testing.T) {
	g := NewGateDescriptor(0xAABBCCDD, GateInterrupt)
	require.EqualValues(t, 0xCCDD, g.OffsetLow)
	require.EqualValues(t, 0xAABB, g.OffsetHigh)
	require.EqualValues(t, codeSegmentSelector, g.Selector)
	require.Zero(t, g.Zero)
}

func TestGateDescriptorWireRoundTrip(t *testing.T) {
	want := NewGateDescriptor(0xDEADBEEF, GateTrap)
	word, err := want.Wire()
	require.NoError(t, err)

	got, err := UnwireGateDescriptor(word)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestControllerInitBuildsFullIDTImage(t *testing.T) {
	bus := newTestBus()
	c := NewController(bus)
	c.Init()

	for v := 0; v <= 16; v++ {
		g := c.Gate(v)
		require.EqualValues(t, typeAttrTrapGate, g.TypeAttr, "vector %d should be a trap gate", v)
	}
	for v := 17; v < 32; v++ {
		g := c.Gate(v)
		require.EqualValues(t, typeAttrInterruptGate, g.TypeAttr, "vector %d should be the default interrupt gate", v)
	}
	for irq := 0; irq < numIRQ; irq++ {
		g := c.Gate(irqVector(irq))
		require.EqualValues(t, typeAttrInterruptGate, g.TypeAttr, "IRQ %d vector should be an interrupt gate", irq)
	}
	for v := 48; v < idtSize; v++ {
		g := c.Gate(v)
		require.EqualValues(t, typeAttrInterruptGate, g.TypeAttr, "vector %d should be the default interrupt gate", v)
	}
}
