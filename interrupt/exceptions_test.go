package interrupt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameWalkerWalksChain(t *testing.T) {
	// A tiny synthetic stack: three frames, each [savedFP][retAddr].
	mem := map[uintptr]uintptr{
		0x100: 0x200, // frame at 0x100: savedFP -> 0x200
		0x108: 0xAAAA,
		0x200: 0x300,
		0x208: 0xBBBB,
		0x300: 0x300, // self-loop terminates the walk
		0x308: 0xCCCC,
	}
	w := FrameWalker{
		Read: func(addr uintptr) (uintptr, bool) {
			v, ok := mem[addr]
			return v, ok
		},
		Low:       0x100,
		High:      0x400,
		InitialFP: 0x100,
	}

	got := w.Walk()
	require.Equal(t, []uintptr{0xAAAA, 0xBBBB, 0xCCCC}, got)
}

func TestFrameWalkerStopsOutsideBounds(t *testing.T) {
	w := FrameWalker{
		Read:      func(addr uintptr) (uintptr, bool) { return 0, true },
		Low:       0x1000,
		High:      0x2000,
		InitialFP: 0x500,
	}
	require.Empty(t, w.Walk())
}

func TestFrameWalkerStopsOnUnreadableAddr(t *testing.T) {
	w := FrameWalker{
		Read:      func(addr uintptr) (uintptr, bool) { return 0, false },
		Low:       0,
		High:      0xFFFFFFFF,
		InitialFP: 0x10,
	}
	require.Empty(t, w.Walk())
}

func TestHandleFatalPanicsViaKlog(t *testing.T) {
	frames := FrameWalker{
		Read: func(addr uintptr) (uintptr, bool) { return 0, false },
	}
	require.Panics(t, func() {
		HandleFatal(ExceptionInfo{Vector: 8}, frames)
	})
}
