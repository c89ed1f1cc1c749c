package interrupt

import (
	"novakernel/kernel/klog"
)

// ExceptionInfo carries what the CPU pushed (or the stub captured) when a
// fatal exception fired.
type ExceptionInfo struct {
	Vector       int
	ErrorCode    uint32 // only meaningful for vectors 13 (GP fault) and 14 (page fault)
	HasErrorCode bool
	FaultAddr    uintptr // CR2 equivalent, for vector 14
}

// ExceptionHandler is invoked for a fatal CPU exception (vectors 0-16). It
// never returns control to the faulting context; spec.md §4.B requires
// diagnosis followed by a halt.
type ExceptionHandler func(info ExceptionInfo, frames FrameWalker)

// maxStackFrames bounds the stack walk spec.md §4.B and §7 require.
const maxStackFrames = 50

// FrameWalker reads the chain of saved frame pointers starting at fp,
// stopping at the first pointer outside [low, high) or after
// maxStackFrames frames, whichever comes first. On amd64, a frame is
// [savedFP][returnAddr] with fp pointing at the saved FP slot.
type FrameWalker struct {
	Read     func(addr uintptr) (value uintptr, ok bool)
	Low      uintptr
	High     uintptr
	InitialFP uintptr
}

// Walk returns up to maxStackFrames return addresses, innermost first.
func (w FrameWalker) Walk() []uintptr {
	var frames []uintptr
	fp := w.InitialFP
	for i := 0; i < maxStackFrames; i++ {
		if fp < w.Low || fp >= w.High {
			break
		}
		retAddr, ok := w.Read(fp + 8)
		if !ok {
			break
		}
		frames = append(frames, retAddr)
		nextFP, ok := w.Read(fp)
		if !ok || nextFP == fp {
			break
		}
		fp = nextFP
	}
	return frames
}

// HandleFatal is the default fatal-exception handler installed for
// vectors 0-16 that have no more specific user override: it logs the
// exception and the stack walk, then halts via klog.Fatal.
func HandleFatal(info ExceptionInfo, frames FrameWalker) {
	walked := frames.Walk()
	klog.Errorf("fatal exception vector=%d errorCode=%#x frames=%d", info.Vector, info.ErrorCode, len(walked))
	for i, addr := range walked {
		klog.Errorf("  #%d %#x", i, addr)
	}
	klog.Fatal("halting after fatal exception vector=%d", info.Vector)
}

// vectorHasErrorCode reports whether the CPU pushes a hardware error code
// for this exception vector (only GP fault and page fault do, among 0-16).
func vectorHasErrorCode(vector int) bool {
	return vector == 13 || vector == 14
}
