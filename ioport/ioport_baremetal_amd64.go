//go:build baremetal && amd64

package ioport

// hwBus is the real backend: every method is a direct IN/OUT/CLI/STI/HLT,
// implemented in ioport_baremetal_amd64.s. There is exactly one of these
// per running kernel; it carries no state of its own beyond what the CPU
// already holds (IF flag, port values), so it is a zero-size struct.
type hwBus struct{}

func init() {
	Default = hwBus{}
}

//go:noescape
func asmInb(port uint16) uint8

//go:noescape
func asmOutb(port uint16, val uint8)

//go:noescape
func asmInw(port uint16) uint16

//go:noescape
func asmOutw(port uint16, val uint16)

//go:noescape
func asmIndw(port uint16) uint32

//go:noescape
func asmOutdw(port uint16, val uint32)

//go:noescape
func asmRdtsc() uint64

//go:noescape
func asmReadFlagsAndCli() uint64

//go:noescape
func asmSti()

//go:noescape
func asmHlt()

func (hwBus) Inb(port uint16) uint8         { return asmInb(port) }
func (hwBus) Outb(port uint16, val uint8)   { asmOutb(port, val) }
func (hwBus) Inw(port uint16) uint16        { return asmInw(port) }
func (hwBus) Outw(port uint16, val uint16)  { asmOutw(port, val) }
func (hwBus) Indw(port uint16) uint32       { return asmIndw(port) }
func (hwBus) Outdw(port uint16, val uint32) { asmOutdw(port, val) }
func (hwBus) Rdtsc() uint64                 { return asmRdtsc() }
func (hwBus) Halt()                         { asmHlt() }

func (hwBus) Ins(port uint16, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = asmInw(port)
	}
	return out
}

func (hwBus) Outs(port uint16, data []uint16) {
	for _, v := range data {
		asmOutw(port, v)
	}
}

// the x86 IF flag lives at bit 9 of EFLAGS/RFLAGS.
const eflagsIF = 1 << 9

// DisableInterrupts reads RFLAGS (via a combined read+cli primitive so the
// read and the mask happen as one atomic step from the caller's point of
// view) and returns whether IF was set beforehand.
func (hwBus) DisableInterrupts() IFToken {
	flags := asmReadFlagsAndCli()
	return IFToken{wasEnabled: flags&eflagsIF != 0}
}

func (hwBus) RestoreInterrupts(tok IFToken) {
	if tok.wasEnabled {
		asmSti()
	}
}

func (hwBus) EnableInterrupts() { asmSti() }
