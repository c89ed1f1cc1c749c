//go:build hostport && linux && amd64

package ioport

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// HostPortBus talks to real I/O ports through /dev/port on a Linux amd64
// host that has granted the process port-I/O permission (CAP_SYS_RAWIO, or
// a successful unix.Iopl(3) call). It exists so the PIC/serial code in
// interrupt can be exercised against genuine hardware ports without a
// cross-compiled baremetal image; it is opt-in via the "hostport" build
// tag and is never the default backend (see SimBus for that).
type HostPortBus struct {
	mu   sync.Mutex
	port *os.File
	tsc  uint64
}

// NewHostPortBus opens /dev/port and raises the process I/O privilege
// level so port reads and writes on amd64 Linux succeed.
func NewHostPortBus() (*HostPortBus, error) {
	if err := unix.Iopl(3); err != nil {
		return nil, fmt.Errorf("ioport: raising I/O privilege level: %w", err)
	}
	f, err := os.OpenFile("/dev/port", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("ioport: opening /dev/port: %w", err)
	}
	return &HostPortBus{port: f}, nil
}

func (b *HostPortBus) Close() error { return b.port.Close() }

func (b *HostPortBus) readAt(port uint16, buf []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.port.ReadAt(buf, int64(port)); err != nil {
		panic(fmt.Sprintf("ioport: read port 0x%x: %v", port, err))
	}
}

func (b *HostPortBus) writeAt(port uint16, buf []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.port.WriteAt(buf, int64(port)); err != nil {
		panic(fmt.Sprintf("ioport: write port 0x%x: %v", port, err))
	}
}

func (b *HostPortBus) Inb(port uint16) uint8 {
	var buf [1]byte
	b.readAt(port, buf[:])
	return buf[0]
}

func (b *HostPortBus) Outb(port uint16, val uint8) {
	b.writeAt(port, []byte{val})
}

func (b *HostPortBus) Inw(port uint16) uint16 {
	var buf [2]byte
	b.readAt(port, buf[:])
	return uint16(buf[0]) | uint16(buf[1])<<8
}

func (b *HostPortBus) Outw(port uint16, val uint16) {
	b.writeAt(port, []byte{byte(val), byte(val >> 8)})
}

func (b *HostPortBus) Indw(port uint16) uint32 {
	var buf [4]byte
	b.readAt(port, buf[:])
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}

func (b *HostPortBus) Outdw(port uint16, val uint32) {
	b.writeAt(port, []byte{byte(val), byte(val >> 8), byte(val >> 16), byte(val >> 24)})
}

func (b *HostPortBus) Ins(port uint16, count int) []uint16 {
	out := make([]uint16, count)
	for i := range out {
		out[i] = b.Inw(port)
	}
	return out
}

func (b *HostPortBus) Outs(port uint16, data []uint16) {
	for _, v := range data {
		b.Outw(port, v)
	}
}

// Rdtsc has no portable /dev/port equivalent; HostPortBus fakes a
// monotonically increasing counter instead, which is sufficient for the
// debug-timestamp use the kernel core makes of it.
func (b *HostPortBus) Rdtsc() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tsc++
	return b.tsc
}

// DisableInterrupts/RestoreInterrupts have no host-process analog (a user
// process cannot mask CPU interrupts). HostPortBus keeps no IF state:
// DisableInterrupts always returns a token saying interrupts were enabled,
// and RestoreInterrupts, EnableInterrupts and Halt do nothing.
func (b *HostPortBus) DisableInterrupts() IFToken { return IFToken{wasEnabled: true} }
func (b *HostPortBus) RestoreInterrupts(IFToken)  {}
func (b *HostPortBus) EnableInterrupts()          {}
func (b *HostPortBus) Halt()                      {}
