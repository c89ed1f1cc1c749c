//go:build baremetal

package klog

import "novakernel/ioport"

var writer = NewSerialWriter(ioport.Default)

// SetOutput lets the boot stub rebind the serial sink once ioport.Default
// is final (there is no other writer to redirect to on real hardware, but
// this keeps the API shape identical to the hosted build).
func SetOutput(w *SerialWriter) { writer = w }

// SetLevel is a no-op in the baremetal build: there is no shell to pass a
// log-level flag from, so the serial sink always logs everything.
func SetLevel(level string) error { return nil }

func puts(s string) {
	_, _ = writer.Write([]byte(s))
}

// Info writes msg to the serial port, newline-terminated.
func Info(msg string, args ...any) {
	puts(format(msg, args...) + "\r\n")
}

// Errorf writes msg to the serial port, newline-terminated.
func Errorf(msg string, args ...any) {
	puts("error: " + format(msg, args...) + "\r\n")
}

// Fatal writes msg to the serial port and halts the CPU in a cli;hlt loop,
// per spec.md §7: kernel invariant violations and fatal CPU exceptions
// have no recovery path.
func Fatal(msg string, args ...any) {
	puts("fatal: " + format(msg, args...) + "\r\n")
	for {
		writer.Bus.DisableInterrupts()
		writer.Bus.Halt()
	}
}
