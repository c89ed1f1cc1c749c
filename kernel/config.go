package kernel

// Config holds the boot-time parameters spec.md §7 calls out: how much
// backing memory the stack allocator gets, how many simulated IRQ lines
// the sim PIT exposes, and the debug-log level. cmd/kernelsim parses
// these from pflag-style command-line flags; cmd/kernel (the baremetal
// build) has no shell to take flags from and always boots with
// DefaultConfig.
type Config struct {
	// MemSize is the number of bytes reserved for Allocator.
	MemSize uintptr
	// IRQLines is the number of simulated IRQ lines, 16 by default like
	// the real 8259 pair. Boot only reports it in its log line; the
	// interrupt controller always has 16 lines whatever its value.
	IRQLines int
	// LogLevel is a zerolog level name ("debug", "info", "warn", "error").
	LogLevel string
}

// DefaultConfig returns the configuration cmd/kernel boots with and the
// configuration cmd/kernelsim starts from before applying flag overrides.
func DefaultConfig() Config {
	return Config{
		MemSize:  4 << 20,
		IRQLines: 16,
		LogLevel: "info",
	}
}
