package interrupt

import "novakernel/ioport"

// newTestBus returns a fresh SimBus, so each test gets its own port state
// instead of sharing ioport.Default across the whole package's test run.
func newTestBus() *ioport.SimBus {
	return ioport.NewSimBus()
}
