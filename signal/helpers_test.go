package signal

import "novakernel/ioport"

func newTestBus() *ioport.SimBus {
	return ioport.NewSimBus()
}
