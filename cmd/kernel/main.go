//go:build baremetal

// Command kernel is novakernel's baremetal boot entry, linked against the
// ioport and thread packages' baremetal && amd64 backends. It takes no
// flags: there is no shell to pass them from, so it always boots with
// kernel.DefaultConfig.
package main

import (
	"novakernel/ioport"
	"novakernel/kernel"
)

func main() {
	k := kernel.Boot(kernel.DefaultConfig(), ioport.Default)
	k.Idle()
}
