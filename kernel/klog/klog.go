// Package klog is the kernel core's single logging and fatal-error choke
// point. Every invariant violation in thread, ksync, and interrupt calls
// klog.Fatal or klog.Assert instead of returning an error (spec.md §7:
// kernel invariant violations have no recovery path). Ordinary diagnostic
// logging goes through klog.Info/klog.Errorf.
//
// The hosted build (default) logs through zerolog and turns Fatal into a
// panic so `go test` reports the failure. The baremetal build writes
// byte-at-a-time to the serial port and turns Fatal into the cli;hlt loop
// spec.md §7 requires, since there is nowhere else for control to go.
package klog

import "fmt"

// Assert calls Fatal with msg if cond is false. It is the single place
// every "this should never happen" check in the kernel core routes
// through, per spec.md's kernel-invariant-violation error category.
func Assert(cond bool, msg string, args ...any) {
	if !cond {
		Fatal(msg, args...)
	}
}

func format(msg string, args ...any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
