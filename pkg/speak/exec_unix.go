//go:build !windows && !plan9
// +build !windows,!plan9

package astispeak

import (
	"os/exec"
	"syscall"
)

// interruptedBySignal checks whether the child process was terminated by one of the
// signals a terminal sends to the whole process group. Crashes are not interruptions.
func interruptedBySignal(err error) bool {
	ee, ok := err.(*exec.ExitError)
	if !ok {
		return false
	}
	ws, ok := ee.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return false
	}
	switch ws.Signal() {
	case syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM:
		return true
	default:
		return false
	}
}
