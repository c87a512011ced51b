//go:build windows || plan9
// +build windows plan9

package astispeak

// Console interrupts don't terminate children with a signal here, only ctx matters
func interruptedBySignal(err error) bool { return false }
