// Package bootcheck simulates the power-on checks of a computer.
//
// A BootSequencer is built from six devices (power source, sensors, display adapter, memory, removable media drive
// and storage drive) and runs a fixed series of checks against them, narrating each one as a status line:
//
// 	seq, err := bootcheck.New(devices, os.Stdout)
// 	if err != nil {
// 		// A device is missing.
// 	}
// 	outcome := seq.RunBootSequence()
// 	if outcome.Aborted() {
// 		// outcome.Reason names the failed check. The power source has been switched off.
// 	}
//
// The checks run strictly one after another and the sequence stops at the first one that fails. Package hardware
// provides stub devices whose readings come from a profile.
package bootcheck
