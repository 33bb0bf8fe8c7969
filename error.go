package bootcheck

import "fmt"

// CheckFailure indicates that a boot check returned a negative result. Its value is the Reason of the abort.
type CheckFailure Reason

// Error returns the error message for a CheckFailure.
func (c CheckFailure) Error() string {
	return fmt.Sprintf("boot check failed: %s", string(c))
}

// Reason returns the abort reason carried by the CheckFailure.
func (c CheckFailure) Reason() Reason {
	return Reason(c)
}

// MissingDeviceError indicates that a BootSequencer was constructed without one of its devices.
type MissingDeviceError string

// Error returns the error message for a MissingDeviceError.
func (m MissingDeviceError) Error() string {
	return fmt.Sprintf("missing device: %s", string(m))
}

// Check that errors satisfy the error interface.
var _ error = CheckFailure("")
var _ error = MissingDeviceError("")
