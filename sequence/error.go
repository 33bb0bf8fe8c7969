package sequence

import "fmt"

const (
	// panicStepLimit triggers when client attempts to add step 65536 to the manager.
	panicStepLimit = "reached limit of max 65535 steps"

	// calleeErrorMessage triggers if client calls both Agent.Wait() and Agent.Progress().
	calleeErrorMessage = "invalid callee: you may call Agent.Wait() or Agent.Progress(), not both"

	// idleErrorMessage triggers when Agent.Wait() or Agent.Progress() is called before Agent.Up().
	idleErrorMessage = "need to start up first"

	// inProgressErrorMessage triggers when Agent.Up() is called on an Agent that is already running.
	inProgressErrorMessage = "already in progress"

	// doneErrorMessage triggers when Agent.Up() is called on an Agent that has already run.
	doneErrorMessage = "has already run"
)

// EmptySequenceError indicates an empty sequence.
type EmptySequenceError string

// Error returns the error message for a EmptySequenceError.
func (e EmptySequenceError) Error() string {
	return fmt.Sprintf("empty sequence: %q", string(e))
}

// SelfReferenceError indicates a step that references itself in an After method call.
type SelfReferenceError string

// Error returns the error message for a SelfReferenceError.
func (s SelfReferenceError) Error() string {
	return fmt.Sprintf("self-reference: %q", string(s))
}

// UnregisteredStepError indicates a step has not been registered with the sequence manager.
type UnregisteredStepError string

// Error returns the error message for a UnregisteredStepError.
func (u UnregisteredStepError) Error() string {
	return fmt.Sprintf("no such step: %q", string(u))
}

// InvalidStateError indicates that the Agent was unable to run the sequence, either because it is already running,
// has already completed, or has not been started.
type InvalidStateError string

// Error returns the error message for a InvalidStateError.
func (i InvalidStateError) Error() string {
	return fmt.Sprintf("cannot run sequence: %s", string(i))
}

// CyclicReferenceError indicates that a chain of After references leads back to where it started.
type CyclicReferenceError string

// Error returns the error message for a CyclicReferenceError.
func (c CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic reference: %s", string(c))
}

// CalleeError indicates that a "callee" was called after another one already has been called: Wait/Progress.
type CalleeError string

// Error returns the error message for a CalleeError.
func (c CalleeError) Error() string {
	return string(c)
}

// NilFuncError indicates that a Step has a nil Func.
type NilFuncError string

// Error returns the error message for a NilFuncError.
func (n NilFuncError) Error() string {
	return fmt.Sprintf("nil Func provided: %s", string(n))
}

// Check that errors satisfy the error interface.
var _ error = EmptySequenceError("")
var _ error = SelfReferenceError("")
var _ error = UnregisteredStepError("")
var _ error = InvalidStateError("")
var _ error = CyclicReferenceError("")
var _ error = CalleeError("")
var _ error = NilFuncError("")
