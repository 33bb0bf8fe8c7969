package sequence

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

// recorder collects the names of executed steps in execution order.
type recorder struct {
	sync.Mutex
	names []string
}

func (r *recorder) step(name string) Func {
	return func() error {
		r.Lock()
		r.names = append(r.names, name)
		r.Unlock()
		return nil
	}
}

func (r *recorder) executed() []string {
	r.Lock()
	defer r.Unlock()

	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

var errStep = errors.New("step has failed")

// ErrOp (error operation) is a convenience function you can use in place of a
// step function for when you want a function that returns an error.
func ErrOp() error {
	return errStep
}

// PanicOp (panic operation) is a convenience function you can use in place of a
// step function for when you want a function that panics.
func PanicOp() error {
	panic(errStep.Error())
}

// SleepOp (sleep operation) is a convenience function you can use in place of a
// step function for when you want a function that sleeps for a short while.
func SleepOp() error {
	time.Sleep(50 * time.Millisecond)
	return nil
}

func verifyNilErr(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func progressChannelAsStrings(pChan <-chan Progress) []string {
	names := make([]string, 0)
	for p := range pChan {
		msg := p.Step
		if p.Err != nil {
			msg = p.Err.Error()
		}
		names = append(names, msg)
	}
	return names
}

func verifyErrorType(t *testing.T, actual, expected error) {
	t.Helper()

	if actual == nil {
		t.Fatalf("expected error of type %T(%s), got nil", expected, expected.Error())
	}
	if actual != expected {
		t.Fatalf("expected error of type %T(%s), got %T(%s)", expected, expected.Error(), actual, actual.Error())
	}
}

func verifyStringEquals(t *testing.T, expected, actual string) {
	t.Helper()

	if expected != actual {
		t.Fatalf("expected %q to equal %q", actual, expected)
	}
}

func verifyStringsInOrder(t *testing.T, expected, actual []string) {
	t.Helper()

	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %q, got %q", expected, actual)
	}
}

func verifyCountEq(t *testing.T, c uint32, expected uint32) {
	t.Helper()

	if c != expected {
		t.Fatalf("expected count to equal %d, got %d", expected, c)
	}
}

func verifyPanicWithMsg(t *testing.T, expected string) {
	t.Helper()

	err := recover()
	if err == nil {
		t.Fatal("expected a panic")
	}
	actual, ok := err.(string)
	if !ok {
		t.Fatalf("expected to panic with string, got %v", reflect.TypeOf(err).String())
	}
	if actual != expected {
		t.Fatalf("expected panic message to equal %q, got %q", expected, actual)
	}
}

func verifyIdenticalSets(t *testing.T, aa, bb []string) {
	t.Helper()

	if len(aa) != len(bb) {
		t.Fatalf("sets have different lengths, len(aa) == %d and len(bb) == %d", len(aa), len(bb))
	}

	var found bool
	for _, a := range aa {
		found = false
		for _, b := range bb {
			if b == a {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("second set does not contain value %q", a)
		}
	}
}
