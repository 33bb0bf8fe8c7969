package sequence

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// calleeDef keeps track of how the caller decided to wait for the sequence to finish. Possible values: calleeNone
// (undefined), calleeWait (Agent.Wait() was called) and calleeProg (Agent.Progress() was called).
type calleeDef uint8

const (
	calleeNone calleeDef = iota
	calleeWait
	calleeProg
)

// state represents an Agent's state. It's either:
// 1. waiting to be started (stateIdle),
// 2. executing its steps (stateRunning),
// 3. finished, successfully or not (stateDone).
type state uint8

const (
	stateIdle state = iota
	stateRunning
	stateDone
)

// maxSteps is the maximum number of steps a Manager accepts.
const maxSteps = 65535

// Func is the type used for any function that can be executed as a step in a sequence. Any function that you wish to
// register and execute as a step must satisfy this type.
type Func func() error

// Step is a single named unit of work in a sequence.
type Step struct {
	name     string
	priority uint16
	fn       Func
	after    string
}

// After sets the receiver Step to be executed after the one defined by the given name.
func (s *Step) After(name string) *Step {
	s.after = name
	return s
}

// Name returns the name the Step was registered with.
func (s Step) Name() string {
	return s.name
}

// Progress is the sequence feedback medium.
// Progress is communicated on the channel returned by Agent.Progress() and provides feedback on the current progress
// of the sequence. This includes the name of the Step that was last executed, along with an optional error if the
// step Func failed. Err will be nil on success. The final report of a successful run carries an empty Step name.
// Progress satisfies the error interface.
type Progress struct {
	Step string
	Err  error
}

// Error returns the error message for the receiver. Error returns an empty string if there is no error.
func (p Progress) Error() string {
	if p.Err == nil {
		return ""
	}
	return p.Err.Error()
}

// unorderedSteps represents a collection of Steps before they've been ordered.
type unorderedSteps map[string]*Step

// orderedSteps represents a collection of Steps after they've been ordered.
type orderedSteps map[uint16][]Step

// setPriority looks up the Step with the given name and attempts to set its priority.
// If the Step depends on another, setPriority recursively follows the chain of Steps in order to determine
// priorities for the entire chain. setPriority returns the priority that has been resolved for the given Step.
func (u unorderedSteps) setPriority(name string) uint16 {
	if name == "" {
		return 0
	}
	step, ok := u[name]
	if !ok {
		panic(fmt.Sprintf("missing Step: %q, was Manager.Validate called?", name))
	}
	if step.priority > 0 {
		return step.priority
	}
	if step.after == "" {
		step.priority = 1
		return 1
	}
	step.priority = u.setPriority(step.after) + 1
	return step.priority
}

// order groups each Step in unorderedSteps by priority:
// 1. Steps that don't come after another receive priority 1.
// 2. Steps that come immediately after another receive a priority that is one higher than the other.
// 3. If a Step refers to another which is unordered, the chain is resolved depth-first.
// Steps sharing a priority are sorted by name. order assumes that each referenced Step exists and that there are
// no cycles.
func (u unorderedSteps) order() orderedSteps {
	ordered := make(orderedSteps, len(u))

	for name := range u {
		u[name].priority = 0
	}
	for name := range u {
		priority := u.setPriority(name)
		ordered[priority] = append(ordered[priority], *u[name])
	}
	for _, steps := range ordered {
		sort.Slice(steps, func(i, j int) bool { return steps[i].name < steps[j].name })
	}

	return ordered
}

// length returns the total number of ordered Steps.
func (o orderedSteps) length() int {
	length := 0

	for _, steps := range o {
		length += len(steps)
	}

	return length
}

// Manager provides registration and storage of sequence Steps.
// Manager can instantiate an Agent, which is responsible for running the actual sequence.
type Manager struct {
	sync.Mutex // Protects fields steps and names.

	name  string
	steps unorderedSteps
	names []string // Registration order.
}

// New returns a new and empty sequence Manager.
func New(name string) *Manager {
	return &Manager{name: name, steps: make(unorderedSteps)}
}

// Name returns the name of the sequence.
func (m *Manager) Name() string {
	return m.name
}

// Register registers a single named Step with the given function. If a Step with the given name already exists,
// the provided function replaces the one already registered, and any ordering set with After is reset. Register
// returns a pointer to the Step, that you can call After() on, in order to influence order of execution.
func (m *Manager) Register(name string, fn Func) *Step {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.steps[name]; !ok {
		if len(m.steps) == maxSteps {
			panic(panicStepLimit)
		}
		m.names = append(m.names, name)
	}

	ref := &Step{name: name, fn: fn}
	m.steps[name] = ref
	return ref
}

// StepCount returns the number of steps currently registered with the Manager.
func (m *Manager) StepCount() uint16 {
	m.Lock()
	defer m.Unlock()

	return uint16(len(m.steps))
}

// StepNames returns the name of each registered step in registration order.
func (m *Manager) StepNames() []string {
	m.Lock()
	defer m.Unlock()

	ns := make([]string, len(m.names))
	copy(ns, m.names)
	return ns
}

// Validate cycles through each registered step and checks if it refers to a step name that doesn't exist, to
// itself, or to a chain of steps that leads back to it. Validate returns an error if this is the case, or nil
// otherwise.
func (m *Manager) Validate() error {
	m.Lock()
	defer m.Unlock()

	return m.validate()
}

func (m *Manager) validate() error {
	if len(m.steps) == 0 {
		return EmptySequenceError(m.name)
	}

	for _, name := range m.names {
		step := m.steps[name]
		if step.fn == nil {
			return NilFuncError(name)
		}
		if step.after == "" {
			continue
		}
		if step.after == name {
			return SelfReferenceError(name)
		}
		if _, ok := m.steps[step.after]; !ok {
			return UnregisteredStepError(step.after)
		}
	}

	// Follow each chain of After references. A chain longer than the number of steps must contain a cycle.
	for _, name := range m.names {
		hops := 0
		for curr := m.steps[name].after; curr != ""; curr = m.steps[curr].after {
			if curr == name || hops > len(m.steps) {
				return CyclicReferenceError(name)
			}
			hops++
		}
	}

	return nil
}

// Agent validates and orders the registered steps by priority and returns an Agent for running the sequence once.
// Agent returns an error if the registered steps do not form a valid sequence.
func (m *Manager) Agent() (*Agent, error) {
	m.Lock()
	defer m.Unlock()

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &Agent{name: m.name, steps: m.steps.order()}, nil
}

// Agent represents a single execution of a sequence of Steps.
// Each Agent keeps track of its progress and handles execution of the Steps. An Agent can only run once.
type Agent struct {
	sync.Mutex               // Controls access to state and callee.
	name       string        // Name of sequence.
	state      state         // Current state.
	steps      orderedSteps  // Steps grouped by priority.
	callee     calleeDef     // Did client call Wait/Progress?
	progress   chan Progress // Progress reporting.
}

// StepCount returns the number of steps the Agent will execute.
func (a *Agent) StepCount() uint16 {
	a.Lock()
	defer a.Unlock()

	return uint16(a.steps.length())
}

// String returns a string representation of the Steps ordered by priority.
// Step names are wrapped in parentheses, and separated by a colon when they run in the same priority group, and a
// right-arrow when one group runs before another.
func (a *Agent) String() string {
	a.Lock()
	defer a.Unlock()

	groups := make([]string, 0, len(a.steps))
	for i := uint16(1); i <= uint16(len(a.steps)); i++ {
		names := make([]string, len(a.steps[i]))
		for j, step := range a.steps[i] {
			names[j] = step.name
		}
		groups = append(groups, "("+strings.Join(names, " : ")+")")
	}

	return strings.Join(groups, " > ")
}

// Up runs the sequence.
// Up returns an error if the Agent has already been started. Use Wait or Progress to follow execution.
func (a *Agent) Up(ctx context.Context) error {
	a.Lock()
	defer a.Unlock()

	switch a.state {
	case stateRunning:
		return InvalidStateError(inProgressErrorMessage)
	case stateDone:
		return InvalidStateError(doneErrorMessage)
	}

	a.state = stateRunning
	a.progress = make(chan Progress, a.steps.length()+1)

	go a.exec(ctx)
	return nil
}

// Progress allows the caller to receive progress reports over a channel.
// Progress returns a channel that will receive a Progress struct every time a Step in the sequence has completed.
// In case of an error, execution will stop and no further progress reports will be sent. Consequently, there will
// either be a progress report for each Step in the sequence (plus one more to mark the end of execution), or if
// execution stops short, the last progress report sent will contain an error.
func (a *Agent) Progress() (<-chan Progress, error) {
	if err := a.setCallee(calleeProg); err != nil {
		return nil, err
	}
	return a.progress, nil
}

// Wait will block until execution of the sequence has completed.
// It returns the error of the first Step that failed, or nil.
func (a *Agent) Wait() error {
	if err := a.setCallee(calleeWait); err != nil {
		return err
	}

	for p := range a.progress {
		if p.Err != nil {
			return p.Err
		}
	}

	return nil
}

func (a *Agent) setCallee(c calleeDef) error {
	a.Lock()
	defer a.Unlock()

	if a.state == stateIdle {
		return InvalidStateError(idleErrorMessage)
	}
	if a.callee != calleeNone && a.callee != c {
		return CalleeError(calleeErrorMessage)
	}
	a.callee = c
	return nil
}

// report sends the provided progress on the progress channel. The channel is sized to hold every report of a run.
func (a *Agent) report(progress Progress) {
	a.progress <- progress
}

// exec runs through the sequence one priority group at a time, from priority 1..n. After each Step has completed,
// progress is reported on the progress channel. Cancellation is checked between priority groups.
func (a *Agent) exec(ctx context.Context) {
	defer func() {
		a.Lock()
		a.state = stateDone
		close(a.progress)
		a.Unlock()
	}()

	for priority := uint16(1); priority <= uint16(len(a.steps)); priority++ {
		if err := ctx.Err(); err != nil {
			a.report(Progress{Err: err})
			return
		}
		if err := a.execPriority(ctx, priority); err != nil {
			return
		}
	}

	a.report(Progress{})
}

// execPriority executes all Steps with the same priority in an errgroup and returns an error if any one of them
// failed. execPriority is uninterruptible.
func (a *Agent) execPriority(ctx context.Context, priority uint16) error {
	grp, _ := errgroup.WithContext(ctx)

	for _, step := range a.steps[priority] {
		step := step
		grp.Go(func() error {
			err := step.fn()
			a.report(Progress{Step: step.name, Err: err})
			return err
		})
	}

	return grp.Wait()
}

// NoOp (no operation) is a convenience function you can use in place of a step Func for when you want a function
// that does nothing.
func NoOp() error {
	return nil
}

// Verify that Progress satisfies the error interface.
var _ error = Progress{}
