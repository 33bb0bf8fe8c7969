package bootcheck

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/mkock/bootcheck/sequence"
)

// Temperature limits in degrees Celsius. A reading above the limit aborts the boot.
const (
	PowerSupplyTemperatureLimit = 50
	VideoCardTemperatureLimit   = 90
)

// Names of the boot steps, in execution order.
const (
	StepStart             = "start"
	StepPowerOn           = "power-on"
	StepVoltage           = "voltage"
	StepPSUTemperature    = "psu-temperature"
	StepGPUTemperature    = "gpu-temperature"
	StepDisplayPowerOn    = "display-power-on"
	StepMonitorLink       = "monitor-link"
	StepMemoryTemperature = "memory-temperature"
)

// Temperature contexts reported to the Observer.
const (
	ContextPowerSupply = "power-supply"
	ContextVideoCard   = "video-card"
	ContextMemory      = "memory"
)

// DefaultName is the sequence name used in logs unless WithName is given.
const DefaultName = "computer"

// Observer receives measurements taken during a run. *metrics.Recorder implements it.
type Observer interface {
	ObserveRun(outcome string)
	ObserveStep(step string, err error)
	ObserveTemperature(context string, celsius int)
}

type nopObserver struct{}

func (nopObserver) ObserveRun(string)              {}
func (nopObserver) ObserveStep(string, error)      {}
func (nopObserver) ObserveTemperature(string, int) {}

// Option configures a BootSequencer at construction.
type Option func(*BootSequencer)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(b *BootSequencer) {
		b.log = log
	}
}

// WithObserver sets the Observer that receives run, step and temperature measurements.
func WithObserver(o Observer) Option {
	return func(b *BootSequencer) {
		b.observer = o
	}
}

// WithName sets the sequence name used in logs.
func WithName(name string) Option {
	return func(b *BootSequencer) {
		b.name = name
	}
}

// BootSequencer runs the boot checks against a fixed set of devices and narrates each one as a status line.
type BootSequencer struct {
	name     string
	devices  Devices
	out      io.Writer
	log      logrus.FieldLogger
	observer Observer
	steps    *sequence.Manager
}

// New returns a BootSequencer that queries the given devices and writes status lines to out.
// New returns a MissingDeviceError if any device is nil.
func New(devices Devices, out io.Writer, opts ...Option) (*BootSequencer, error) {
	if err := devices.validate(); err != nil {
		return nil, err
	}
	if out == nil {
		out = io.Discard
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &BootSequencer{
		name:     DefaultName,
		devices:  devices,
		out:      out,
		log:      discard,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(b)
	}

	b.steps = sequence.New(b.name)
	b.steps.Register(StepStart, b.start)
	b.steps.Register(StepPowerOn, b.powerOn).After(StepStart)
	b.steps.Register(StepVoltage, b.checkVoltage).After(StepPowerOn)
	b.steps.Register(StepPSUTemperature, b.checkPowerSupplyTemperature).After(StepVoltage)
	b.steps.Register(StepGPUTemperature, b.checkVideoCardTemperature).After(StepPSUTemperature)
	b.steps.Register(StepDisplayPowerOn, b.startVideoCard).After(StepGPUTemperature)
	b.steps.Register(StepMonitorLink, b.checkMonitorConnection).After(StepDisplayPowerOn)
	b.steps.Register(StepMemoryTemperature, b.checkMemoryTemperature).After(StepMonitorLink)
	if err := b.steps.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// Plan returns the order in which the boot steps run, e.g. "(start) > (power-on) > ...".
func (b *BootSequencer) Plan() string {
	agent, err := b.steps.Agent()
	if err != nil {
		return ""
	}
	return agent.String()
}

// RunBootSequence runs every boot check in order and stops at the first one that fails. A failed check is reported
// as a status line, after which the power source is switched off. The power source is never switched off when all
// checks pass.
func (b *BootSequencer) RunBootSequence() Outcome {
	outcome := Outcome{State: StateNotStarted, RunID: xid.New().String()}
	log := b.log.WithFields(logrus.Fields{"sequence": b.name, "run_id": outcome.RunID})

	// Steps were validated in New, so none of these calls can fail.
	agent, err := b.steps.Agent()
	if err != nil {
		panic(err)
	}
	if err = agent.Up(context.Background()); err != nil {
		panic(err)
	}
	outcome.State = StateRunning
	log.Debugf("boot sequence started: %s", agent)

	prog, err := agent.Progress()
	if err != nil {
		panic(err)
	}

	var failure error
	for p := range prog {
		if p.Step == "" {
			continue // End of sequence.
		}
		outcome.Steps = append(outcome.Steps, p.Step)
		b.observer.ObserveStep(p.Step, p.Err)
		if p.Err != nil {
			failure = p.Err
			log.WithField("step", p.Step).WithError(p.Err).Debug("boot step failed")
			continue
		}
		log.WithField("step", p.Step).Debug("boot step passed")
	}

	var check CheckFailure
	if errors.As(failure, &check) {
		b.devices.Power.PowerOff()
		outcome.State = StateAborted
		outcome.Reason = check.Reason()
		b.observer.ObserveRun(string(outcome.Reason))
		log.WithField("reason", outcome.Reason).Warn("boot sequence aborted")
		return outcome
	}

	outcome.State = StateCompleted
	b.observer.ObserveRun(StateCompleted.String())
	log.Info("boot sequence completed")
	return outcome
}

// say writes a single status line.
func (b *BootSequencer) say(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(b.out, format+"\n", args...); err != nil {
		b.log.WithError(err).Error("cannot write status line")
	}
}

// abort reports a failed check and returns the CheckFailure that stops the sequence.
func (b *BootSequencer) abort(reason Reason, what string) error {
	b.say("%s, shutting down computer", what)
	return CheckFailure(reason)
}

func (b *BootSequencer) start() error {
	b.say("Computer boot process started")
	return nil
}

func (b *BootSequencer) powerOn() error {
	b.devices.Power.PowerOn()
	return nil
}

func (b *BootSequencer) checkVoltage() error {
	if !b.devices.Sensors.CheckVoltage() {
		return b.abort(ReasonVoltage, "Voltage check failed")
	}
	return nil
}

func (b *BootSequencer) checkPowerSupplyTemperature() error {
	t := b.readTemperature(ContextPowerSupply, "Power supply")
	if t > PowerSupplyTemperatureLimit {
		return b.abort(ReasonPSUOverheat, "Power supply overheating")
	}
	return nil
}

func (b *BootSequencer) checkVideoCardTemperature() error {
	t := b.readTemperature(ContextVideoCard, "Video card")
	if t > VideoCardTemperatureLimit {
		return b.abort(ReasonGPUOverheat, "Video card overheating")
	}
	return nil
}

func (b *BootSequencer) startVideoCard() error {
	b.devices.Display.PowerOn()
	b.say("Video card started")
	return nil
}

func (b *BootSequencer) checkMonitorConnection() error {
	if !b.devices.Display.CheckMonitorConnection() {
		return b.abort(ReasonDisplayLink, "Video card - monitor connection failed")
	}
	return nil
}

func (b *BootSequencer) checkMemoryTemperature() error {
	b.readTemperature(ContextMemory, "RAM")
	return nil
}

// readTemperature takes a fresh sensor reading and narrates it. Every call queries the sensors again.
func (b *BootSequencer) readTemperature(where, label string) int {
	t := b.devices.Sensors.CheckTemperature()
	b.say("%s temperature: %d C", label, t)
	b.observer.ObserveTemperature(where, t)
	return t
}
