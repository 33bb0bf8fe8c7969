package bootcheck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// journal records device calls across all fakes, in call order.
type journal struct {
	calls []string
}

func (j *journal) record(call string) {
	j.calls = append(j.calls, call)
}

func (j *journal) count(call string) int {
	n := 0
	for _, c := range j.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (j *journal) withPrefix(prefix string) []string {
	var calls []string
	for _, c := range j.calls {
		if strings.HasPrefix(c, prefix) {
			calls = append(calls, c)
		}
	}
	return calls
}

type fakePower struct{ j *journal }

func (f fakePower) PowerOn()  { f.j.record("power.on") }
func (f fakePower) PowerOff() { f.j.record("power.off") }

// fakeSensors returns temperatures in order and repeats the last one once they run out.
type fakeSensors struct {
	j            *journal
	voltageOK    bool
	temperatures []int
	reads        int
}

func (f *fakeSensors) CheckVoltage() bool {
	f.j.record("sensors.voltage")
	return f.voltageOK
}

func (f *fakeSensors) CheckTemperature() int {
	f.j.record("sensors.temperature")
	i := f.reads
	if i >= len(f.temperatures) {
		i = len(f.temperatures) - 1
	}
	f.reads++
	return f.temperatures[i]
}

type fakeDisplay struct {
	j         *journal
	connected bool
}

func (f fakeDisplay) PowerOn() { f.j.record("display.on") }
func (f fakeDisplay) CheckMonitorConnection() bool {
	f.j.record("display.monitor")
	return f.connected
}
func (f fakeDisplay) DisplayMemoryInfo() { f.j.record("display.meminfo") }

type fakeMemory struct{ j *journal }

func (f fakeMemory) PowerOn()       { f.j.record("memory.on") }
func (f fakeMemory) RunSelfTest()   { f.j.record("memory.selftest") }
func (f fakeMemory) AnalyzeMemory() { f.j.record("memory.analyze") }
func (f fakeMemory) ClearMemory()   { f.j.record("memory.clear") }

type fakeMedia struct{ j *journal }

func (f fakeMedia) PowerOn() { f.j.record("media.on") }
func (f fakeMedia) CheckDiskPresence() bool {
	f.j.record("media.disk")
	return false
}
func (f fakeMedia) ReturnToStartPosition() { f.j.record("media.reset") }

type fakeStorage struct{ j *journal }

func (f fakeStorage) PowerOn()     { f.j.record("storage.on") }
func (f fakeStorage) RunSelfTest() { f.j.record("storage.selftest") }
func (f fakeStorage) CheckBootSector() bool {
	f.j.record("storage.bootsector")
	return true
}
func (f fakeStorage) DisplayDriveInfo() { f.j.record("storage.info") }

// rig is a set of fake devices sharing one journal.
type rig struct {
	journal *journal
	sensors *fakeSensors
	devices Devices
}

func newRig(voltageOK bool, connected bool, temperatures ...int) *rig {
	j := &journal{}
	sensors := &fakeSensors{j: j, voltageOK: voltageOK, temperatures: temperatures}
	return &rig{
		journal: j,
		sensors: sensors,
		devices: Devices{
			Power:   fakePower{j},
			Sensors: sensors,
			Display: fakeDisplay{j: j, connected: connected},
			Memory:  fakeMemory{j},
			Media:   fakeMedia{j},
			Storage: fakeStorage{j},
		},
	}
}

// run builds a BootSequencer for the rig and runs it once, returning the outcome and the status lines.
func (r *rig) run(t *testing.T, opts ...Option) (Outcome, []string) {
	t.Helper()

	var out bytes.Buffer
	seq, err := New(r.devices, &out, opts...)
	require.NoError(t, err)

	outcome := seq.RunBootSequence()
	return outcome, statusLines(out.String())
}

func statusLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
