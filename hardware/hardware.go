// Package hardware provides simulated devices for a boot sequence. Their readings come from a config.Profile and
// every operation is logged at debug level.
package hardware

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mkock/bootcheck"
	"github.com/mkock/bootcheck/internal/config"
)

// New returns one simulated device of each kind, driven by the given profile. A nil logger discards all output.
func New(profile config.Profile, log logrus.FieldLogger) bootcheck.Devices {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	return bootcheck.Devices{
		Power:   NewPowerSupply(log),
		Sensors: NewSensors(profile.VoltageOK, profile.Temperatures, log),
		Display: NewVideoCard(profile.MonitorConnected, profile.VideoMemoryMB, log),
		Memory:  NewRAM(profile.MemoryMB, log),
		Media:   NewOpticalDrive(profile.DiskPresent, log),
		Storage: NewHardDrive(profile.DriveModel, profile.BootSectorValid, log),
	}
}

func device(log logrus.FieldLogger, name string) logrus.FieldLogger {
	return log.WithField("device", name)
}

// PowerSupply is a power supply unit that remembers whether it is switched on.
type PowerSupply struct {
	log logrus.FieldLogger
	on  bool
}

// NewPowerSupply returns a PowerSupply that is switched off.
func NewPowerSupply(log logrus.FieldLogger) *PowerSupply {
	return &PowerSupply{log: device(log, "power-supply")}
}

// PowerOn switches the power supply on.
func (p *PowerSupply) PowerOn() {
	p.on = true
	p.log.Debug("powered on")
}

// PowerOff switches the power supply off.
func (p *PowerSupply) PowerOff() {
	p.on = false
	p.log.Debug("powered off")
}

// IsOn reports whether the power supply is switched on.
func (p *PowerSupply) IsOn() bool {
	return p.on
}

// Sensors replays a fixed list of temperature readings. Once the list runs out, the last reading repeats.
type Sensors struct {
	log       logrus.FieldLogger
	voltageOK bool
	readings  []int
	next      int
}

// NewSensors returns Sensors reporting the given voltage state and temperature readings. Without readings, every
// temperature check returns 0.
func NewSensors(voltageOK bool, readings []int, log logrus.FieldLogger) *Sensors {
	r := make([]int, len(readings))
	copy(r, readings)
	if len(r) == 0 {
		r = []int{0}
	}
	return &Sensors{log: device(log, "sensors"), voltageOK: voltageOK, readings: r}
}

// CheckVoltage reports whether the voltage is within range.
func (s *Sensors) CheckVoltage() bool {
	s.log.WithField("ok", s.voltageOK).Debug("voltage checked")
	return s.voltageOK
}

// CheckTemperature returns the next temperature reading in degrees Celsius.
func (s *Sensors) CheckTemperature() int {
	i := s.next
	if i < len(s.readings)-1 {
		s.next++
	}
	s.log.WithField("celsius", s.readings[i]).Debug("temperature checked")
	return s.readings[i]
}

// VideoCard is a display adapter with a fixed monitor connection state.
type VideoCard struct {
	log       logrus.FieldLogger
	connected bool
	memoryMB  int
	on        bool
}

// NewVideoCard returns a VideoCard that is switched off.
func NewVideoCard(connected bool, memoryMB int, log logrus.FieldLogger) *VideoCard {
	return &VideoCard{log: device(log, "video-card"), connected: connected, memoryMB: memoryMB}
}

// PowerOn switches the video card on.
func (v *VideoCard) PowerOn() {
	v.on = true
	v.log.Debug("powered on")
}

// IsOn reports whether the video card is switched on.
func (v *VideoCard) IsOn() bool {
	return v.on
}

// CheckMonitorConnection reports whether a monitor is attached.
func (v *VideoCard) CheckMonitorConnection() bool {
	v.log.WithField("connected", v.connected).Debug("monitor connection checked")
	return v.connected
}

// DisplayMemoryInfo logs the amount of video memory.
func (v *VideoCard) DisplayMemoryInfo() {
	v.log.WithField("memory_mb", v.memoryMB).Info("video memory")
}

// RAM is a memory module.
type RAM struct {
	log      logrus.FieldLogger
	sizeMB   int
	on       bool
	tested   bool
	analyzed bool
	cleared  bool
}

// NewRAM returns a RAM module of the given size that is switched off.
func NewRAM(sizeMB int, log logrus.FieldLogger) *RAM {
	return &RAM{log: device(log, "ram"), sizeMB: sizeMB}
}

// PowerOn switches the module on.
func (r *RAM) PowerOn() {
	r.on = true
	r.log.Debug("powered on")
}

// RunSelfTest runs the module's self test. The simulated test always passes.
func (r *RAM) RunSelfTest() {
	r.tested = true
	r.log.Debug("self test passed")
}

// AnalyzeMemory logs the size of the module.
func (r *RAM) AnalyzeMemory() {
	r.analyzed = true
	r.log.WithField("size_mb", r.sizeMB).Info("memory analyzed")
}

// ClearMemory wipes the module.
func (r *RAM) ClearMemory() {
	r.cleared = true
	r.log.Debug("memory cleared")
}

// IsOn reports whether the module is switched on.
func (r *RAM) IsOn() bool {
	return r.on
}

// SelfTested reports whether RunSelfTest has been called.
func (r *RAM) SelfTested() bool {
	return r.tested
}

// Analyzed reports whether AnalyzeMemory has been called.
func (r *RAM) Analyzed() bool {
	return r.analyzed
}

// Cleared reports whether ClearMemory has been called.
func (r *RAM) Cleared() bool {
	return r.cleared
}

// OpticalDrive is a removable media drive.
type OpticalDrive struct {
	log         logrus.FieldLogger
	diskPresent bool
	on          bool
	position    int
}

// NewOpticalDrive returns an OpticalDrive that is switched off.
func NewOpticalDrive(diskPresent bool, log logrus.FieldLogger) *OpticalDrive {
	return &OpticalDrive{log: device(log, "optical-drive"), diskPresent: diskPresent}
}

// PowerOn switches the drive on. Spinning up moves the head off its start position.
func (o *OpticalDrive) PowerOn() {
	o.on = true
	o.position = 1
	o.log.Debug("powered on")
}

// CheckDiskPresence reports whether a disk is inserted.
func (o *OpticalDrive) CheckDiskPresence() bool {
	o.log.WithField("present", o.diskPresent).Debug("disk presence checked")
	return o.diskPresent
}

// ReturnToStartPosition moves the head back to the start of the disk.
func (o *OpticalDrive) ReturnToStartPosition() {
	o.position = 0
	o.log.Debug("returned to start position")
}

// AtStart reports whether the head is at its start position.
func (o *OpticalDrive) AtStart() bool {
	return o.position == 0
}

// HardDrive is a storage drive.
type HardDrive struct {
	log             logrus.FieldLogger
	model           string
	bootSectorValid bool
	on              bool
	tested          bool
}

// NewHardDrive returns a HardDrive that is switched off.
func NewHardDrive(model string, bootSectorValid bool, log logrus.FieldLogger) *HardDrive {
	return &HardDrive{log: device(log, "hard-drive"), model: model, bootSectorValid: bootSectorValid}
}

// PowerOn switches the drive on.
func (h *HardDrive) PowerOn() {
	h.on = true
	h.log.Debug("powered on")
}

// RunSelfTest runs the drive's self test. The simulated test always passes.
func (h *HardDrive) RunSelfTest() {
	h.tested = true
	h.log.Debug("self test passed")
}

// CheckBootSector reports whether the boot sector is valid.
func (h *HardDrive) CheckBootSector() bool {
	h.log.WithField("valid", h.bootSectorValid).Debug("boot sector checked")
	return h.bootSectorValid
}

// DisplayDriveInfo logs the drive model.
func (h *HardDrive) DisplayDriveInfo() {
	h.log.WithField("model", h.model).Info("drive info")
}

// IsOn reports whether the drive is switched on.
func (h *HardDrive) IsOn() bool {
	return h.on
}

// SelfTested reports whether RunSelfTest has been called.
func (h *HardDrive) SelfTested() bool {
	return h.tested
}

var (
	_ bootcheck.PowerSource         = (*PowerSupply)(nil)
	_ bootcheck.EnvironmentSensors  = (*Sensors)(nil)
	_ bootcheck.DisplayAdapter      = (*VideoCard)(nil)
	_ bootcheck.MemoryModule        = (*RAM)(nil)
	_ bootcheck.RemovableMediaDrive = (*OpticalDrive)(nil)
	_ bootcheck.StorageDrive        = (*HardDrive)(nil)
)
