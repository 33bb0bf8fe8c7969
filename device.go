package bootcheck

// PowerSource is a power supply unit that can be switched on and off.
type PowerSource interface {
	PowerOn()
	PowerOff()
}

// EnvironmentSensors reports the electrical and thermal readings of the machine.
// CheckTemperature returns degrees Celsius. It is not tied to any one device.
type EnvironmentSensors interface {
	CheckVoltage() bool
	CheckTemperature() int
}

// DisplayAdapter is a video card.
type DisplayAdapter interface {
	PowerOn()
	CheckMonitorConnection() bool
	DisplayMemoryInfo()
}

// MemoryModule is a bank of RAM.
type MemoryModule interface {
	PowerOn()
	RunSelfTest()
	AnalyzeMemory()
	ClearMemory()
}

// RemovableMediaDrive is an optical drive.
type RemovableMediaDrive interface {
	PowerOn()
	CheckDiskPresence() bool
	ReturnToStartPosition()
}

// StorageDrive is a hard drive.
type StorageDrive interface {
	PowerOn()
	RunSelfTest()
	CheckBootSector() bool
	DisplayDriveInfo()
}

// Devices bundles the collaborators a BootSequencer queries. All six are required.
type Devices struct {
	Power   PowerSource
	Sensors EnvironmentSensors
	Display DisplayAdapter
	Memory  MemoryModule
	Media   RemovableMediaDrive
	Storage StorageDrive
}

// validate returns a MissingDeviceError for the first device that is nil.
func (d Devices) validate() error {
	switch {
	case d.Power == nil:
		return MissingDeviceError("power source")
	case d.Sensors == nil:
		return MissingDeviceError("environment sensors")
	case d.Display == nil:
		return MissingDeviceError("display adapter")
	case d.Memory == nil:
		return MissingDeviceError("memory module")
	case d.Media == nil:
		return MissingDeviceError("removable media drive")
	case d.Storage == nil:
		return MissingDeviceError("storage drive")
	}
	return nil
}
