package hardware

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/mkock/bootcheck"
	"github.com/mkock/bootcheck/internal/config"
)

var _ = Describe("Sensors", func() {
	It("should replay readings in order", func() {
		s := NewSensors(true, []int{30, 40, 20}, logrus.New())

		Expect(s.CheckTemperature()).To(Equal(30))
		Expect(s.CheckTemperature()).To(Equal(40))
		Expect(s.CheckTemperature()).To(Equal(20))
	})

	It("should repeat the last reading", func() {
		s := NewSensors(true, []int{55, 65}, logrus.New())

		s.CheckTemperature()
		s.CheckTemperature()

		Expect(s.CheckTemperature()).To(Equal(65))
		Expect(s.CheckTemperature()).To(Equal(65))
	})

	It("should return zero without readings", func() {
		s := NewSensors(true, nil, logrus.New())

		Expect(s.CheckTemperature()).To(Equal(0))
	})

	It("should not share the readings slice", func() {
		readings := []int{10}
		s := NewSensors(true, readings, logrus.New())
		readings[0] = 99

		Expect(s.CheckTemperature()).To(Equal(10))
	})

	It("should report the voltage state", func() {
		Expect(NewSensors(true, nil, logrus.New()).CheckVoltage()).To(BeTrue())
		Expect(NewSensors(false, nil, logrus.New()).CheckVoltage()).To(BeFalse())
	})
})

var _ = Describe("PowerSupply", func() {
	It("should switch on and off", func() {
		p := NewPowerSupply(logrus.New())
		Expect(p.IsOn()).To(BeFalse())

		p.PowerOn()
		Expect(p.IsOn()).To(BeTrue())

		p.PowerOff()
		Expect(p.IsOn()).To(BeFalse())
	})
})

var _ = Describe("VideoCard", func() {
	var (
		log  *logrus.Logger
		hook *logtest.Hook
	)

	BeforeEach(func() {
		log, hook = logtest.NewNullLogger()
	})

	It("should report the monitor connection", func() {
		Expect(NewVideoCard(true, 0, log).CheckMonitorConnection()).To(BeTrue())
		Expect(NewVideoCard(false, 0, log).CheckMonitorConnection()).To(BeFalse())
	})

	It("should log its memory size", func() {
		v := NewVideoCard(true, 2048, log)
		v.PowerOn()
		v.DisplayMemoryInfo()

		Expect(v.IsOn()).To(BeTrue())
		Expect(hook.LastEntry().Message).To(Equal("video memory"))
		Expect(hook.LastEntry().Data).To(HaveKeyWithValue("memory_mb", 2048))
		Expect(hook.LastEntry().Data).To(HaveKeyWithValue("device", "video-card"))
	})
})

var _ = Describe("RAM", func() {
	It("should track its operations", func() {
		r := NewRAM(1024, logrus.New())
		Expect(r.IsOn()).To(BeFalse())

		r.PowerOn()
		r.RunSelfTest()
		r.AnalyzeMemory()
		r.ClearMemory()

		Expect(r.IsOn()).To(BeTrue())
		Expect(r.SelfTested()).To(BeTrue())
		Expect(r.Analyzed()).To(BeTrue())
		Expect(r.Cleared()).To(BeTrue())
	})
})

var _ = Describe("OpticalDrive", func() {
	It("should return to its start position", func() {
		o := NewOpticalDrive(true, logrus.New())
		Expect(o.AtStart()).To(BeTrue())

		o.PowerOn()
		Expect(o.AtStart()).To(BeFalse())
		Expect(o.CheckDiskPresence()).To(BeTrue())

		o.ReturnToStartPosition()
		Expect(o.AtStart()).To(BeTrue())
	})
})

var _ = Describe("HardDrive", func() {
	It("should report its boot sector and model", func() {
		log, hook := logtest.NewNullLogger()
		h := NewHardDrive("SIM-HDD 500", false, log)

		h.PowerOn()
		h.RunSelfTest()
		Expect(h.CheckBootSector()).To(BeFalse())
		h.DisplayDriveInfo()

		Expect(h.IsOn()).To(BeTrue())
		Expect(h.SelfTested()).To(BeTrue())
		Expect(hook.LastEntry().Data).To(HaveKeyWithValue("model", "SIM-HDD 500"))
	})
})

var _ = Describe("New", func() {
	It("should drive a boot sequence from a profile", func() {
		profile := config.DefaultProfile()
		devices := New(profile, nil)

		var out bytes.Buffer
		seq, err := bootcheck.New(devices, &out)
		Expect(err).NotTo(HaveOccurred())

		outcome := seq.RunBootSequence()

		Expect(outcome.Completed()).To(BeTrue())
		Expect(devices.Power.(*PowerSupply).IsOn()).To(BeTrue())
		Expect(devices.Display.(*VideoCard).IsOn()).To(BeTrue())
		Expect(devices.Memory.(*RAM).IsOn()).To(BeFalse())
		Expect(out.String()).To(ContainSubstring("RAM temperature: 20 C"))
	})

	It("should leave the power supply off after an abort", func() {
		profile := config.DefaultProfile()
		profile.MonitorConnected = false
		devices := New(profile, nil)

		seq, err := bootcheck.New(devices, nil)
		Expect(err).NotTo(HaveOccurred())

		outcome := seq.RunBootSequence()

		Expect(outcome.Reason).To(Equal(bootcheck.ReasonDisplayLink))
		Expect(devices.Power.(*PowerSupply).IsOn()).To(BeFalse())
		Expect(devices.Display.(*VideoCard).IsOn()).To(BeTrue())
	})
})
