// Package config loads hardware profiles and process settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadSettings.
const (
	EnvProfile  = "BOOTCHECK_PROFILE"
	EnvLogLevel = "BOOTCHECK_LOG_LEVEL"
)

// DefaultLogLevel is used when no log level is configured.
const DefaultLogLevel = "warn"

// Profile describes the readings of the simulated hardware.
type Profile struct {
	VoltageOK        bool   `yaml:"voltage_ok"`
	Temperatures     []int  `yaml:"temperatures"` // Returned in order by successive sensor queries.
	MonitorConnected bool   `yaml:"monitor_connected"`
	VideoMemoryMB    int    `yaml:"video_memory_mb"`
	MemoryMB         int    `yaml:"memory_mb"`
	DiskPresent      bool   `yaml:"disk_present"`
	BootSectorValid  bool   `yaml:"boot_sector_valid"`
	DriveModel       string `yaml:"drive_model"`
}

// DefaultProfile returns a profile of healthy hardware that passes every boot check.
func DefaultProfile() Profile {
	return Profile{
		VoltageOK:        true,
		Temperatures:     []int{30, 40, 20},
		MonitorConnected: true,
		VideoMemoryMB:    4096,
		MemoryMB:         8192,
		DiskPresent:      false,
		BootSectorValid:  true,
		DriveModel:       "SIM-HDD 500",
	}
}

// Validate returns an error if the profile cannot drive the simulated hardware.
func (p Profile) Validate() error {
	if len(p.Temperatures) == 0 {
		return errors.New("profile: at least one temperature reading is required")
	}
	if p.VideoMemoryMB < 0 {
		return fmt.Errorf("profile: video_memory_mb must not be negative, got %d", p.VideoMemoryMB)
	}
	if p.MemoryMB < 0 {
		return fmt.Errorf("profile: memory_mb must not be negative, got %d", p.MemoryMB)
	}
	return nil
}

// ParseProfile reads a YAML profile. Keys that are left out keep their DefaultProfile value; unknown keys are
// rejected.
func ParseProfile(data []byte) (Profile, error) {
	profile := DefaultProfile()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return Profile{}, err
	}

	return profile, nil
}

// LoadProfile loads a profile from a YAML file. An empty path yields DefaultProfile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	return ParseProfile(data)
}

// Settings are the process-level options taken from the environment.
type Settings struct {
	ProfilePath string
	LogLevel    string
}

// LoadSettings loads the given dotenv files (".env" if none are given) into the environment and reads the settings
// from it. Missing dotenv files are ignored; variables already set in the environment win over dotenv files.
func LoadSettings(envFiles ...string) (Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	settings := Settings{
		ProfilePath: os.Getenv(EnvProfile),
		LogLevel:    os.Getenv(EnvLogLevel),
	}
	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}
	if _, err := settings.Level(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Level returns the parsed log level.
func (s Settings) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}
