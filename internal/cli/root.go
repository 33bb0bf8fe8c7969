// Package cli provides the command-line interface for bootcheck.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/mkock/bootcheck"
	"github.com/mkock/bootcheck/hardware"
	"github.com/mkock/bootcheck/internal/config"
	"github.com/mkock/bootcheck/internal/metrics"
)

// AbortError is returned by the run command when a boot check fails.
type AbortError struct {
	Outcome bootcheck.Outcome
}

// Error returns the error message for an AbortError.
func (a AbortError) Error() string {
	return "boot sequence " + a.Outcome.String()
}

// Unwrap returns the CheckFailure that aborted the boot sequence.
func (a AbortError) Unwrap() error {
	return a.Outcome.Err()
}

// Execute runs the command line and exits the process: 0 on success, 1 if the boot sequence was aborted or the
// command failed. Exit handlers registered during the run are called first.
func Execute() {
	code := 0
	if err := NewRootCommand().Execute(); err != nil {
		code = 1
		var abort AbortError
		if !errors.As(err, &abort) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	atexit.Exit(code)
}

// NewRootCommand returns the bootcheck command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(func(fn func()) { atexit.Register(fn) })
}

// newRootCommand returns the command tree. atExit registers a function to call before the process exits.
func newRootCommand(atExit func(func())) *cobra.Command {
	root := &cobra.Command{
		Use:   "bootcheck",
		Short: "bootcheck runs the power-on checks of a simulated computer.",
		Long: `bootcheck runs the power-on checks of a simulated computer: power supply, voltage, ` +
			`temperatures and the video card. The readings of the simulated hardware come from a ` +
			`YAML profile.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand(atExit), newPlanCommand())
	return root
}

type runOptions struct {
	profile     string
	logLevel    string
	metricsFile string
}

func newRunCommand(atExit func(func())) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the boot sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, atExit)
		},
	}
	cmd.Flags().StringVar(&opts.profile, "profile", "",
		"hardware profile (YAML), defaults to $"+config.EnvProfile)
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "",
		"log level, defaults to $"+config.EnvLogLevel+" or "+config.DefaultLogLevel)
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "",
		"write Prometheus metrics to this file on exit")

	return cmd
}

func run(cmd *cobra.Command, opts runOptions, atExit func(func())) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if opts.profile != "" {
		settings.ProfilePath = opts.profile
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}

	level, err := settings.Level()
	if err != nil {
		return err
	}
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)

	profile, err := config.LoadProfile(settings.ProfilePath)
	if err != nil {
		return err
	}

	recorder := metrics.New()
	if opts.metricsFile != "" {
		path := opts.metricsFile
		atExit(func() {
			if err := recorder.WriteToTextfile(path); err != nil {
				log.WithError(err).Error("cannot write metrics")
			}
		})
	}

	seq, err := bootcheck.New(hardware.New(profile, log), cmd.OutOrStdout(),
		bootcheck.WithLogger(log), bootcheck.WithObserver(recorder))
	if err != nil {
		return err
	}

	outcome := seq.RunBootSequence()
	if outcome.Aborted() {
		return AbortError{Outcome: outcome}
	}
	return nil
}

func newPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the order of the boot steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := bootcheck.New(hardware.New(config.DefaultProfile(), nil), nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), seq.Plan())
			return err
		},
	}
}
