// Package cli wires the cobra commands: the root command runs the desktop
// shell, doctor prints the host diagnostics, version prints build info.
package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"evolveapp-desktop/internal/appinfo"
	"evolveapp-desktop/internal/bootstrap"
	"evolveapp-desktop/internal/diagnostics"
	"evolveapp-desktop/internal/logging"
)

// bootFunc runs the synchronous startup steps.
type bootFunc func(assets fs.FS) (*bootstrap.App, *logging.Logger, error)

type deps struct {
	assets fs.FS
	boot   bootFunc
	run    func(app *bootstrap.App) error
	source func() diagnostics.ReportSource
}

// NewRootCommand builds the command tree. assets may be nil, in which case
// the shell serves ./frontend from disk.
func NewRootCommand(assets fs.FS) *cobra.Command {
	return newRootCommand(deps{
		assets: assets,
		boot:   bootstrap.Boot,
		run:    (*bootstrap.App).Run,
		source: func() diagnostics.ReportSource {
			logger := logging.NewNop().Logger
			return diagnostics.NewCollector(diagnostics.DefaultProbe(logger))
		},
	})
}

func newRootCommand(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "evolveapp",
		Short:         appinfo.Name + " desktop shell",
		Long:          appinfo.Name + " hosts the web front-end in a native window and reports host diagnostics at startup.",
		Version:       appinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runShell(d)
		},
	}

	root.AddCommand(newDoctorCommand(d.source))
	root.AddCommand(newVersionCommand())
	return root
}

// runShell boots and runs the shell. The logger is closed on every path so
// queued file output is flushed before the process exits.
func runShell(d deps) error {
	app, logger, err := d.boot(d.assets)
	defer logger.Close()

	if err != nil {
		var fatal *bootstrap.FatalError
		if errors.As(err, &fatal) {
			logger.Error("startup aborted", "reason", fatal.Message, "crash_report", fatal.CrashReport)
		}
		return err
	}

	if err := d.run(app); err != nil {
		logger.Error("application exited with error", "error", err)
		return err
	}
	return nil
}
