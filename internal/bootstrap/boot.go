package bootstrap

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"evolveapp-desktop/internal/appinfo"
	"evolveapp-desktop/internal/config"
	"evolveapp-desktop/internal/datalayer"
	"evolveapp-desktop/internal/diagnostics"
	"evolveapp-desktop/internal/domain"
	"evolveapp-desktop/internal/events"
	"evolveapp-desktop/internal/logging"
	"evolveapp-desktop/internal/paths"
	"evolveapp-desktop/internal/remote"
	"evolveapp-desktop/internal/startup"
)

// WebView2MissingMessage is recorded in the crash report and shown to the
// user when the WebView2 runtime is absent.
const WebView2MissingMessage = "WebView2 runtime is not installed. Download it from " + diagnostics.WebView2DownloadURL

// FatalError is returned by Boot when a startup precondition fails. The
// process must exit without starting the UI.
type FatalError struct {
	Message     string
	CrashReport string
}

func (e *FatalError) Error() string {
	return e.Message
}

// Boot runs the synchronous startup steps: logging, diagnostics, and the
// platform precondition check. The returned logger is always non-nil and
// the caller must Close it on every exit path. On a failed precondition the
// App is nil and the error is a *FatalError.
func Boot(assets fs.FS) (*App, *logging.Logger, error) {
	stages := startup.NewTracker()
	bus := events.NewBus(200)

	logger := initLogging(os.Stderr)
	slog.SetDefault(logger.Logger)

	collector := diagnostics.NewCollector(diagnostics.DefaultProbe(logger.Logger))
	seq := &sequencer{
		logger:    logger.Logger,
		collector: collector,
		crash:     diagnostics.NewCrashReporter(collector, paths.CrashReportFile(), logger.Logger),
		notify:    notifyUser,
		stages:    stages,
		events:    bus,
	}
	seq.advance(domain.StageLoggingReady)

	report, err := seq.run()
	if err != nil {
		return nil, logger, err
	}

	store := config.NewJSONStore(paths.SettingsFile())
	settings, err := store.Load()
	if err != nil {
		logger.Warn("failed to load settings, using defaults", "path", store.Path(), "error", err)
		settings = config.DefaultSettings()
	}

	newClient := func(cfg domain.APIConfig) *remote.Client {
		return remote.NewClient(cfg, remote.WithLogger(logger.Logger))
	}

	app := &App{
		Settings:    settings,
		Store:       store,
		Diagnostics: report,
		assets:      assets,
		logger:      logger.Logger,
		collector:   collector,
		data: datalayer.NewService(config.LoadAPIConfig, func(cfg domain.APIConfig) datalayer.HealthChecker {
			return newClient(cfg)
		}, logger.Logger),
		uploader: func(cfg domain.APIConfig) diagnosticsUploader {
			return newClient(cfg)
		},
		apiConfig: config.LoadAPIConfig,
		stages:    stages,
		events:    bus,
		emit:      emitRuntimeEvent,
	}
	return app, logger, nil
}

// initLogging installs file and console logging. A failure is reported on
// stderr and startup continues with console-only logging.
func initLogging(stderr io.Writer) *logging.Logger {
	logger, err := logging.New(logging.DefaultConfig())
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logging: %v\n", err)
		return logging.NewConsole(os.Stdout, "info")
	}
	return logger
}

// sequencer runs the steps that must finish before the UI shell starts.
type sequencer struct {
	logger    *slog.Logger
	collector diagnostics.ReportSource
	crash     *diagnostics.CrashReporter
	notify    func(message string)
	stages    *startup.Tracker
	events    *events.Bus
}

func (s *sequencer) run() (domain.DiagnosticReport, error) {
	s.logger.Info("starting "+appinfo.Name, "version", appinfo.Version)

	report := s.collector.Collect()
	diagnostics.LogReport(s.logger, report)
	s.advance(domain.StageDiagnosticsCollected)

	if !report.WebView2Available {
		s.logger.Error("CRITICAL: WebView2 is not installed!")
		s.logger.Error("Download from: " + diagnostics.WebView2DownloadURL)

		s.crash.Report(WebView2MissingMessage)
		s.notify(WebView2MissingMessage)
		s.advance(domain.StageFatalAbort)
		return report, &FatalError{Message: WebView2MissingMessage, CrashReport: s.crash.Path()}
	}

	s.advance(domain.StageContinuingStartup)
	return report, nil
}

func (s *sequencer) advance(stage domain.Stage) {
	advanceStage(s.stages, s.events, s.logger, stage)
}

// advanceStage moves the tracker and records the stage on the event bus.
func advanceStage(stages *startup.Tracker, bus *events.Bus, logger *slog.Logger, stage domain.Stage) (events.Event, bool) {
	if err := stages.Advance(stage); err != nil {
		logger.Error("startup stage change rejected", "error", err)
		return events.Event{}, false
	}
	logger.Debug("startup stage", "stage", stage)
	return bus.Publish(events.Event{Type: events.TypeStage, Stage: stage}), true
}
