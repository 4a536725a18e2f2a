package diagnostics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"evolveapp-desktop/internal/domain"
)

// ReportSource produces diagnostic reports.
type ReportSource interface {
	Collect() domain.DiagnosticReport
}

// CrashReporter persists a diagnostics report before a fatal exit.
type CrashReporter struct {
	source ReportSource
	path   string
	logger *slog.Logger
}

// NewCrashReporter creates a reporter writing to path.
func NewCrashReporter(source ReportSource, path string, logger *slog.Logger) *CrashReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CrashReporter{source: source, path: path, logger: logger}
}

// Path returns the crash report location.
func (r *CrashReporter) Path() string {
	return r.path
}

// Report collects a live report, appends message to its startup errors, and
// overwrites the crash report file. Failures are logged, never returned.
func (r *CrashReporter) Report(message string) {
	report := r.source.Collect().WithStartupError(message)

	if err := r.write(report); err != nil {
		r.logger.Error("failed to write crash report", "path", r.path, "error", err)
		return
	}
	r.logger.Info("crash report saved", "path", r.path)
}

func (r *CrashReporter) write(report domain.DiagnosticReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal crash report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create crash report directory: %w", err)
	}

	if err := writeFileAtomic(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write crash report: %w", err)
	}
	return nil
}
