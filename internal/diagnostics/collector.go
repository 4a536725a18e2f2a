package diagnostics

import (
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"evolveapp-desktop/internal/appinfo"
	"evolveapp-desktop/internal/domain"
	"evolveapp-desktop/internal/paths"
)

const (
	bytesPerMB       = 1024 * 1024
	unknownOSVersion = "Unknown"
)

// Collector builds diagnostic reports from host state.
type Collector struct {
	memory    func() (total, available uint64, err error)
	osVersion func() (string, error)
	probe     PlatformProbe
	logPath   func() string
	now       func() time.Time
}

// NewCollector builds a collector using real host probes.
func NewCollector(probe PlatformProbe) *Collector {
	return &Collector{
		memory:    hostMemory,
		osVersion: hostOSVersion,
		probe:     probe,
		logPath:   paths.LogFile,
		now:       time.Now,
	}
}

// NewCollectorForTests creates a collector with injectable dependencies.
func NewCollectorForTests(
	memory func() (uint64, uint64, error),
	osVersion func() (string, error),
	probe PlatformProbe,
	logPath func() string,
	now func() time.Time,
) *Collector {
	return &Collector{
		memory:    memory,
		osVersion: osVersion,
		probe:     probe,
		logPath:   logPath,
		now:       now,
	}
}

// Collect returns a fresh report. It holds no state between calls.
func (c *Collector) Collect() domain.DiagnosticReport {
	var totalMB, availableMB uint64
	if total, available, err := c.memory(); err == nil {
		totalMB = bytesToMB(total)
		availableMB = bytesToMB(available)
	}
	if availableMB > totalMB {
		availableMB = totalMB
	}

	osVersion := unknownOSVersion
	if v, err := c.osVersion(); err == nil && strings.TrimSpace(v) != "" {
		osVersion = strings.TrimSpace(v)
	}

	webview := true
	if c.probe != nil {
		webview = c.probe.Available()
	}

	return domain.DiagnosticReport{
		Timestamp:         c.now().UTC().Format(time.RFC3339Nano),
		AppVersion:        appinfo.Version,
		OS:                runtime.GOOS,
		OSVersion:         osVersion,
		Architecture:      runtime.GOARCH,
		TotalMemoryMB:     totalMB,
		AvailableMemoryMB: availableMB,
		WebView2Available: webview,
		StartupErrors:     []string{},
		LogPath:           c.logPath(),
	}
}

// bytesToMB truncates; 1 MiB minus one byte is 0.
func bytesToMB(b uint64) uint64 {
	return b / bytesPerMB
}

func hostMemory() (uint64, uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return vm.Total, vm.Available, nil
}

func hostOSVersion() (string, error) {
	platform, _, version, err := host.PlatformInformation()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(platform + " " + version), nil
}

// LogReport writes the report as a fixed labeled block at info level.
func LogReport(logger *slog.Logger, report domain.DiagnosticReport) {
	logger.Info("=== System Diagnostics ===")
	logger.Info("App Version: " + report.AppVersion)
	logger.Info("OS: " + report.OS + " " + report.OSVersion)
	logger.Info("Architecture: " + report.Architecture)
	logger.Info("Memory",
		"total_mb", report.TotalMemoryMB,
		"available_mb", report.AvailableMemoryMB,
	)
	logger.Info("WebView2 Available", "available", report.WebView2Available)
	logger.Info("Log Location: " + report.LogPath)
	logger.Info("==========================")
}
