package diagnostics

import (
	"log/slog"
	"os"
)

// WebView2Paths are the standard Edge WebView2 runtime install locations,
// checked in order.
var WebView2Paths = []string{
	`C:\Program Files (x86)\Microsoft\EdgeWebView\Application`,
	`C:\Program Files\Microsoft\EdgeWebView\Application`,
}

// WebView2DownloadURL is shown to users missing the runtime.
const WebView2DownloadURL = "https://developer.microsoft.com/en-us/microsoft-edge/webview2/"

// PlatformProbe reports whether the webview runtime the shell needs is
// present on this host.
type PlatformProbe interface {
	Available() bool
}

// WebView2Probe looks for the WebView2 runtime on disk.
type WebView2Probe struct {
	paths  []string
	stat   func(string) (os.FileInfo, error)
	logger *slog.Logger
}

// NewWebView2Probe builds a probe over the standard install paths.
func NewWebView2Probe(logger *slog.Logger) *WebView2Probe {
	return NewWebView2ProbeForTests(WebView2Paths, os.Stat, logger)
}

// NewWebView2ProbeForTests creates a probe with injectable paths and stat.
func NewWebView2ProbeForTests(paths []string, stat func(string) (os.FileInfo, error), logger *slog.Logger) *WebView2Probe {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebView2Probe{paths: paths, stat: stat, logger: logger}
}

// Available returns true on the first existing path.
func (p *WebView2Probe) Available() bool {
	for _, path := range p.paths {
		if _, err := p.stat(path); err == nil {
			p.logger.Info("WebView2 found", "path", path)
			return true
		}
	}

	p.logger.Warn("WebView2 not found in standard installation paths")
	return false
}

// VacuousProbe is used where the system webview ships with the OS.
type VacuousProbe struct{}

// Available always returns true.
func (VacuousProbe) Available() bool { return true }
