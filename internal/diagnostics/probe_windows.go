//go:build windows

package diagnostics

import "log/slog"

// DefaultProbe checks for the WebView2 runtime.
func DefaultProbe(logger *slog.Logger) PlatformProbe {
	return NewWebView2Probe(logger)
}
