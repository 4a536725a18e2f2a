//go:build !windows

package diagnostics

import "log/slog"

// DefaultProbe is vacuous: macOS and Linux ship their webview with the OS.
func DefaultProbe(_ *slog.Logger) PlatformProbe {
	return VacuousProbe{}
}
