// Package diagnostics collects the host snapshot logged and uploaded at
// startup, probes for the platform webview runtime, and writes the crash
// report when a fatal startup check fails.
//
// Collection never fails: every host probe that can error has a fallback
// value, so a DiagnosticReport is always fully populated.
package diagnostics
