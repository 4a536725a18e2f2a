package domain

// DiagnosticReport is a snapshot of the host taken at startup. It is sent to
// the remote API, written to the log, and saved as the crash report.
type DiagnosticReport struct {
	Timestamp         string   `json:"timestamp"`
	AppVersion        string   `json:"app_version"`
	OS                string   `json:"os"`
	OSVersion         string   `json:"os_version"`
	Architecture      string   `json:"architecture"`
	TotalMemoryMB     uint64   `json:"total_memory_mb"`
	AvailableMemoryMB uint64   `json:"available_memory_mb"`
	WebView2Available bool     `json:"webview2_available"`
	StartupErrors     []string `json:"startup_errors"`
	LogPath           string   `json:"log_path"`
}

// WithStartupError returns a copy of the report with message appended to
// StartupErrors. The receiver is left untouched.
func (r DiagnosticReport) WithStartupError(message string) DiagnosticReport {
	errs := make([]string, 0, len(r.StartupErrors)+1)
	errs = append(errs, r.StartupErrors...)
	r.StartupErrors = append(errs, message)
	return r
}
