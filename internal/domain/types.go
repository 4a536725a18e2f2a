package domain

// APIConfig locates the remote API that owns all business data.
type APIConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key,omitempty"`
}

// SyncStatus reports remote API reachability to the front-end.
type SyncStatus struct {
	Connected         bool    `json:"connected"`
	LastSync          *string `json:"last_sync"`
	PendingOperations int     `json:"pending_operations"`
}

// Settings contains user-selectable runtime configuration.
type Settings struct {
	ShareDiagnostics bool `json:"share_diagnostics"`
}

// Stage tracks progress through the startup sequence.
type Stage string

const (
	StageStarting             Stage = "starting"
	StageLoggingReady         Stage = "logging_ready"
	StageDiagnosticsCollected Stage = "diagnostics_collected"
	StageFatalAbort           Stage = "fatal_abort"
	StageContinuingStartup    Stage = "continuing_startup"
	StageBackgroundDispatched Stage = "background_dispatched"
	StageRunning              Stage = "running"
)
