package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"evolveapp-desktop/internal/appinfo"
	"evolveapp-desktop/internal/config"
	"evolveapp-desktop/internal/datalayer"
	"evolveapp-desktop/internal/diagnostics"
	"evolveapp-desktop/internal/domain"
	"evolveapp-desktop/internal/events"
	"evolveapp-desktop/internal/startup"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

const (
	startupEventName = "startup:event"

	taskDataLayer = "datalayer_init"
	taskUpload    = "diagnostics_upload"
)

// App wires diagnostics, the data layer stub, and UI runtime callbacks. Its
// exported methods are bound to the front-end.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	logger      *slog.Logger
	collector   diagnostics.ReportSource
	data        *datalayer.Service
	uploader    func(domain.APIConfig) diagnosticsUploader
	apiConfig   func() domain.APIConfig
	stages      *startup.Tracker
	events      *events.Bus
	emit        func(ctx context.Context, name string, data ...interface{})

	mu         sync.Mutex
	runtimeCtx context.Context
}

// diagnosticsUploader isolates the remote diagnostics endpoint.
type diagnosticsUploader interface {
	UploadDiagnostics(ctx context.Context, report domain.DiagnosticReport) error
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       appinfo.Name,
		Width:       1280,
		Height:      800,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
			a.logger.Info("shutting down")
		},
		Bind: []interface{}{a},
	})
}

// Startup is the UI shell's setup hook. It stores the runtime context and
// dispatches the background startup tasks without waiting for them.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	a.runtimeCtx = ctx
	a.mu.Unlock()

	go a.runBackgroundTasks()
	a.advance(domain.StageBackgroundDispatched)

	a.logger.Info("setup completed")
	a.advance(domain.StageRunning)
}

// runBackgroundTasks initializes the data layer and uploads diagnostics.
// Failures are logged and published, never returned.
func (a *App) runBackgroundTasks() {
	ctx := context.Background()

	if err := a.data.Initialize(ctx); err != nil {
		a.logger.Error("failed to initialize data layer", "error", err)
		a.publishTask(taskDataLayer, events.TypeError, err.Error())
	} else {
		a.logger.Info("data layer initialized")
		a.publishTask(taskDataLayer, events.TypeTask, "Data layer ready")
	}

	cfg := a.apiConfig()

	if !a.currentSettings().ShareDiagnostics {
		a.logger.Info("diagnostics upload disabled in settings")
		a.publishTask(taskUpload, events.TypeTask, "Diagnostics upload skipped")
		return
	}

	report := a.collector.Collect()
	if err := a.uploader(cfg).UploadDiagnostics(ctx, report); err != nil {
		a.logger.Warn("failed to send diagnostics", "base_url", cfg.BaseURL, "error", err)
		a.publishTask(taskUpload, events.TypeError, err.Error())
		return
	}

	a.logger.Info("diagnostics sent successfully")
	a.publishTask(taskUpload, events.TypeTask, "Diagnostics uploaded")
}

// Greet returns the welcome message.
func (a *App) Greet(name string) string {
	return fmt.Sprintf("Hello, %s! Welcome to %s.", name, appinfo.Name)
}

// GetAppVersion returns the build-time version.
func (a *App) GetAppVersion() string {
	return appinfo.Version
}

// ExecuteSQL always fails: data operations go through the remote API.
func (a *App) ExecuteSQL(query string) (string, error) {
	return a.data.ExecuteQuery(query)
}

// SyncData returns the JSON-encoded sync status for moduleID.
func (a *App) SyncData(moduleID string) (string, error) {
	return a.data.SyncModule(context.Background(), moduleID)
}

// GetDiagnostics returns the report collected at startup.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	return a.Diagnostics
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings persists settings.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	if err := a.Store.Save(settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// StartupEvents returns startup events with sequence greater than sinceSeq.
func (a *App) StartupEvents(sinceSeq int64) []events.Event {
	return a.events.Since(sinceSeq)
}

// GetStartupStage returns the current startup stage.
func (a *App) GetStartupStage() domain.Stage {
	return a.stages.Current()
}

// ShowWindow shows and focuses the main window.
func (a *App) ShowWindow() error {
	ctx, err := a.runtimeContext()
	if err != nil {
		return err
	}
	wailsruntime.WindowShow(ctx)
	wailsruntime.WindowUnminimise(ctx)
	return nil
}

// HideWindow hides the main window without quitting.
func (a *App) HideWindow() error {
	ctx, err := a.runtimeContext()
	if err != nil {
		return err
	}
	wailsruntime.WindowHide(ctx)
	return nil
}

// Quit exits the application.
func (a *App) Quit() error {
	ctx, err := a.runtimeContext()
	if err != nil {
		return err
	}
	wailsruntime.Quit(ctx)
	return nil
}

func (a *App) advance(stage domain.Stage) {
	if event, ok := advanceStage(a.stages, a.events, a.logger, stage); ok {
		a.emitEvent(event)
	}
}

// publishTask stores a background task outcome and pushes it to the UI.
func (a *App) publishTask(task string, typ events.Type, message string) {
	a.emitEvent(a.events.Publish(events.Event{
		Type:    typ,
		Task:    task,
		Message: message,
	}))
}

func (a *App) emitEvent(event events.Event) {
	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil && a.emit != nil {
		a.emit(ctx, startupEventName, event)
	}
}

func (a *App) currentSettings() domain.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Settings
}

// runtimeContext returns current Wails runtime context for window APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

func emitRuntimeEvent(ctx context.Context, name string, data ...interface{}) {
	wailsruntime.EventsEmit(ctx, name, data...)
}
