package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolveapp-desktop/internal/bootstrap"
	"evolveapp-desktop/internal/diagnostics"
	"evolveapp-desktop/internal/domain"
	"evolveapp-desktop/internal/logging"
)

type staticSource struct {
	report domain.DiagnosticReport
}

func (s staticSource) Collect() domain.DiagnosticReport {
	return s.report
}

func sourceOf(report domain.DiagnosticReport) func() diagnostics.ReportSource {
	return func() diagnostics.ReportSource { return staticSource{report: report} }
}

func sampleReport(webview bool) domain.DiagnosticReport {
	return domain.DiagnosticReport{
		Timestamp:         "2026-01-02T03:04:05Z",
		AppVersion:        "1.2.3",
		OS:                "windows",
		OSVersion:         "Windows 11 Pro",
		Architecture:      "amd64",
		TotalMemoryMB:     16384,
		AvailableMemoryMB: 8192,
		WebView2Available: webview,
		StartupErrors:     []string{},
		LogPath:           `C:\Users\a\AppData\Roaming\com.evolveapp.desktop\logs\evolveapp.log`,
	}
}

func execute(t *testing.T, d deps, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(d)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDoctorPrintsReport(t *testing.T) {
	out, err := execute(t, deps{source: sourceOf(sampleReport(true))}, "doctor")
	require.NoError(t, err)

	assert.Contains(t, out, "System Diagnostics")
	assert.Contains(t, out, "Windows 11 Pro")
	assert.Contains(t, out, "16384 MB")
	assert.Contains(t, out, "available")
}

func TestDoctorJSON(t *testing.T) {
	out, err := execute(t, deps{source: sourceOf(sampleReport(true))}, "doctor", "--json")
	require.NoError(t, err)

	var report domain.DiagnosticReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, sampleReport(true), report)
}

func TestDoctorFailsWhenWebViewMissing(t *testing.T) {
	out, err := execute(t, deps{source: sourceOf(sampleReport(false))}, "doctor")
	require.ErrorIs(t, err, errProbeFailed)
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, diagnostics.WebView2DownloadURL)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, deps{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "EvolveApp")
	assert.Contains(t, out, "identifier: com.evolveapp.desktop")
}

func TestRootRunsShellAfterBoot(t *testing.T) {
	var ran bool
	d := deps{
		boot: func(fs.FS) (*bootstrap.App, *logging.Logger, error) {
			return &bootstrap.App{}, logging.NewNop(), nil
		},
		run: func(*bootstrap.App) error {
			ran = true
			return nil
		},
	}

	_, err := execute(t, d)
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRootReturnsFatalErrorAndFlushesLog(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.New(logging.Config{Dir: dir, Level: "info", Console: &bytes.Buffer{}})
	require.NoError(t, err)

	fatal := &bootstrap.FatalError{Message: bootstrap.WebView2MissingMessage, CrashReport: "crash_report.json"}
	d := deps{
		boot: func(fs.FS) (*bootstrap.App, *logging.Logger, error) {
			return nil, logger, fatal
		},
		run: func(*bootstrap.App) error {
			t.Fatal("shell must not run after a fatal startup error")
			return nil
		},
	}

	_, err = execute(t, d)
	var got *bootstrap.FatalError
	require.True(t, errors.As(err, &got))

	data, err := os.ReadFile(filepath.Join(dir, "evolveapp.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "startup aborted")
}

func TestRootPropagatesRunError(t *testing.T) {
	boom := errors.New("webview crashed")
	d := deps{
		boot: func(fs.FS) (*bootstrap.App, *logging.Logger, error) {
			return &bootstrap.App{}, logging.NewNop(), nil
		},
		run: func(*bootstrap.App) error { return boom },
	}

	_, err := execute(t, d)
	require.ErrorIs(t, err, boom)
}
