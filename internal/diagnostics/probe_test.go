package diagnostics

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probeLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

// TestWebView2ProbeMatchesFirstExistingPath checks ordered lookup.
func TestWebView2ProbeMatchesFirstExistingPath(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "x86", "Application")
	present := filepath.Join(root, "x64", "Application")
	require.NoError(t, os.MkdirAll(present, 0o755))

	var buf bytes.Buffer
	probe := NewWebView2ProbeForTests([]string{missing, present}, os.Stat, probeLogger(&buf))

	assert.True(t, probe.Available())
	assert.Contains(t, buf.String(), present)
}

// TestWebView2ProbeStopsAtFirstMatch checks later paths are not inspected.
func TestWebView2ProbeStopsAtFirstMatch(t *testing.T) {
	var seen []string
	stat := func(path string) (os.FileInfo, error) {
		seen = append(seen, path)
		return nil, nil
	}

	probe := NewWebView2ProbeForTests([]string{"first", "second"}, stat, nil)

	assert.True(t, probe.Available())
	assert.Equal(t, []string{"first"}, seen)
}

// TestWebView2ProbeMissingEverywhere returns false and warns.
func TestWebView2ProbeMissingEverywhere(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	probe := NewWebView2ProbeForTests(
		[]string{filepath.Join(root, "a"), filepath.Join(root, "b")},
		os.Stat,
		probeLogger(&buf),
	)

	assert.False(t, probe.Available())
	assert.Contains(t, buf.String(), "level=WARN")
}

// TestVacuousProbeIgnoresFilesystem always reports true.
func TestVacuousProbeIgnoresFilesystem(t *testing.T) {
	assert.True(t, VacuousProbe{}.Available())
}

// TestWebView2PathsOrder keeps the x86 location first.
func TestWebView2PathsOrder(t *testing.T) {
	require.Len(t, WebView2Paths, 2)
	assert.Contains(t, WebView2Paths[0], "Program Files (x86)")
}
