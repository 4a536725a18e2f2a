package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"evolveapp-desktop/internal/appinfo"
)

const (
	// LogFileName is the active log file inside LogDir.
	LogFileName = "evolveapp.log"

	// CrashReportFileName is overwritten on every fatal startup failure.
	CrashReportFileName = "crash_report.json"

	settingsFileName = "settings.json"
)

// DataDir returns the platform user-data directory, or the current working
// directory when it cannot be determined.
func DataDir() string {
	return dataDir(runtime.GOOS, os.Getenv, os.UserHomeDir, os.Getwd)
}

// AppDir returns the application's own directory under DataDir.
func AppDir() string {
	return filepath.Join(DataDir(), appinfo.Identifier)
}

// LogDir returns the directory holding log files and crash reports.
func LogDir() string {
	return filepath.Join(AppDir(), "logs")
}

// LogFile returns the absolute path of the active log file.
func LogFile() string {
	return filepath.Join(LogDir(), LogFileName)
}

// CrashReportFile returns the crash report path.
func CrashReportFile() string {
	return filepath.Join(LogDir(), CrashReportFileName)
}

// SettingsFile returns the persisted settings path.
func SettingsFile() string {
	return filepath.Join(AppDir(), settingsFileName)
}

func dataDir(
	goos string,
	getenv func(string) string,
	homeDir func() (string, error),
	getwd func() (string, error),
) string {
	switch goos {
	case "windows":
		if dir := getenv("APPDATA"); dir != "" {
			return dir
		}
	case "darwin", "ios":
		if home, err := homeDir(); err == nil && home != "" {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		if dir := getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
			return dir
		}
		if home, err := homeDir(); err == nil && home != "" {
			return filepath.Join(home, ".local", "share")
		}
	}

	if wd, err := getwd(); err == nil {
		return wd
	}
	return "."
}
