package appinfo

const (
	// Name is the product name shown in logs and window titles.
	Name = "EvolveApp"

	// Identifier names the per-user data directory.
	Identifier = "com.evolveapp.desktop"
)

// Version is the application version, overridden at build time with
// -ldflags "-X evolveapp-desktop/internal/appinfo.Version=1.2.3".
var Version = "0.1.0"

// UserAgent returns the User-Agent sent with remote API requests.
func UserAgent() string {
	return Name + "/" + Version
}
