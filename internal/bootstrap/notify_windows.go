//go:build windows

package bootstrap

import (
	"os/exec"

	"evolveapp-desktop/internal/appinfo"
)

// notifyUser shows a transient console-session message. Errors are ignored.
func notifyUser(message string) {
	_ = exec.Command("msg", "/time:10", "*", appinfo.Name+" Error: "+message).Run()
}
