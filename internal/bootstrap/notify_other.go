//go:build !windows

package bootstrap

// notifyUser is a no-op: the only fatal startup check never fails here.
func notifyUser(string) {}
