//go:build !windows

// Service stubs for non-Windows platforms.
package main

// RunAsService is a no-op on non-Windows platforms. Returns false to
// indicate the bridge should run normally.
func RunAsService() (bool, error) {
	return false, nil
}

// HandleServiceCommand is a no-op on non-Windows platforms. Returns false to
// indicate no service command was handled.
func HandleServiceCommand(args []string) bool {
	return false
}
