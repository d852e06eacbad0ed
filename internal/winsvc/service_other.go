//go:build !windows

package winsvc

import (
	"context"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
)

var errUnsupported = errors.New("windows services are not supported on this platform")

// IsWindowsService always returns false on non-Windows platforms.
func IsWindowsService() bool { return false }

// RunService is not supported on non-Windows platforms.
func RunService(_ string, _ *zap.Logger, _ func(ctx context.Context) error) error {
	return errUnsupported
}

// EventLogWriter is not supported on non-Windows platforms.
func EventLogWriter(_ string) (io.Writer, error) {
	return nil, errUnsupported
}

// Install is not supported on non-Windows platforms.
func Install(_, _, _, _ string, _ []string, _ *zap.Logger) error {
	return errUnsupported
}

// Uninstall is not supported on non-Windows platforms.
func Uninstall(_ string) error {
	return errUnsupported
}

// ExePath returns the path to the currently running executable.
func ExePath() (string, error) {
	return os.Executable()
}
