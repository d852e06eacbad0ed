//go:build !windows

package winsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestUnsupportedOutsideWindows(t *testing.T) {
	assert.False(t, IsWindowsService())

	_, err := EventLogWriter("SysinfoCollector")
	assert.ErrorIs(t, err, errUnsupported)

	err = RunService("SysinfoCollector", zap.NewNop(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, errUnsupported)

	assert.ErrorIs(t, Install("a", "b", "c", "d", nil, zap.NewNop()), errUnsupported)
	assert.ErrorIs(t, Uninstall("a"), errUnsupported)

	p, err := ExePath()
	assert.NoError(t, err)
	assert.NotEmpty(t, p)
}
