package collector

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrCommandFailed wraps every failure reported by an Executor.
var ErrCommandFailed = errors.New("inventory command failed")

// Executor runs an inventory query and returns its stdout split into lines.
// A failed run returns no lines.
type Executor interface {
	Run(ctx context.Context, command string) ([]string, error)
}

// CommandExecutor spawns the query as a local process.
type CommandExecutor struct {
	// Timeout bounds a single run; zero disables it.
	Timeout time.Duration
}

// NewCommandExecutor creates a CommandExecutor with the given per-run timeout.
func NewCommandExecutor(timeout time.Duration) *CommandExecutor {
	return &CommandExecutor{Timeout: timeout}
}

// Run splits command on whitespace, executes it and returns its stdout lines
// with trailing carriage returns removed.
func (e *CommandExecutor) Run(ctx context.Context, command string) ([]string, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrCommandFailed)
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, args[0], args[1:]...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCommandFailed, args[0], err)
	}

	return splitLines(out), nil
}

func splitLines(out []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines
}
