package preflight

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// RuntimeProbe asks a container runtime for its version
type RuntimeProbe interface {
	Probe(ctx context.Context, executable string) error
}

// ExecProbe runs "<executable> --version" with no stdin and discarded output.
type ExecProbe struct{}

// Probe implements RuntimeProbe. Only the exit status is consulted.
func (ExecProbe) Probe(ctx context.Context, executable string) error {
	cmd := exec.CommandContext(ctx, executable, "--version")
	cmd.WaitDelay = time.Second
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s --version: %w", executable, err)
	}
	return nil
}

// CheckRuntime fails with ErrRuntimeNotFound when the runtime cannot report its
// version within timeout. Cancellation of ctx itself is returned as-is.
func CheckRuntime(ctx context.Context, probe RuntimeProbe, executable string, timeout time.Duration) error {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := probe.Probe(probeCtx, executable); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s check interrupted: %w", executable, ctxErr)
		}
		return newCheckError(ErrRuntimeNotFound, fmt.Sprintf("%s not found", RuntimeDisplayName(executable)), err)
	}
	return nil
}

// RuntimeDisplayName turns "/usr/bin/docker" into "Docker".
func RuntimeDisplayName(executable string) string {
	name := filepath.Base(executable)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
