// Package command runs external programs and captures their output.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultEnvPath is the env binary used to list the environment when no native
// enumeration is wanted.
const DefaultEnvPath = "/usr/bin/env"

// Run executes name with args and returns its standard output as text. It
// blocks until the process exits; only ctx can cut it short. The child inherits
// the current process environment. Logs go to the logger carried by ctx.
func Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("failed to run %s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("failed to run %s: %w", name, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("command", name).
		Int("bytes", stdout.Len()).
		Dur("duration", time.Since(start)).
		Msg("Command finished")

	return stdout.String(), nil
}
