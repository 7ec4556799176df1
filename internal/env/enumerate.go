package env

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvcrn/envkit/internal/command"
)

// Enumerator lists the names of the variables in the process environment.
type Enumerator interface {
	Keys(ctx context.Context) ([]string, error)
}

// NativeEnumerator lists variables through os.Environ.
type NativeEnumerator struct{}

// Keys implements Enumerator. It never fails.
func (NativeEnumerator) Keys(_ context.Context) ([]string, error) {
	environ := os.Environ()
	keys := make([]string, 0, len(environ))
	for _, kv := range environ {
		if key := environKey(kv); key != "" {
			keys = append(keys, key)
		}
	}
	return unique(keys), nil
}

// environKey returns the name part of a KEY=VALUE entry. Windows keeps
// per-drive entries such as "=C:=C:\" whose name starts with '='.
func environKey(kv string) string {
	if kv == "" {
		return ""
	}
	i := strings.Index(kv[1:], "=")
	if i < 0 {
		return kv
	}
	return kv[:i+1]
}

// CommandEnumerator lists variables by running an env-style command and
// parsing its KEY=VALUE output.
//
// The output format cannot represent values that contain newlines: a value
// such as "a\nB=2" produces a line "B=2" and so a key B that is not set.
// Accessor.Each and Accessor.Values skip such keys because their lookup
// reports absent, but Keys returns them as listed.
type CommandEnumerator struct {
	// Path defaults to command.DefaultEnvPath.
	Path string
	Args []string
	// Logger defaults to the logger carried by ctx.
	Logger *zerolog.Logger
}

// Keys implements Enumerator.
func (c CommandEnumerator) Keys(ctx context.Context) ([]string, error) {
	path := c.Path
	if path == "" {
		path = command.DefaultEnvPath
	}
	log := c.Logger
	if log == nil {
		log = zerolog.Ctx(ctx)
	}

	out, err := command.Run(log.WithContext(ctx), path, c.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate environment: %w", err)
	}

	keys, skipped := parseKeys(out)
	if skipped > 0 {
		log.Trace().Int("skipped", skipped).Msg("Skipped lines without a variable name")
	}
	log.Debug().
		Str("command", path).
		Int("count", len(keys)).
		Msg("Enumerated environment from command output")
	return keys, nil
}

// ParseKeys extracts variable names from env-style output: one KEY=VALUE per
// line, name taken up to the first '='. Blank lines and lines without '=' are
// skipped, as are repeated names.
func ParseKeys(text string) []string {
	keys, _ := parseKeys(text)
	return keys
}

// parseKeys is ParseKeys that also counts non-blank lines it could not use.
func parseKeys(text string) ([]string, int) {
	var keys []string
	skipped := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		key, _, found := strings.Cut(line, "=")
		if !found || key == "" {
			skipped++
			continue
		}
		keys = append(keys, key)
	}
	return unique(keys), skipped
}

// unique drops repeated keys, keeping the first occurrence.
func unique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
