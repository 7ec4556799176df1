// Package env reads and mutates the live process environment.
//
// Nothing is cached: every call goes to the operating system, so changes made by
// other code in the same process are always visible.
package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvcrn/envkit/internal/logger"
)

// Pair is a single environment variable.
type Pair struct {
	Key   string
	Value string
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithEnumerator sets the strategy used to list variable names.
func WithEnumerator(e Enumerator) Option {
	return func(a *Accessor) {
		a.enumerator = e
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zerolog.Logger) Option {
	return func(a *Accessor) {
		a.log = l
	}
}

// Accessor is a stateless view over the process environment.
type Accessor struct {
	enumerator Enumerator
	log        *zerolog.Logger
}

// New creates an Accessor. Without options it enumerates natively and logs
// through the shared logger.
func New(opts ...Option) *Accessor {
	a := &Accessor{enumerator: NativeEnumerator{}}
	for _, opt := range opts {
		opt(a)
	}
	if a.enumerator == nil {
		a.enumerator = NativeEnumerator{}
	}
	if a.log == nil {
		a.log = logger.Get()
	}
	return a
}

// Get returns the value of key and whether it is set. A variable set to the
// empty string is reported as present.
func (a *Accessor) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// GetOrDefault returns the value of key, or defaultValue when key is unset or
// empty. On Cloudflare Workers a binding of the same name is used when the
// process environment has no value.
func (a *Accessor) GetOrDefault(key, defaultValue string) string {
	if value, ok := a.Get(key); ok && value != "" {
		return value
	}
	if value, ok := bindingLookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// Set writes value for key, replacing any existing value.
func (a *Accessor) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	a.log.Debug().Str("key", key).Msg("Set environment variable")
	return nil
}

// Unset removes key. Unsetting a missing key is not an error.
func (a *Accessor) Unset(key string) error {
	if err := os.Unsetenv(key); err != nil {
		return fmt.Errorf("failed to unset %q: %w", key, err)
	}
	a.log.Debug().Str("key", key).Msg("Unset environment variable")
	return nil
}

// IsSet reports whether key has a value.
func (a *Accessor) IsSet(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// HasKey is an alias for IsSet.
func (a *Accessor) HasKey(key string) bool {
	return a.IsSet(key)
}

// Keys lists the names of all currently set variables. The accessor's logger
// is attached to ctx for the enumerator.
func (a *Accessor) Keys(ctx context.Context) ([]string, error) {
	keys, err := a.enumerator.Keys(a.log.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	a.log.Trace().Int("count", len(keys)).Msg("Enumerated environment")
	return keys, nil
}

// Values returns the value of every enumerated key. Keys removed between
// enumeration and lookup are skipped.
func (a *Accessor) Values(ctx context.Context) ([]string, error) {
	pairs, err := a.Pairs(ctx)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(pairs))
	for _, p := range pairs {
		values = append(values, p.Value)
	}
	return values, nil
}

// HasValue reports whether any variable currently holds value.
func (a *Accessor) HasValue(ctx context.Context, value string) (bool, error) {
	values, err := a.Values(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(values, value), nil
}

// Pairs returns every variable that is still set after enumeration, in
// enumeration order.
func (a *Accessor) Pairs(ctx context.Context) ([]Pair, error) {
	var pairs []Pair
	err := a.Each(ctx, func(key, value string) {
		pairs = append(pairs, Pair{Key: key, Value: value})
	})
	return pairs, err
}

// Each calls fn once for every set variable. Values are looked up per key from a
// single enumeration, so a key and its value always belong together.
func (a *Accessor) Each(ctx context.Context, fn func(key, value string)) error {
	keys, err := a.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		value, ok := a.Get(key)
		if !ok {
			continue
		}
		fn(key, value)
	}
	return nil
}

// Clear unsets every enumerated variable. It is not atomic: concurrent readers
// may see a partially cleared environment. All keys are attempted even if some
// fail.
func (a *Accessor) Clear(ctx context.Context) error {
	keys, err := a.Keys(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		if err := a.Unset(key); err != nil {
			errs = append(errs, err)
		}
	}
	a.log.Debug().Int("count", len(keys)).Int("failed", len(errs)).Msg("Cleared environment")
	return errors.Join(errs...)
}

var defaultAccessor = sync.OnceValue(func() *Accessor {
	return New()
})

// Default returns the shared Accessor used by the package-level helpers.
func Default() *Accessor {
	return defaultAccessor()
}

// Get retrieves an environment variable
func Get(key string) (string, bool) {
	return Default().Get(key)
}

// GetOrDefault retrieves an environment variable with a default value
func GetOrDefault(key, defaultValue string) string {
	return Default().GetOrDefault(key, defaultValue)
}

// Set sets an environment variable
func Set(key, value string) error {
	return Default().Set(key, value)
}

// Unset removes an environment variable
func Unset(key string) error {
	return Default().Unset(key)
}

// IsSet reports whether an environment variable is set
func IsSet(key string) bool {
	return Default().IsSet(key)
}
