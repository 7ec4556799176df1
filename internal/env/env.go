//go:build !js || !wasm

package env

// bindingLookup reads a read-only platform binding. Outside Workers there are
// none, so only the process environment is consulted.
var bindingLookup = func(string) (string, bool) {
	return "", false
}
