//go:build js && wasm

package env

import "github.com/syumai/workers/cloudflare"

// bindingLookup reads a Cloudflare Workers binding. Bindings only exist inside a
// request's runtime context; outside one the lookup reports absent.
var bindingLookup = func(key string) (value string, ok bool) {
	defer func() {
		if recover() != nil {
			value, ok = "", false
		}
	}()

	binding := cloudflare.GetBinding(key)
	if binding.IsUndefined() || binding.IsNull() {
		return "", false
	}
	return binding.String(), true
}
