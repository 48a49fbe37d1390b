//go:build !llama

package backend

// This stub is compiled when the 'llama' build tag is NOT set, keeping default
// builds and CI CGO-free. The real adapter lives in llama.go (tagged 'llama').

// Built indicates this binary was compiled with real llama support.
var Built = false

// Load fails fast: the native runtime is not available in this build. The
// engine treats this as a recoverable load failure and serves pattern
// responses instead.
func Load(path string, p ContextParams, info Info) (Model, error) {
	return nil, ErrUnavailable("llama support not built (missing 'llama' build tag)")
}
