package engine

// notLoadedError signals a generate call before any successful load. The
// outer boundary maps this to the fixed "model not loaded" sentinel.
type notLoadedError struct{}

func (notLoadedError) Error() string { return "model not loaded" }

// ErrNotLoaded is returned by Generate when no load has completed.
var ErrNotLoaded error = notLoadedError{}

// IsNotLoaded reports whether err indicates a generate-before-load call.
func IsNotLoaded(err error) bool {
	_, ok := err.(notLoadedError)
	return ok
}
