package backend

import "fmt"

// unavailableError signals that the native runtime is not compiled in or
// failed to initialize. Callers route these loads to the pattern fallback.
type unavailableError struct{ msg string }

func (e unavailableError) Error() string { return e.msg }

// ErrUnavailable constructs an unavailableError.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// IsUnavailable reports whether err indicates a missing native runtime.
func IsUnavailable(err error) bool {
	_, ok := err.(unavailableError)
	return ok
}

// SizeError reports an undersized token buffer and the required length.
type SizeError struct{ Required int }

func (e *SizeError) Error() string {
	return fmt.Sprintf("token buffer too small: need %d", e.Required)
}
