package loader

import "fmt"

// unsupportedFormatError marks an extension that is recognized but has no
// real loader. No metadata is fabricated for these; callers decide whether to
// fall back.
type unsupportedFormatError struct{ ext string }

func (e unsupportedFormatError) Error() string {
	return "unsupported model format: " + e.ext
}

// ErrUnsupportedFormat constructs an unsupportedFormatError.
func ErrUnsupportedFormat(ext string) error { return unsupportedFormatError{ext: ext} }

// IsUnsupportedFormat reports whether err indicates a recognized extension
// without a usable loader.
func IsUnsupportedFormat(err error) bool {
	_, ok := err.(unsupportedFormatError)
	return ok
}

// unrecognizedFormatError marks an extension outside the recognized set. The
// filesystem is never touched for these.
type unrecognizedFormatError struct{ ext string }

func (e unrecognizedFormatError) Error() string {
	return "unrecognized model format: " + e.ext
}

// ErrUnrecognizedFormat constructs an unrecognizedFormatError.
func ErrUnrecognizedFormat(ext string) error { return unrecognizedFormatError{ext: ext} }

// IsUnrecognizedFormat reports whether err indicates an extension outside the
// recognized set.
func IsUnrecognizedFormat(err error) bool {
	_, ok := err.(unrecognizedFormatError)
	return ok
}

// nativeLoadError wraps a failure reported by the native backend or by the
// container header inspection.
type nativeLoadError struct{ err error }

func (e nativeLoadError) Error() string { return fmt.Sprintf("native load: %v", e.err) }
func (e nativeLoadError) Unwrap() error { return e.err }

// ErrNative wraps err as a native load failure.
func ErrNative(err error) error { return nativeLoadError{err: err} }

// IsNative reports whether err is a native load failure.
func IsNative(err error) bool {
	_, ok := err.(nativeLoadError)
	return ok
}
