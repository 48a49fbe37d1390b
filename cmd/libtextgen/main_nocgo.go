//go:build !cgo

// When cgo is disabled the C ABI wrappers in main.go are excluded, so this
// stub supplies the main the package clause requires. The resulting binary is
// inert; the shared library must be built with cgo enabled.
package main

func main() {}
