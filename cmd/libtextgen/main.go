// Command libtextgen exposes the generation service over a C ABI. Build it as
// a shared library:
//
//	go build -buildmode=c-shared -o libtextgen.so ./cmd/libtextgen
//
// Strings returned by generate_text are heap-allocated; callers release them
// with free_string. The pointer returned by get_model_info stays owned by the
// library and must not be freed.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

//export init_model
func init_model(path *C.char) C.int {
	if path == nil {
		return initFailed
	}
	return C.int(initCode(C.GoString(path)))
}

//export cleanup_model
func cleanup_model() {
	cleanup()
}

//export is_model_loaded
func is_model_loaded() C.int {
	if loaded() {
		return 1
	}
	return 0
}

//export generate_text
func generate_text(prompt *C.char, maxTokens C.int) *C.char {
	var p *string
	if prompt != nil {
		s := C.GoString(prompt)
		p = &s
	}
	out := generate(p, int(maxTokens))
	if out == nil {
		return nil
	}
	return C.CString(*out)
}

// get_model_info hands out a library-owned buffer, so the previous buffer is
// released here whenever the info string changes.
var (
	infoMu sync.Mutex
	infoGo string
	infoC  *C.char
)

//export get_model_info
func get_model_info() *C.char {
	s := modelInfo()
	infoMu.Lock()
	defer infoMu.Unlock()
	if infoC == nil || s != infoGo {
		if infoC != nil {
			C.free(unsafe.Pointer(infoC))
		}
		infoC = C.CString(s)
		infoGo = s
	}
	return infoC
}

//export set_temperature
func set_temperature(v C.float) {
	setTemperature(float32(v))
}

//export set_top_k
func set_top_k(v C.int) {
	setTopK(int(v))
}

//export set_top_p
func set_top_p(v C.float) {
	setTopP(float32(v))
}

//export free_string
func free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
