// Package loader inspects model files, dispatches on the recognized container
// formats and produces a Handle owning the native resources.
package loader

import (
	"errors"
	"path/filepath"
	"strings"

	"textgend/internal/backend"
)

// Format identifies a recognized model container format.
type Format string

const (
	FormatGGUF        Format = "gguf"
	FormatSafetensors Format = "safetensors"
	FormatPyTorch     Format = "pytorch"
)

// Params carries the context sizing handed to the backend.
type Params struct {
	ContextSize int
	BatchSize   int
	Threads     int
}

// DefaultParams sizes contexts for mobile-class hardware.
func DefaultParams() Params {
	return Params{ContextSize: 2048, BatchSize: 512, Threads: 4}
}

// Loader loads model files through the native backend.
type Loader struct {
	params Params
}

// New returns a Loader. Zero fields of p are replaced with defaults.
func New(p Params) *Loader {
	def := DefaultParams()
	if p.ContextSize <= 0 {
		p.ContextSize = def.ContextSize
	}
	if p.BatchSize <= 0 {
		p.BatchSize = def.BatchSize
	}
	if p.Threads <= 0 {
		p.Threads = def.Threads
	}
	return &Loader{params: p}
}

// Load dispatches on the lower-cased file extension and produces a Handle.
// Recognized extensions without a real loader yield ErrUnsupportedFormat
// rather than fabricated metadata; extensions outside the recognized set
// yield ErrUnrecognizedFormat without touching the filesystem.
func (l *Loader) Load(path string) (*Handle, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty model path")
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gguf":
		return l.loadGGUF(path)
	case ".safetensors", ".bin", ".pt", ".pth":
		return nil, ErrUnsupportedFormat(ext)
	default:
		return nil, ErrUnrecognizedFormat(ext)
	}
}

func (l *Loader) loadGGUF(path string) (*Handle, error) {
	// Metadata readback from the container header: vocabulary size,
	// embedding width, layer count. Also validates the magic before the
	// backend maps the file.
	info, err := readGGUFInfo(path)
	if err != nil {
		return nil, ErrNative(err)
	}
	model, err := backend.Load(path, backend.ContextParams{
		ContextSize: l.params.ContextSize,
		BatchSize:   l.params.BatchSize,
		Threads:     l.params.Threads,
	}, info)
	if err != nil {
		if backend.IsUnavailable(err) {
			return nil, err
		}
		return nil, ErrNative(err)
	}
	return &Handle{
		model:  model,
		info:   info,
		path:   path,
		format: FormatGGUF,
		params: l.params,
	}, nil
}

// IsSupportedFormat reports whether the path carries a recognized model
// extension, case-insensitively.
func IsSupportedFormat(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gguf", ".safetensors", ".bin", ".pt", ".pth":
		return true
	default:
		return false
	}
}
