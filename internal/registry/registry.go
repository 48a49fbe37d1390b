// Package registry discovers model files on disk.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"textgend/internal/common/fsutil"
	"textgend/internal/loader"
	"textgend/pkg/types"
)

// LoadDir scans a directory for model files with a recognized extension and
// builds a registry from filenames. ID is the full filename (including
// extension); Path is the absolute file path. The result is sorted by ID.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !loader.IsSupportedFormat(name) {
			continue
		}
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		models = append(models, types.Model{
			ID:        name,
			Name:      name,
			Path:      filepath.Join(abs, name),
			Format:    formatOf(name),
			SizeBytes: size,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].ID < models[j].ID })
	return models, nil
}

// formatOf derives the container format label from the extension.
func formatOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gguf":
		return "gguf"
	case ".safetensors":
		return "safetensors"
	case ".bin", ".pt", ".pth":
		return "pytorch"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}
