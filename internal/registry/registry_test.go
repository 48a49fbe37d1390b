package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoadDirFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"a.gguf",
		"b.GGUF", // case-insensitive
		"c.safetensors",
		"d.bin",
		"notes.txt",
		"readme.md",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.gguf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	models, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(models) != 4 {
		t.Fatalf("expected 4 models, got %d: %+v", len(models), models)
	}
	// sorted by ID
	for i := 1; i < len(models); i++ {
		if models[i-1].ID > models[i].ID {
			t.Fatalf("not sorted: %+v", models)
		}
	}
	for _, m := range models {
		if m.ID != m.Name || !filepath.IsAbs(m.Path) {
			t.Fatalf("bad entry: %+v", m)
		}
		if m.SizeBytes != 1 {
			t.Fatalf("size not recorded: %+v", m)
		}
	}
}

func TestLoadDirFormats(t *testing.T) {
	dir := t.TempDir()
	want := map[string]string{
		"a.gguf":        "gguf",
		"b.safetensors": "safetensors",
		"c.bin":         "pytorch",
		"d.pt":          "pytorch",
	}
	for f := range want {
		if err := os.WriteFile(filepath.Join(dir, f), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	models, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, m := range models {
		if want[m.ID] != m.Format {
			t.Fatalf("format for %s = %q, want %q", m.ID, m.Format, want[m.ID])
		}
	}
}

func TestLoadDirExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir on this platform: %v", err)
	}
	hTmp, err := os.MkdirTemp(home, "textgend-registry-*")
	if err != nil {
		t.Skipf("cannot create temp under home: %v", err)
	}
	defer os.RemoveAll(hTmp)
	if err := os.WriteFile(filepath.Join(hTmp, "x.gguf"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var tildePath string
	if runtime.GOOS == "windows" {
		tildePath = filepath.Join("~", filepath.Base(hTmp))
	} else {
		tildePath = "~/" + filepath.Base(hTmp)
	}
	models, err := LoadDir(tildePath)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(models) != 1 || models[0].ID != "x.gguf" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
