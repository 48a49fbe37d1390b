package main

import (
	"strings"
	"testing"
)

// resetShim drops the process-wide service so each test starts unloaded.
func resetShim(t *testing.T) {
	t.Helper()
	cleanup()
	mu.Lock()
	svc = nil
	mu.Unlock()
}

func TestInitCodeBlankPathFails(t *testing.T) {
	resetShim(t)
	if got := initCode(""); got != initFailed {
		t.Fatalf("initCode(\"\") = %d, want %d", got, initFailed)
	}
	if loaded() {
		t.Fatal("failed init must not report loaded")
	}
}

func TestInitCodeFallbackIsSuccess(t *testing.T) {
	resetShim(t)
	got := initCode("model.xyz")
	if got != initFallback {
		t.Fatalf("initCode unrecognized extension = %d, want %d", got, initFallback)
	}
	// Hosts check for failure with a negative code; fallback still counts as
	// a working engine.
	if got < 0 {
		t.Fatalf("fallback load must stay in the success family, got %d", got)
	}
	if !loaded() {
		t.Fatal("fallback load must report loaded")
	}
}

func TestInitCodeZeroMeansRealModel(t *testing.T) {
	if initModel != 0 {
		t.Fatalf("real model load must report 0, constant is %d", initModel)
	}
	if initFailed >= 0 {
		t.Fatalf("failure code must be negative, constant is %d", initFailed)
	}
}

func TestGenerateNilPromptReturnsNil(t *testing.T) {
	resetShim(t)
	initCode("model.xyz")
	if out := generate(nil, 16); out != nil {
		t.Fatalf("nil prompt must yield nil, got %q", *out)
	}
}

func TestGenerateAlwaysAnswersRealPrompts(t *testing.T) {
	resetShim(t)
	initCode("model.xyz")
	prompt := "12+7"
	out := generate(&prompt, 32)
	if out == nil {
		t.Fatal("non-nil prompt must yield a string")
	}
	if !strings.Contains(*out, "19") {
		t.Fatalf("arithmetic answer missing: %q", *out)
	}
}

func TestGenerateBeforeInitReportsError(t *testing.T) {
	resetShim(t)
	prompt := "hello"
	out := generate(&prompt, 8)
	if out == nil {
		t.Fatal("errors surface as strings, not nil")
	}
	if !strings.HasPrefix(*out, "Error: ") {
		t.Fatalf("expected diagnostic string, got %q", *out)
	}
}

func TestModelInfoStableBetweenCalls(t *testing.T) {
	resetShim(t)
	initCode("model.xyz")
	a := modelInfo()
	b := modelInfo()
	if a != b {
		t.Fatalf("info must be stable while state is unchanged: %q vs %q", a, b)
	}
	if a == "" {
		t.Fatal("info must describe the fallback engine")
	}
}
