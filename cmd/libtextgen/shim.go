package main

import (
	"context"
	"sync"

	"textgend/internal/engine"
	"textgend/internal/service"
)

// Result codes reported through init_model. Zero means a real model is
// serving, positive means the pattern fallback is serving, negative means
// setup failed and no engine exists.
const (
	initFailed   = -1
	initModel    = 0
	initFallback = 1
)

var (
	mu  sync.Mutex
	svc *service.Service
)

// getService returns the process-wide service, creating it on first use.
// Callers must hold mu.
func getService() *service.Service {
	if svc == nil {
		svc = service.New(service.Options{})
	}
	return svc
}

// initCode loads path into the process-wide service and maps the outcome to
// an ABI code. Only malformed arguments produce initFailed; unloadable model
// files come back initFallback because the service keeps answering.
func initCode(path string) int {
	mu.Lock()
	defer mu.Unlock()
	status, err := getService().Init(path)
	if err != nil {
		return initFailed
	}
	if status == engine.StatusFallback {
		return initFallback
	}
	return initModel
}

func cleanup() {
	mu.Lock()
	defer mu.Unlock()
	if svc != nil {
		svc.Cleanup()
	}
}

func loaded() bool {
	mu.Lock()
	defer mu.Unlock()
	return svc != nil && svc.IsLoaded()
}

// generate returns nil only when the prompt pointer itself was null. For any
// real prompt the result is a printable string, an "Error: ..." diagnostic
// included.
func generate(prompt *string, maxTokens int) *string {
	if prompt == nil {
		return nil
	}
	mu.Lock()
	s := getService()
	mu.Unlock()

	res, err := s.GenerateText(context.Background(), *prompt, maxTokens)
	if err != nil {
		out := "Error: " + err.Error()
		return &out
	}
	return &res.Text
}

func modelInfo() string {
	mu.Lock()
	defer mu.Unlock()
	return getService().ModelInfo()
}

func setTemperature(v float32) {
	mu.Lock()
	defer mu.Unlock()
	getService().SetTemperature(v)
}

func setTopK(v int) {
	mu.Lock()
	defer mu.Unlock()
	getService().SetTopK(v)
}

func setTopP(v float32) {
	mu.Lock()
	defer mu.Unlock()
	getService().SetTopP(v)
}
