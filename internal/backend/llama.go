//go:build llama

package backend

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// Built indicates this binary was compiled with real llama support.
var Built = true

// Load memory-maps the model file through llama.cpp on the CPU. The info
// argument carries metadata already read back from the container header.
func Load(path string, p ContextParams, info Info) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	m, err := llama.New(path, llama.SetContext(p.ContextSize))
	if err != nil {
		return nil, err
	}
	return &llamaModel{model: m, threads: p.Threads, info: info}, nil
}

// llamaModel owns the loaded model. go-llama.cpp fuses model and context and
// runs the token loop natively, so this backend is a StreamingModel.
type llamaModel struct {
	model   *llama.LLama
	threads int
	info    Info
}

func (m *llamaModel) Info() Info { return m.info }

func (m *llamaModel) GenerateStream(ctx context.Context, prompt string, p SampleParams, onToken func(string) error) (string, error) {
	if m.model == nil {
		return "", errors.New("llama model not initialized")
	}

	// Bridge token streaming to onToken and respect cancellation.
	m.model.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if err := onToken(tok); err != nil {
			return false
		}
		return true
	})
	text, err := m.model.Predict(prompt, predictOptions(p, m.threads)...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}

func (m *llamaModel) Close() error {
	if m.model != nil {
		m.model.Free()
		m.model = nil
	}
	return nil
}

func predictOptions(p SampleParams, threads int) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetTokens(maxInt(1, p.MaxTokens)),
		llama.SetThreads(maxInt(1, threads)),
		llama.SetTemperature(p.Temperature),
		llama.SetTopK(p.TopK),
		llama.SetTopP(p.TopP),
	}
	if p.Seed != 0 {
		po = append(po, llama.SetSeed(p.Seed))
	}
	return po
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
