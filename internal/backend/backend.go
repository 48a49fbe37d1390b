// Package backend defines the contract between the generation engine and the
// native inference runtime. The runtime owns tokenization, forward passes and
// logit computation; the engine only calls through this surface.
package backend

import "context"

// Token is a backend token identifier.
type Token = int32

// Info carries the metadata read back after a successful model load.
type Info struct {
	VocabSize  int
	HiddenSize int
	NumLayers  int
}

// ContextParams sizes an inference context.
type ContextParams struct {
	ContextSize int // token window (n_ctx)
	BatchSize   int // prompt-processing batch (n_batch)
	Threads     int // backend worker threads
}

// SampleParams are forwarded to backends that sample natively.
type SampleParams struct {
	Temperature float32
	TopK        int
	TopP        float32
	MaxTokens   int
	Seed        int
}

// Model is a loaded native model. Exactly one context may be open at a time;
// Close releases the context (if any) before the model.
type Model interface {
	Info() Info
	Close() error
}

// SampledModel exposes the granular decode/logit surface. The engine owns
// the sampling loop for these backends.
type SampledModel interface {
	Model
	NewContext(p ContextParams) (Context, error)
}

// Context is a stateful inference session bound to a SampledModel.
type Context interface {
	// Tokenize writes prompt tokens into buf and returns the count. When buf
	// is undersized it returns a *SizeError carrying the required length.
	Tokenize(text string, buf []Token) (int, error)
	// Decode advances the session state over the given tokens.
	Decode(tokens []Token) error
	// Logits returns the logit vector for the last decoded position.
	Logits() []float32
	// TokenText converts a token id to its text piece.
	TokenText(t Token) string
	// EOS returns the end-of-sequence token id.
	EOS() Token
	Close() error
}

// StreamingModel is implemented by backends that run the generation loop
// natively (go-llama.cpp). The engine forwards sampling parameters and
// receives tokens through onToken; returning an error from onToken stops
// generation, as does cancellation of ctx.
type StreamingModel interface {
	Model
	GenerateStream(ctx context.Context, prompt string, p SampleParams, onToken func(string) error) (string, error)
}
