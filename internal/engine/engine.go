// Package engine orchestrates text generation: it owns the active model
// handle, runs the tokenize/decode/sample loop against the backend, and
// routes to the pattern responder whenever real inference is unavailable.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"textgend/internal/backend"
	"textgend/internal/fallback"
	"textgend/internal/loader"
	"textgend/internal/sampling"
	"textgend/internal/vocab"
)

// State is the engine lifecycle state.
type State string

const (
	StateUnloaded     State = "unloaded"
	StateLoaded       State = "loaded"
	StateContextReady State = "context-ready"
)

// LoadStatus distinguishes how a load completed.
type LoadStatus string

const (
	// StatusModel: a native model is loaded and serves inference.
	StatusModel LoadStatus = "model"
	// StatusFallback: loading did not produce a usable model; generation is
	// served by the pattern responder. Still a successful load.
	StatusFallback LoadStatus = "fallback"
)

// Source identifies which path produced a generation result.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// defaultMaxTokens applies when the caller passes a non-positive budget.
const defaultMaxTokens = 128

// Options configures a new Engine.
type Options struct {
	// Loader context sizing; zero fields use loader defaults.
	Params loader.Params
	// Optional vocabulary file for the fallback tokenizer.
	VocabPath string
	// Seed for sampling; 0 draws a fresh seed per generation.
	Seed int64
	// Logger; a zerolog.Nop() is used when unset.
	Logger *zerolog.Logger
}

// Result is the outcome of one generation call.
type Result struct {
	Text   string
	Source Source
	// Tokens emitted on the model path, or the fallback tokenizer's count of
	// prompt tokens on the fallback path.
	Tokens int
	// Diagnostic carries the internal reason when an inference failure was
	// converted into a fallback response.
	Diagnostic string
}

// Engine is a single-model generation engine. It is not safe for concurrent
// use; the service facade serializes access.
type Engine struct {
	loader      *loader.Loader
	responder   *fallback.Responder
	handle      *loader.Handle
	state       State
	useFallback bool
	loadDetail  string

	cfg        Config
	seed       int64
	vocabPath  string
	vocabulary *vocab.Vocabulary
	log        zerolog.Logger
}

// New returns an engine in the Unloaded state with default sampling config.
func New(opts Options) *Engine {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Engine{
		loader:    loader.New(opts.Params),
		responder: fallback.New(),
		state:     StateUnloaded,
		cfg:       DefaultConfig(),
		seed:      opts.Seed,
		vocabPath: opts.VocabPath,
		log:       log,
	}
}

// Load loads the model at path. Loader failures of any kind are converted
// into a successful fallback load so the engine is always ready afterwards;
// only a blank path is reported as an error. A previous handle is released
// first, so at most one model is live at any time.
func (e *Engine) Load(path string) (LoadStatus, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty model path")
	}
	if e.handle != nil {
		_ = e.handle.Close()
		e.handle = nil
	}

	h, err := e.loader.Load(path)
	if err != nil {
		e.useFallback = true
		e.loadDetail = err.Error()
		e.state = StateLoaded
		e.log.Warn().Str("path", path).Err(err).Msg("model load failed, pattern fallback active")
		return StatusFallback, nil
	}
	e.handle = h
	e.useFallback = false
	e.loadDetail = ""
	e.state = StateLoaded
	info := h.Info()
	e.log.Info().Str("path", path).Str("format", string(h.Format())).
		Int("vocab", info.VocabSize).Int("hidden", info.HiddenSize).Int("layers", info.NumLayers).
		Msg("model loaded")
	return StatusModel, nil
}

// Generate produces text for prompt, emitting tokens through onToken (which
// may be nil). It returns ErrNotLoaded before any load; inference failures
// after that are converted into a fallback response with the cause recorded
// in Result.Diagnostic, so a loaded engine always produces text. The context
// is checked between generation steps.
func (e *Engine) Generate(ctx context.Context, prompt string, maxTokens int, onToken func(string) error) (Result, error) {
	if e.state == StateUnloaded {
		return Result{}, ErrNotLoaded
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	if e.useFallback || e.handle == nil {
		return e.respondFallback(prompt, "", onToken), nil
	}

	res, err := e.generateModel(ctx, prompt, maxTokens, onToken)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		e.log.Warn().Err(err).Msg("inference failed, serving pattern response")
		return e.respondFallback(prompt, err.Error(), onToken), nil
	}
	return res, nil
}

func (e *Engine) generateModel(ctx context.Context, prompt string, maxTokens int, onToken func(string) error) (Result, error) {
	model := e.handle.Model()

	if sm, ok := model.(backend.StreamingModel); ok {
		return e.generateStreaming(ctx, sm, prompt, maxTokens, onToken)
	}

	bctx, err := e.handle.EnsureContext()
	if err != nil {
		// Not fatal to the engine: the next call retries context creation.
		return Result{}, fmt.Errorf("create context: %w", err)
	}
	e.state = StateContextReady

	tokens, err := tokenizePrompt(bctx, prompt)
	if err != nil {
		return Result{}, err
	}
	if err := bctx.Decode(tokens); err != nil {
		return Result{}, fmt.Errorf("process prompt: %w", err)
	}

	sampler := sampling.New(sampling.Config{
		Seed:        e.sampleSeed(),
		Temperature: e.cfg.Temperature,
		TopK:        e.cfg.TopK,
		TopP:        e.cfg.TopP,
	})

	var out strings.Builder
	generated := 0
	for generated < maxTokens {
		select {
		case <-ctx.Done():
			return Result{Text: out.String(), Source: SourceModel, Tokens: generated}, ctx.Err()
		default:
		}

		next := backend.Token(sampler.Sample(bctx.Logits()))
		if next == bctx.EOS() {
			break
		}
		if piece := bctx.TokenText(next); piece != "" {
			out.WriteString(piece)
			if onToken != nil {
				if err := onToken(piece); err != nil {
					return Result{Text: out.String(), Source: SourceModel, Tokens: generated}, err
				}
			}
		}
		// A decode failure mid-stream ends generation without error,
		// returning what was produced so far.
		if err := bctx.Decode([]backend.Token{next}); err != nil {
			e.log.Debug().Err(err).Int("generated", generated).Msg("decode stopped generation")
			break
		}
		generated++
	}
	return Result{Text: out.String(), Source: SourceModel, Tokens: generated}, nil
}

func (e *Engine) generateStreaming(ctx context.Context, sm backend.StreamingModel, prompt string, maxTokens int, onToken func(string) error) (Result, error) {
	tokens := 0
	wrapped := func(tok string) error {
		tokens++
		if onToken != nil {
			return onToken(tok)
		}
		return nil
	}
	text, err := sm.GenerateStream(ctx, prompt, backend.SampleParams{
		Temperature: e.cfg.Temperature,
		TopK:        e.cfg.TopK,
		TopP:        e.cfg.TopP,
		MaxTokens:   maxTokens,
		Seed:        int(e.sampleSeed()),
	}, wrapped)
	if err != nil {
		return Result{}, err
	}
	e.state = StateContextReady
	return Result{Text: text, Source: SourceModel, Tokens: tokens}, nil
}

// tokenizePrompt tokenizes with one resize-retry when the backend reports an
// undersized buffer; a second failure is terminal for the call.
func tokenizePrompt(bctx backend.Context, prompt string) ([]backend.Token, error) {
	buf := make([]backend.Token, len(prompt)+1)
	n, err := bctx.Tokenize(prompt, buf)
	if err != nil {
		se, ok := err.(*backend.SizeError)
		if !ok {
			return nil, fmt.Errorf("tokenize prompt: %w", err)
		}
		buf = make([]backend.Token, se.Required)
		n, err = bctx.Tokenize(prompt, buf)
		if err != nil {
			return nil, fmt.Errorf("tokenize prompt: %w", err)
		}
	}
	return buf[:n], nil
}

func (e *Engine) respondFallback(prompt, diagnostic string, onToken func(string) error) Result {
	text := e.responder.Respond(prompt)
	if onToken != nil {
		_ = onToken(text)
	}
	return Result{
		Text:       text,
		Source:     SourceFallback,
		Tokens:     len(e.fallbackVocab().Encode(prompt)),
		Diagnostic: diagnostic,
	}
}

// fallbackVocab lazily builds the fallback tokenizer's vocabulary.
func (e *Engine) fallbackVocab() *vocab.Vocabulary {
	if e.vocabulary == nil {
		v, fromFile := vocab.Load(e.vocabPath)
		e.vocabulary = v
		e.log.Debug().Bool("from_file", fromFile).Int("size", v.Size()).Msg("fallback vocabulary ready")
	}
	return e.vocabulary
}

func (e *Engine) sampleSeed() int64 {
	if e.seed != 0 {
		return e.seed
	}
	return time.Now().UnixNano()
}

// SetTemperature stores a clamped temperature; effective on the next call.
func (e *Engine) SetTemperature(v float32) { e.cfg.Temperature = clampTemperature(v) }

// SetTopK stores a clamped top-k; effective on the next call.
func (e *Engine) SetTopK(v int) { e.cfg.TopK = clampTopK(v) }

// SetTopP stores a clamped top-p; effective on the next call.
func (e *Engine) SetTopP(v float32) { e.cfg.TopP = clampTopP(v) }

// Config returns the sampling configuration currently in effect.
func (e *Engine) Config() Config { return e.cfg }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Loaded reports whether any load (model or fallback) has completed.
func (e *Engine) Loaded() bool { return e.state != StateUnloaded }

// Fallback reports whether generation is served by the pattern responder.
func (e *Engine) Fallback() bool { return e.useFallback || e.handle == nil }

// LoadDetail returns the diagnostic recorded for a fallback load, if any.
func (e *Engine) LoadDetail() string { return e.loadDetail }

// Info returns a human-readable description of the engine's model state.
func (e *Engine) Info() string {
	if e.state == StateUnloaded {
		return "textgend: no model loaded"
	}
	if e.Fallback() {
		return "textgend: pattern fallback active (offline rule-based responder)"
	}
	info := e.handle.Info()
	return fmt.Sprintf("textgend: %s format=%s vocab=%d hidden=%d layers=%d",
		e.handle.Path(), e.handle.Format(), info.VocabSize, info.HiddenSize, info.NumLayers)
}

// Close releases the model handle, context before model. The engine returns
// to Unloaded and may be reused with another Load.
func (e *Engine) Close() error {
	var err error
	if e.handle != nil {
		err = e.handle.Close()
		e.handle = nil
	}
	e.state = StateUnloaded
	e.useFallback = false
	e.loadDetail = ""
	return err
}
