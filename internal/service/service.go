// Package service is the facade in front of the generation engine. It owns at
// most one engine and serializes lifecycle and generation calls, so callers
// (the HTTP server, the C shim) never touch the engine concurrently.
package service

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"textgend/internal/engine"
	"textgend/internal/registry"
	"textgend/pkg/types"
)

// Options configures a new Service.
type Options struct {
	Engine engine.Options
	// Directory scanned by ListModels; empty disables listing.
	ModelsDir string
	Logger    *zerolog.Logger
}

// Service wraps a single engine behind a mutex.
type Service struct {
	mu      sync.Mutex
	eng     *engine.Engine
	opts    Options
	started time.Time
	log     zerolog.Logger
}

// New returns a service with no model loaded.
func New(opts Options) *Service {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Service{
		eng:     engine.New(opts.Engine),
		opts:    opts,
		started: time.Now(),
		log:     log,
	}
}

// Init loads the model at path. A fallback load still reports success; the
// returned status says which path will serve generation.
func (s *Service) Init(path string) (engine.LoadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Load(path)
}

// Cleanup releases the loaded model. The service stays usable; a later Init
// loads again.
func (s *Service) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.eng.Close(); err != nil {
		s.log.Warn().Err(err).Msg("model release reported an error")
	}
}

// GenerateText runs one generation call and returns the result. This is the
// entry point for callers that want the whole text at once.
func (s *Service) GenerateText(ctx context.Context, prompt string, maxTokens int) (engine.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Generate(ctx, prompt, maxTokens, nil)
}

// Generate runs one generation call and streams NDJSON to w: one
// {"token":...} line per emitted token when req.Stream is set, then a final
// result line. The result is also returned so callers can observe it.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest, w io.Writer, flush func()) (engine.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var onToken func(string) error
	if req.Stream {
		onToken = func(tok string) error {
			if _, err := w.Write(tokenLineJSON(tok)); err != nil {
				return err
			}
			if flush != nil {
				flush()
			}
			return nil
		}
	}

	res, err := s.eng.Generate(ctx, req.Prompt, req.MaxTokens, onToken)
	if err != nil {
		return res, err
	}

	final := types.GenerateResult{
		Done:    true,
		Content: res.Text,
		Source:  string(res.Source),
		Tokens:  res.Tokens,
	}
	jb, _ := json.Marshal(final)
	if _, err := w.Write(append(jb, '\n')); err != nil {
		return res, err
	}
	if flush != nil {
		flush()
	}
	return res, nil
}

// tokenLineJSON formats a token NDJSON line using json.Marshal for correctness.
func tokenLineJSON(tok string) []byte {
	type tokenMsg struct {
		Token string `json:"token"`
	}
	b, _ := json.Marshal(tokenMsg{Token: tok})
	return append(b, '\n')
}

// IsLoaded reports whether a load (model or fallback) has completed.
func (s *Service) IsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Loaded()
}

// Ready mirrors IsLoaded for readiness probes.
func (s *Service) Ready() bool { return s.IsLoaded() }

// ModelInfo returns a human-readable description of the loaded model.
func (s *Service) ModelInfo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Info()
}

// Status builds the detailed status response for /status.
func (s *Service) Status() types.StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.eng.Config()
	now := time.Now()
	return types.StatusResponse{
		State:          string(s.eng.State()),
		Loaded:         s.eng.Loaded(),
		Fallback:       s.eng.Fallback(),
		ModelInfo:      s.eng.Info(),
		Temperature:    cfg.Temperature,
		TopK:           cfg.TopK,
		TopP:           cfg.TopP,
		UptimeSeconds:  int64(now.Sub(s.started).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}

// SetTemperature stores a clamped temperature.
func (s *Service) SetTemperature(v float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.SetTemperature(v)
}

// SetTopK stores a clamped top-k.
func (s *Service) SetTopK(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.SetTopK(v)
}

// SetTopP stores a clamped top-p.
func (s *Service) SetTopP(v float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.SetTopP(v)
}

// Config returns the sampling configuration currently in effect.
func (s *Service) Config() engine.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Config()
}

// ListModels scans the configured models directory.
func (s *Service) ListModels() ([]types.Model, error) {
	if s.opts.ModelsDir == "" {
		return nil, nil
	}
	return registry.LoadDir(s.opts.ModelsDir)
}

// LoadDetail returns the diagnostic recorded for a fallback load, if any.
func (s *Service) LoadDetail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.LoadDetail()
}
