package loader

import "textgend/internal/backend"

// Handle owns a loaded native model and, once created, its inference context.
// Ownership is exclusive: the handle is never duplicated and Close releases
// the context before the model, unconditionally.
type Handle struct {
	model  backend.Model
	ctx    backend.Context
	info   backend.Info
	path   string
	format Format
	params Params
}

// NewHandle wraps an already-loaded backend model. Load is the usual entry
// point; this constructor exists for alternative backends and tests.
func NewHandle(model backend.Model, info backend.Info, path string, format Format, params Params) *Handle {
	return &Handle{model: model, info: info, path: path, format: format, params: params}
}

func (h *Handle) Model() backend.Model { return h.model }
func (h *Handle) Info() backend.Info   { return h.info }
func (h *Handle) Path() string         { return h.path }
func (h *Handle) Format() Format       { return h.format }

// EnsureContext lazily creates the inference context for backends that expose
// the granular decode surface. Creation failure leaves the handle usable so
// a later call can retry.
func (h *Handle) EnsureContext() (backend.Context, error) {
	if h.ctx != nil {
		return h.ctx, nil
	}
	sm, ok := h.model.(backend.SampledModel)
	if !ok {
		return nil, backend.ErrUnavailable("backend does not expose a decode context")
	}
	ctx, err := sm.NewContext(backend.ContextParams{
		ContextSize: h.params.ContextSize,
		BatchSize:   h.params.BatchSize,
		Threads:     h.params.Threads,
	})
	if err != nil {
		return nil, err
	}
	h.ctx = ctx
	return ctx, nil
}

// HasContext reports whether the inference context has been created.
func (h *Handle) HasContext() bool { return h.ctx != nil }

// Close releases the context first, then the model.
func (h *Handle) Close() error {
	var firstErr error
	if h.ctx != nil {
		firstErr = h.ctx.Close()
		h.ctx = nil
	}
	if h.model != nil {
		if err := h.model.Close(); firstErr == nil {
			firstErr = err
		}
		h.model = nil
	}
	return firstErr
}
