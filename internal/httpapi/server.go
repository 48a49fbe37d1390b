// Package httpapi exposes the generation service over HTTP with NDJSON
// streaming, status and model management endpoints, and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"textgend/internal/engine"
	"textgend/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Init(path string) (engine.LoadStatus, error)
	Cleanup()
	Generate(ctx context.Context, req types.GenerateRequest, w io.Writer, flush func()) (engine.Result, error)
	ListModels() ([]types.Model, error)
	Status() types.StatusResponse
	ModelInfo() string
	LoadDetail() string
	SetTemperature(v float32)
	SetTopK(v int)
	SetTopP(v float32)
	Config() engine.Config
	Ready() bool
}

// NewMux builds the HTTP handler for the given service.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if cfg.corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.corsOrigins,
			AllowedMethods: cfg.corsMethods,
			AllowedHeaders: cfg.corsHeaders,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	r.Post("/generate", handleGenerate(svc))

	// ListModels godoc
	// @Summary List discovered models
	// @Produce json
	// @Success 200 {object} types.ModelsResponse
	// @Router /models [get]
	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		models, err := svc.ListModels()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if models == nil {
			models = []types.Model{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.ModelsResponse{Models: models}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	// LoadModel godoc
	// @Summary Load a model file
	// @Accept json
	// @Produce json
	// @Param request body types.LoadRequest true "model path"
	// @Success 200 {object} types.LoadResponse
	// @Router /models/load [post]
	r.Post("/models/load", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.maxBodyBytes)
		var req types.LoadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Path) == "" {
			writeJSONError(w, http.StatusBadRequest, "path is required")
			return
		}
		status, err := svc.Init(req.Path)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		RecordModelLoad(string(status))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.LoadResponse{
			Status: string(status),
			Detail: svc.LoadDetail(),
		})
	})

	r.Delete("/models/current", func(w http.ResponseWriter, r *http.Request) {
		svc.Cleanup()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/model", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"info": svc.ModelInfo()})
	})

	// Status godoc
	// @Summary Server and engine status
	// @Produce json
	// @Success 200 {object} types.StatusResponse
	// @Router /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	// UpdateConfig godoc
	// @Summary Update sampling parameters (values are clamped, never rejected)
	// @Accept json
	// @Produce json
	// @Param request body types.ConfigRequest true "parameters to change"
	// @Success 200 {object} types.ConfigRequest
	// @Router /config [post]
	r.Post("/config", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, cfg.maxBodyBytes)
		var req types.ConfigRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Temperature != nil {
			svc.SetTemperature(*req.Temperature)
		}
		if req.TopK != nil {
			svc.SetTopK(*req.TopK)
		}
		if req.TopP != nil {
			svc.SetTopP(*req.TopP)
		}
		cfg := svc.Config()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(types.ConfigRequest{
			Temperature: &cfg.Temperature,
			TopK:        &cfg.TopK,
			TopP:        &cfg.TopP,
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// Generate godoc
// @Summary Generate text for a prompt, streamed as NDJSON
// @Accept json
// @Produce x-ndjson
// @Param request body types.GenerateRequest true "generation request"
// @Success 200 {object} types.GenerateResult
// @Router /generate [post]
func handleGenerate(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, cfg.maxBodyBytes)
		var req types.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson")
		var flush func()
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		start := time.Now()
		writer := io.Writer(w)
		lvl := requestLogLevel(r)
		if lvl <= zerolog.DebugLevel {
			writer = io.MultiWriter(w, &loggingLineWriter{})
		}
		if lvl <= zerolog.InfoLevel {
			logGenerate(r, 0, 0, nil, "generate start")
		}
		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if cfg.generateTimeoutSec > 0 {
			var tcancel context.CancelFunc
			joinedCtx, tcancel = context.WithTimeout(joinedCtx, time.Duration(cfg.generateTimeoutSec)*time.Second)
			defer tcancel()
		}

		res, err := svc.Generate(joinedCtx, req, writer, flush)
		if err != nil {
			// If context was canceled (client disconnect or shutdown), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := http.StatusInternalServerError
			if engine.IsNotLoaded(err) {
				status = http.StatusConflict
			} else if he, ok := err.(HTTPError); ok {
				status = he.StatusCode()
			}
			writeJSONError(w, status, err.Error())
			if lvl <= zerolog.InfoLevel {
				logGenerate(r, status, time.Since(start), err, "generate end")
			}
			return
		}
		RecordGeneration(string(res.Source), res.Tokens)
		if lvl <= zerolog.InfoLevel {
			logGenerate(r, http.StatusOK, time.Since(start), nil, "generate end")
		}
	}
}

func logGenerate(r *http.Request, status int, dur time.Duration, err error, msg string) {
	z := zlog.Info().Str("path", r.URL.Path)
	if status != 0 {
		z = z.Int("status", status).Dur("dur", dur)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg(msg)
}
