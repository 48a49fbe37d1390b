package types

// GenerateRequest represents a generation request payload.
type GenerateRequest struct {
	// Required prompt text to generate a completion for.
	// example: how do I purify water
	Prompt string `json:"prompt" example:"how do I purify water"`
	// Maximum number of new tokens to generate.
	// example: 128
	MaxTokens int `json:"max_tokens,omitempty" example:"128"`
	// If true, stream tokens as NDJSON lines. The final line carries the
	// assembled text.
	// example: true
	Stream bool `json:"stream,omitempty" example:"true"`
}

// GenerateResult is the final NDJSON line of a generation stream.
type GenerateResult struct {
	Done bool `json:"done"`
	// Full generated text.
	Content string `json:"content"`
	// Source of the text: "model" or "fallback".
	// example: fallback
	Source string `json:"source" example:"fallback"`
	// Number of tokens emitted by the model path (0 for fallback).
	// example: 42
	Tokens int `json:"tokens" example:"42"`
}

// LoadRequest asks the server to load a model file.
type LoadRequest struct {
	// Absolute path to the model file on disk.
	// example: /data/models/tinyllama.Q4_K_M.gguf
	Path string `json:"path" example:"/data/models/tinyllama.Q4_K_M.gguf"`
}

// LoadResponse reports the outcome of a load request.
type LoadResponse struct {
	// One of "model", "fallback".
	// example: fallback
	Status string `json:"status" example:"fallback"`
	// Diagnostic detail when the loader fell back (optional).
	Detail string `json:"detail,omitempty"`
}

// ConfigRequest updates sampling parameters. Values outside the allowed
// ranges are clamped, never rejected.
type ConfigRequest struct {
	Temperature *float32 `json:"temperature,omitempty" example:"0.7"`
	TopK        *int     `json:"top_k,omitempty" example:"40"`
	TopP        *float32 `json:"top_p,omitempty" example:"0.95"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// List of model files discovered in the models directory.
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Engine lifecycle state: unloaded, loaded or context-ready.
	// example: loaded
	State string `json:"state" example:"loaded"`
	// True once a load has completed (even a fallback load).
	Loaded bool `json:"loaded"`
	// True when generation is served by the pattern responder.
	Fallback bool `json:"fallback"`
	// Human-readable model description (see GET /model).
	ModelInfo string `json:"model_info"`
	// Sampling configuration currently in effect.
	Temperature float32 `json:"temperature" example:"0.7"`
	TopK        int     `json:"top_k" example:"40"`
	TopP        float32 `json:"top_p" example:"0.95"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
