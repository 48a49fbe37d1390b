package types

// Model represents a discoverable model file on disk.
type Model struct {
	// Stable identifier (the file name).
	// example: tinyllama.Q4_K_M.gguf
	ID string `json:"id" example:"tinyllama.Q4_K_M.gguf"`
	// Human-friendly name.
	// example: tinyllama.Q4_K_M.gguf
	Name string `json:"name" example:"tinyllama.Q4_K_M.gguf"`
	// Absolute path to the model file.
	// example: /data/models/tinyllama.Q4_K_M.gguf
	Path string `json:"path" example:"/data/models/tinyllama.Q4_K_M.gguf"`
	// Container format derived from the extension.
	// example: gguf
	Format string `json:"format" example:"gguf"`
	// File size in bytes.
	// example: 668788096
	SizeBytes int64 `json:"size_bytes" example:"668788096"`
}
