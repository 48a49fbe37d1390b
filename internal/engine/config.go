package engine

// Config holds the sampling parameters. Out-of-range values are clamped on
// set, never rejected; changes take effect on the next generation call.
type Config struct {
	Temperature float32
	TopK        int
	TopP        float32
}

// Clamp bounds.
const (
	MinTemperature = 0.1
	MaxTemperature = 2.0
	MinTopK        = 1
	MaxTopK        = 100
	MinTopP        = 0.1
	MaxTopP        = 1.0
)

// DefaultConfig mirrors the startup defaults of the original service.
func DefaultConfig() Config {
	return Config{Temperature: 0.7, TopK: 40, TopP: 0.95}
}

func clampTemperature(v float32) float32 {
	return clampF32(v, MinTemperature, MaxTemperature)
}

func clampTopK(v int) int {
	if v < MinTopK {
		return MinTopK
	}
	if v > MaxTopK {
		return MaxTopK
	}
	return v
}

func clampTopP(v float32) float32 {
	return clampF32(v, MinTopP, MaxTopP)
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
