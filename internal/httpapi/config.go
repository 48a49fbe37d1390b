package httpapi

// apiConfig groups the HTTP-layer knobs the CLI sets before the mux is
// built. Setters below are not safe to call once the server is serving.
type apiConfig struct {
	// maxBodyBytes caps request bodies on the JSON endpoints.
	maxBodyBytes int64
	// generateTimeoutSec bounds one /generate call; zero leaves only the
	// server and connection timeouts.
	generateTimeoutSec int64

	corsEnabled bool
	corsOrigins []string
	corsMethods []string
	corsHeaders []string
}

func defaultAPIConfig() apiConfig {
	return apiConfig{maxBodyBytes: 1 << 20}
}

var cfg = defaultAPIConfig()

// SetMaxBodyBytes configures the maximum request body size. Non-positive
// values restore the default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		cfg.maxBodyBytes = defaultAPIConfig().maxBodyBytes
		return
	}
	cfg.maxBodyBytes = n
}

// SetGenerateTimeoutSeconds sets the generation timeout in seconds (0
// disables).
func SetGenerateTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	cfg.generateTimeoutSec = sec
}

// SetCORSOptions configures CORS behavior. When disabled no CORS middleware
// is mounted at all.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	cfg.corsEnabled = enabled
	cfg.corsOrigins = append([]string(nil), origins...)
	cfg.corsMethods = append([]string(nil), methods...)
	cfg.corsHeaders = append([]string(nil), headers...)
}
