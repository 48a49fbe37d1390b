package httpapi

import (
	"bytes"
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// zlog is the HTTP layer's structured logger. It defaults to stderr so debug
// mirroring works even before the CLI wires its own logger in.
var zlog = func() *zerolog.Logger {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &l
}()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// loggingLineWriter mirrors complete NDJSON lines into the structured log at
// debug level. Partial lines stay buffered until their newline arrives.
type loggingLineWriter struct {
	buf []byte
}

func (lw *loggingLineWriter) Write(p []byte) (int, error) {
	lw.buf = append(lw.buf, p...)
	for {
		idx := bytes.IndexByte(lw.buf, '\n')
		if idx < 0 {
			break
		}
		if line := lw.buf[:idx]; len(line) > 0 {
			zlog.Debug().RawJSON("line", append([]byte(nil), line...)).Msg("generate stream")
		}
		lw.buf = lw.buf[idx+1:]
	}
	return len(p), nil
}

// parseLevel maps request-supplied level names onto zerolog levels. Unknown
// names land on info rather than failing; empty and "off" disable logging.
func parseLevel(s string) zerolog.Level {
	switch s {
	case "", "off":
		return zerolog.Disabled
	case "1":
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("TEXTGEND_LOG_LEVEL"))

// requestLogLevel resolves the verbosity for one request. zerolog orders
// verbose levels lower, so callers compare with <=.
func requestLogLevel(r *http.Request) zerolog.Level {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}
