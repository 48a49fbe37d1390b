package httpapi

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.Disabled,
		"off":     zerolog.Disabled,
		"1":       zerolog.DebugLevel,
		"error":   zerolog.ErrorLevel,
		"warn":    zerolog.WarnLevel,
		"info":    zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"bogus":   zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevelOverrides(t *testing.T) {
	r := httptest.NewRequest("POST", "/generate?log=1", nil)
	if got := requestLogLevel(r); got != zerolog.DebugLevel {
		t.Fatalf("query log=1: %v", got)
	}
	r = httptest.NewRequest("POST", "/generate?log=error", nil)
	if got := requestLogLevel(r); got != zerolog.ErrorLevel {
		t.Fatalf("query log=error: %v", got)
	}
	r = httptest.NewRequest("POST", "/generate", nil)
	r.Header.Set("X-Log-Level", "debug")
	if got := requestLogLevel(r); got != zerolog.DebugLevel {
		t.Fatalf("header override: %v", got)
	}
	r = httptest.NewRequest("POST", "/generate", nil)
	if got := requestLogLevel(r); got != defaultLogLevel {
		t.Fatalf("default: %v", got)
	}
}

func TestLoggingLineWriterSplitsLines(t *testing.T) {
	lw := &loggingLineWriter{}
	if _, err := lw.Write([]byte("{\"token\":\"a\"}\n{\"tok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if string(lw.buf) != "{\"tok" {
		t.Fatalf("residual buf = %q", lw.buf)
	}
	if _, err := lw.Write([]byte("en\":\"b\"}\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(lw.buf) != 0 {
		t.Fatalf("buf not drained: %q", lw.buf)
	}
}

func TestLoggingLineWriterMirrorsThroughLogger(t *testing.T) {
	prev := zlog
	t.Cleanup(func() { zlog = prev })

	var out bytes.Buffer
	SetLogger(zerolog.New(&out))

	lw := &loggingLineWriter{}
	if _, err := lw.Write([]byte("{\"token\":\"hi\"}\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "generate stream") {
		t.Fatalf("mirrored line missing message: %q", got)
	}
	if !strings.Contains(got, "\"token\":\"hi\"") {
		t.Fatalf("mirrored line missing payload: %q", got)
	}
}
