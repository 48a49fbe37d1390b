package httpapi

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"textgend/internal/engine"
	"textgend/internal/service"
	"textgend/pkg/types"
)

func newTestMux(t *testing.T, opts service.Options) (http.Handler, *service.Service) {
	t.Helper()
	svc := service.New(opts)
	return NewMux(svc), svc
}

func postJSON(t *testing.T, mux http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rr.Code, rr.Body.String())
	}
}

func TestReadyzTracksLoad(t *testing.T) {
	mux, svc := newTestMux(t, service.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz before load = %d", rr.Code)
	}

	if _, err := svc.Init("/nonexistent/model.xyz"); err != nil {
		t.Fatalf("init: %v", err)
	}
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("readyz after load = %d", rr.Code)
	}
}

func TestGenerateRejectsWrongContentType(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("prompt=hi"))
	req.Header.Set("Content-Type", "text/plain")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestGenerateRejectsInvalidBody(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	if rr := postJSON(t, mux, "/generate", "{not json"); rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid body status = %d", rr.Code)
	}
	if rr := postJSON(t, mux, "/generate", `{"prompt":"  "}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("blank prompt status = %d", rr.Code)
	}
}

func TestGenerateBeforeLoadIsConflict(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	rr := postJSON(t, mux, "/generate", `{"prompt":"hello"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &er); err != nil {
		t.Fatalf("error body: %v", err)
	}
	if er.Code != http.StatusConflict || er.Error == "" {
		t.Fatalf("error payload = %+v", er)
	}
}

func TestGenerateStreamsNDJSON(t *testing.T) {
	mux, svc := newTestMux(t, service.Options{})
	if _, err := svc.Init("/nonexistent/model.xyz"); err != nil {
		t.Fatalf("init: %v", err)
	}
	rr := postJSON(t, mux, "/generate", `{"prompt":"hello","stream":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Fatalf("content type = %q", ct)
	}
	sc := bufio.NewScanner(bytes.NewReader(rr.Body.Bytes()))
	var last map[string]any
	n := 0
	for sc.Scan() {
		last = nil
		if err := json.Unmarshal(sc.Bytes(), &last); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		n++
	}
	if n < 2 || last["done"] != true || last["source"] != "fallback" {
		t.Fatalf("stream lines=%d last=%v", n, last)
	}
}

func TestLoadAndUnloadEndpoints(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})

	if rr := postJSON(t, mux, "/models/load", `{"path":""}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("blank path status = %d", rr.Code)
	}

	rr := postJSON(t, mux, "/models/load", `{"path":"/nonexistent/model.xyz"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("load status = %d body=%s", rr.Code, rr.Body.String())
	}
	var lr types.LoadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &lr); err != nil {
		t.Fatalf("load body: %v", err)
	}
	if lr.Status != string(engine.StatusFallback) || lr.Detail == "" {
		t.Fatalf("load response = %+v", lr)
	}

	req := httptest.NewRequest(http.MethodDelete, "/models/current", nil)
	rr2 := httptest.NewRecorder()
	mux.ServeHTTP(rr2, req)
	if rr2.Code != http.StatusNoContent {
		t.Fatalf("unload status = %d", rr2.Code)
	}

	rr2 = httptest.NewRecorder()
	mux.ServeHTTP(rr2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rr2.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz after unload = %d", rr2.Code)
	}
}

func TestModelsEndpoint(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.gguf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	mux, _ := newTestMux(t, service.Options{ModelsDir: dir})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/models", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var mr types.ModelsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &mr); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(mr.Models) != 1 || mr.Models[0].ID != "m.gguf" {
		t.Fatalf("models = %+v", mr.Models)
	}
}

func TestModelsEndpointEmptyListIsArray(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/models", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"models":[]`) {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestConfigEndpointClamps(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	rr := postJSON(t, mux, "/config", `{"temperature":9.5,"top_k":0}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}
	var cr types.ConfigRequest
	if err := json.Unmarshal(rr.Body.Bytes(), &cr); err != nil {
		t.Fatalf("body: %v", err)
	}
	if cr.Temperature == nil || *cr.Temperature != 2.0 {
		t.Fatalf("temperature = %v", cr.Temperature)
	}
	if cr.TopK == nil || *cr.TopK != 1 {
		t.Fatalf("top_k = %v", cr.TopK)
	}
	// untouched field reports the default
	if cr.TopP == nil || *cr.TopP != 0.95 {
		t.Fatalf("top_p = %v", cr.TopP)
	}
}

func TestStatusEndpoint(t *testing.T) {
	mux, svc := newTestMux(t, service.Options{})
	if _, err := svc.Init("/nonexistent/model.xyz"); err != nil {
		t.Fatalf("init: %v", err)
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var st types.StatusResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("body: %v", err)
	}
	if !st.Loaded || !st.Fallback || st.State != string(engine.StateLoaded) {
		t.Fatalf("status = %+v", st)
	}
}

func TestModelInfoEndpoint(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/model", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if !strings.Contains(body["info"], "no model loaded") {
		t.Fatalf("info = %q", body["info"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux, _ := newTestMux(t, service.Options{})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK || rr.Body.Len() == 0 {
		t.Fatalf("metrics: %d len=%d", rr.Code, rr.Body.Len())
	}
}
