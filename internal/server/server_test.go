package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ascfix/pkg/buildinfo"
	"github.com/matzehuels/ascfix/pkg/errors"
	"github.com/matzehuels/ascfix/pkg/observability"
	"github.com/matzehuels/ascfix/pkg/pipeline"
)

const diagramDoc = "┌──────────┐\n│ Service  │\n└──────────┘\n       ↓\n"

func newTestServer(t *testing.T, logs *bytes.Buffer) *httptest.Server {
	t.Helper()
	logger := log.New(logs)
	runner := pipeline.NewRunner(nil, nil, logger)
	s := New(runner, logger, Config{MaxBodyBytes: 4096, Defaults: pipeline.DefaultOptions()})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var info buildinfo.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Version != buildinfo.Version {
		t.Errorf("version = %q, want %q", info.Version, buildinfo.Version)
	}
}

func TestFix(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})

	resp := post(t, ts.URL+"/v1/fix", fixRequest{Content: diagramDoc, Mode: "diagram"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var res pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.Changed {
		t.Error("changed = false, want true")
	}
	if !strings.Contains(res.Content, "\n     ↓\n") {
		t.Errorf("content = %q, arrow not snapped", res.Content)
	}
	if id := resp.Header.Get(RequestIDHeader); id == "" || id != res.RunID {
		t.Errorf("X-Request-ID = %q, run_id = %q", id, res.RunID)
	}
	if len(res.Blocks) != 1 || res.Blocks[0].Outcome != pipeline.OutcomeRepaired {
		t.Fatalf("blocks = %+v", res.Blocks)
	}
	if q := res.Blocks[0].Quality; q == nil || !q.Acceptable() {
		t.Errorf("quality = %+v, want an acceptable report", q)
	}
}

func TestFixLists(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})
	resp := post(t, ts.URL+"/v1/fix", fixRequest{Content: "- a\n    - b\n", Lists: true})
	var res pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Content != "- a\n  - b\n" || res.Stats.ListItemsFixed != 1 {
		t.Errorf("content = %q, list_items_fixed = %d", res.Content, res.Stats.ListItemsFixed)
	}
}

func TestFixSafeModeDefault(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})
	resp := post(t, ts.URL+"/v1/fix", fixRequest{Content: diagramDoc})
	var res pipeline.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Changed {
		t.Error("safe mode changed a diagram")
	}
}

func TestInspect(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})
	resp := post(t, ts.URL+"/v1/inspect", inspectRequest{Content: "intro\n\n" + diagramDoc})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Blocks []struct {
			StartLine int `json:"start_line"`
			Detected  struct {
				Boxes []json.RawMessage `json:"boxes"`
			} `json:"detected"`
		} `json:"blocks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Blocks) != 1 || body.Blocks[0].StartLine != 2 || len(body.Blocks[0].Detected.Boxes) != 1 {
		t.Errorf("inspect = %+v", body)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})
	tests := []struct {
		name   string
		body   string
		ctype  string
		status int
		code   errors.Code
	}{
		{"bad json", `{"content":`, "application/json", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"text":"x"}`, "application/json", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad mode", `{"content":"x","mode":"fast"}`, "application/json", http.StatusBadRequest, errors.ErrCodeInvalidMode},
		{"null byte", `{"content":"a\u0000b"}`, "application/json", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too large", `{"content":"` + strings.Repeat("x", 5000) + `"}`, "application/json", http.StatusRequestEntityTooLarge, errors.ErrCodeFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/fix", tt.ctype, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatal(err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
		})
	}
}

func TestUnsupportedMediaType(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})
	resp, err := http.Post(ts.URL+"/v1/fix", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want 415", resp.StatusCode)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t, &bytes.Buffer{})
	const id = "6f1c1b2e-7d7a-4a86-9b59-2f0c6f1f4a10"

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "not a uuid")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got == "not a uuid" || got == "" {
		t.Errorf("X-Request-ID = %q, want a fresh id", got)
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func TestRequestLoggerAndHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	var logs bytes.Buffer
	ts := newTestServer(t, &logs)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if len(hooks.statuses) != 1 || hooks.statuses[0] != http.StatusOK {
		t.Errorf("hook statuses = %v, want [200]", hooks.statuses)
	}
	if out := logs.String(); !strings.Contains(out, "path=/healthz") || !strings.Contains(out, "status=200") {
		t.Errorf("log output = %q", out)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidInput, http.StatusBadRequest},
		{errors.ErrCodeFileTooLarge, http.StatusRequestEntityTooLarge},
		{errors.ErrCodeFileNotFound, http.StatusNotFound},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeCache, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.New(tt.code, "x")); got != tt.want {
			t.Errorf("statusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, nil), nil, Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
