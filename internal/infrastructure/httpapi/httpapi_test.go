package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"LessonAnalyzer/internal/config"
	"LessonAnalyzer/internal/domain"
	"LessonAnalyzer/internal/infrastructure/llm"
	"LessonAnalyzer/internal/usecase"
	"LessonAnalyzer/internal/vibe"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// upstream fakes the messages API and counts the calls it receives.
type upstream struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := &upstream{}
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(u.server.Close)
	return u
}

func newTestRouter(t *testing.T, baseURL, apiKey string) *gin.Engine {
	t.Helper()

	cfg := config.Default()
	cfg.Anthropic.BaseURL = baseURL
	cfg.Anthropic.APIKey = apiKey
	cfg.Anthropic.Timeout = 5 * time.Second

	vibes := vibe.Default()
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Client: llm.NewAnthropicClient(cfg.Anthropic, nil),
		Vibes:  vibes,
	})
	return NewRouter(RouterConfig{Server: cfg.Server, Analyzer: pipeline, Vibes: vibes})
}

func post(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return rec, decoded
}

func messagesBody(text string) string {
	raw, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(raw)
}

func TestAnalyzeMissingFields(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusOK, messagesBody("{}"))
	router := newTestRouter(t, up.server.URL, "test-key")

	for _, body := range []string{
		`{"content":"","vibe":"engaging"}`,
		`{"vibe":"engaging"}`,
		`{"content":"Cells"}`,
		`not json`,
		``,
	} {
		rec, decoded := post(t, router, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
		if diff := cmp.Diff(map[string]any{"error": "Content and vibe are required"}, decoded); diff != "" {
			t.Fatalf("body %q: unexpected payload (-want +got):\n%s", body, diff)
		}
	}
	if n := up.calls.Load(); n != 0 {
		t.Fatalf("expected no upstream call, got %d", n)
	}
}

func TestAnalyzeMissingCredential(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusOK, messagesBody("{}"))
	router := newTestRouter(t, up.server.URL, "")

	rec, decoded := post(t, router, `{"content":"x","vibe":"creative"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decoded["error"] != "ANTHROPIC_API_KEY not configured" {
		t.Fatalf("unexpected error field: %v", decoded["error"])
	}
	if msg, _ := decoded["message"].(string); msg == "" {
		t.Fatalf("expected remediation message, got %v", decoded)
	}
	if n := up.calls.Load(); n != 0 {
		t.Fatalf("expected no upstream call, got %d", n)
	}
}

func TestAnalyzeExtractedResult(t *testing.T) {
	t.Parallel()

	answer := `Here you go: {"contentType":"Lecture","keyTopics":["A","B","C"],"learningObjectives":["X","Y","Z"],` +
		`"suggestedInteractions":["Q1","Q2","Q3","Q4"],"valueProposition":"V","targetAudience":"T",` +
		`"estimatedDuration":"45 minutes","difficulty":"Beginner","vibe":"professional"}`
	up := newUpstream(t, http.StatusOK, messagesBody(answer))
	router := newTestRouter(t, up.server.URL, "test-key")

	rec, decoded := post(t, router, `{"content":"Cells","vibe":"creative"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	want := map[string]any{
		"contentType":           "Lecture",
		"keyTopics":             []any{"A", "B", "C"},
		"learningObjectives":    []any{"X", "Y", "Z"},
		"suggestedInteractions": []any{"Q1", "Q2", "Q3", "Q4"},
		"valueProposition":      "V",
		"targetAudience":        "T",
		"estimatedDuration":     "45 minutes",
		"difficulty":            "Beginner",
		"vibe":                  "creative",
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestAnalyzeRecoverableUpstreamFailure(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusPaymentRequired, `{"type":"error","error":{"type":"billing_error","message":"payment required"}}`)
	router := newTestRouter(t, up.server.URL, "test-key")

	rec, decoded := post(t, router, `{"content":"x","vibe":"creative"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decoded["isMock"] != true || decoded["vibe"] != "creative" || decoded["mockMessage"] != usecase.DemoMessage {
		t.Fatalf("unexpected demo result: %v", decoded)
	}
}

func TestAnalyzeTerminalUpstreamFailure(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	router := newTestRouter(t, up.server.URL, "test-key")

	rec, decoded := post(t, router, `{"content":"x","vibe":"creative"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	want := map[string]any{"error": "Failed to analyze content", "details": "invalid x-api-key"}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestAnalyzeUnparsableAnswer(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusOK, messagesBody("I cannot help with that."))
	router := newTestRouter(t, up.server.URL, "test-key")

	rec, decoded := post(t, router, `{"content":"x","vibe":"academic"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := decoded["isMock"]; ok {
		t.Fatalf("generic fallback must not be mock-flagged: %v", decoded)
	}
	if decoded["vibe"] != "academic" || decoded["contentType"] != "Short-form content" {
		t.Fatalf("unexpected generic result: %v", decoded)
	}
}

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) Analyze(context.Context, domain.RawInput) (domain.AnalysisResult, error) {
	return domain.AnalysisResult{}, f.err
}

func TestAnalyzeUnexpectedError(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{
		Server:   config.Default().Server,
		Analyzer: failingAnalyzer{err: errors.New("boom")},
	})

	rec, decoded := post(t, router, `{"content":"x","vibe":"creative"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if diff := cmp.Diff(map[string]any{"error": "Internal server error", "message": "boom"}, decoded); diff != "" {
		t.Fatalf("unexpected payload (-want +got):\n%s", diff)
	}
}

func TestAnalyzeBodyLimit(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Server
	cfg.MaxBodyBytes = 64
	router := NewRouter(RouterConfig{Server: cfg, Analyzer: failingAnalyzer{err: errors.New("unreachable")}})

	body := `{"content":"` + strings.Repeat("a", 256) + `","vibe":"creative"}`
	rec, _ := post(t, router, body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestVibesAndHealthcheck(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{Server: config.Default().Server, Vibes: vibe.Default()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthcheck: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/vibes", nil))
	var payload struct {
		Vibes []vibe.Vibe `json:"vibes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode vibes: %v", err)
	}
	if len(payload.Vibes) != 8 || payload.Vibes[0].Name != "academic" {
		t.Fatalf("unexpected vibes: %+v", payload.Vibes)
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{Server: config.Default().Server})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if got := rec.Header().Get(RequestIDHeader); len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}
