package detector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/copyguard/internal/errors"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testRequest() Request {
	return NewRequest("req-1", "print('hi')", time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC))
}

func TestNewRequest(t *testing.T) {
	req := testRequest()
	if req.Timestamp != "2025-03-04T05:06:07.008Z" {
		t.Errorf("Timestamp = %q", req.Timestamp)
	}
	if !strings.HasPrefix(req.UserAgent, "CopyGuard/") {
		t.Errorf("UserAgent = %q", req.UserAgent)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "req-1") {
		t.Errorf("request ID leaked into body: %s", data)
	}
	for _, field := range []string{`"code"`, `"timestamp"`, `"userAgent"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("body %s missing %s", data, field)
		}
	}
}

func TestHTTPClient_Detect_SendsRequest(t *testing.T) {
	var got Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing or invalid API key header")
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_, _ = io.WriteString(w, `{"result":{"label":"Safe","confidence":97,"raw":"ok"}}`)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key", WithUserAgent("test-agent"))
	req := testRequest()
	req.UserAgent = ""
	if _, err := client.Detect(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != "print('hi')" {
		t.Errorf("code = %q", got.Code)
	}
	if got.UserAgent != "test-agent" {
		t.Errorf("userAgent = %q, want test-agent", got.UserAgent)
	}
	if got.Timestamp != "2025-03-04T05:06:07.008Z" {
		t.Errorf("timestamp = %q", got.Timestamp)
	}
}

func TestHTTPClient_Detect_Success(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"result":{"label":"Safe","confidence":97,"raw":"ok"}}`)

	result, err := NewHTTPClient(server.URL, "k").Detect(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Label != "Safe" {
		t.Errorf("Label = %q, want Safe", result.Label)
	}
	if result.Confidence != 97 {
		t.Errorf("Confidence = %v, want 97", result.Confidence)
	}
	if result.RawText() != "ok" {
		t.Errorf("RawText() = %q, want ok", result.RawText())
	}
}

func TestHTTPClient_Detect_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"500 with text", http.StatusInternalServerError, "internal failure", "internal failure"},
		{"500 with JSON string", http.StatusInternalServerError, `"internal failure"`, "internal failure"},
		{"502 empty body", http.StatusBadGateway, "", "HTTP Error 502: Bad Gateway"},
		{"403 whitespace body", http.StatusForbidden, "  \n", "HTTP Error 403: Forbidden"},
		{"invalid JSON", http.StatusOK, "<html>oops</html>", "Invalid JSON response: <html>oops</html>..."},
		{"missing result", http.StatusOK, `{"status":"ok"}`, "Invalid response format from server"},
		{"null result", http.StatusOK, `{"result":null}`, "Invalid response format from server"},
		{"false result", http.StatusOK, `{"result":false}`, "Invalid response format from server"},
		{"zero result", http.StatusOK, `{"result":0}`, "Invalid response format from server"},
		{"empty string result", http.StatusOK, `{"result":""}`, "Invalid response format from server"},
		{"array body", http.StatusOK, `[1,2]`, "Invalid response format from server"},
		{"long invalid body", http.StatusOK, strings.Repeat("x", 500), "Invalid JSON response: " + strings.Repeat("x", 200) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			_, err := NewHTTPClient(server.URL, "k").Detect(context.Background(), testRequest())
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Classify(err) != errors.KindProtocol {
				t.Fatalf("Classify() = %v, want protocol", errors.Classify(err))
			}
			if got := errors.UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			var protoErr *errors.ProtocolError
			if errors.As(err, &protoErr) && protoErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", protoErr.StatusCode, tt.status)
			}
		})
	}
}

func TestHTTPClient_Detect_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPClient(server.URL, "k").Detect(ctx, testRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Classify(err) != errors.KindTimeout {
		t.Fatalf("Classify(%v) = %v, want timeout", err, errors.Classify(err))
	}
	if !errors.IsRetryable(err) {
		t.Error("timeout should be retryable")
	}
	if got := errors.UserMessage(err); got != errors.MessageTimeout {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPClient_Detect_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPClient(url, "k").Detect(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Classify(err) != errors.KindNetwork {
		t.Fatalf("Classify(%v) = %v, want network", err, errors.Classify(err))
	}
	if got := errors.UserMessage(err); got != errors.MessageNetwork {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPClient_Detect_Canceled(t *testing.T) {
	server := newTestServer(t, http.StatusOK, `{"result":{"label":"Safe"}}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPClient(server.URL, "k").Detect(ctx, testRequest())
	if errors.Classify(err) != errors.KindNetwork {
		t.Errorf("Classify(%v) = %v, want network", err, errors.Classify(err))
	}
}

func TestHTTPClient_Detect_CapsBody(t *testing.T) {
	body := fmt.Sprintf(`{"result":{"label":"Safe","raw":"%s"}}`, strings.Repeat("a", maxBodyBytes))
	server := newTestServer(t, http.StatusOK, body)

	_, err := NewHTTPClient(server.URL, "k").Detect(context.Background(), testRequest())
	if errors.Classify(err) != errors.KindProtocol {
		t.Errorf("Classify(%v) = %v, want protocol for truncated body", err, errors.Classify(err))
	}
}

func TestNewHTTPClient_Options(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c := NewHTTPClient("https://example.com", "k", WithHTTPClient(hc), WithHTTPClient(nil), WithLogger(nil))
	if c.httpClient != hc {
		t.Error("WithHTTPClient(nil) should not replace the client")
	}
	if c.logger == nil {
		t.Error("logger should default to a no-op logger")
	}
	if c.Endpoint() != "https://example.com" {
		t.Errorf("Endpoint() = %q", c.Endpoint())
	}
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestHTTPClient_Detect_UsesServerReasonPhrase(t *testing.T) {
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: 599,
			Status:     "599 Upstream Melted",
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})
	client := NewHTTPClient("https://detector.invalid/detect", "k",
		WithHTTPClient(&http.Client{Transport: transport}))

	_, err := client.Detect(context.Background(), testRequest())
	if got := errors.UserMessage(err); got != "HTTP Error 599: Upstream Melted" {
		t.Errorf("UserMessage() = %q, want server reason phrase", got)
	}
}

func TestReasonPhrase(t *testing.T) {
	tests := []struct {
		code   int
		status string
		want   string
	}{
		{503, "503 Service Unavailable", "Service Unavailable"},
		{503, "503 Down For Maintenance", "Down For Maintenance"},
		{502, "502", "Bad Gateway"},
		{404, "", "Not Found"},
		{599, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := reasonPhrase(tt.code, tt.status); got != tt.want {
				t.Errorf("reasonPhrase(%d, %q) = %q, want %q", tt.code, tt.status, got, tt.want)
			}
		})
	}
}
