// Package testutil provides testing utilities for CopyGuard tests.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Iron-Ham/copyguard/internal/config"
)

// TestAPIKey is the key DetectionServer accepts.
const TestAPIKey = "test-key"

// DetectionServer is a fake detection endpoint. It answers every request
// with the configured status and body and records what it received.
type DetectionServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []Recorded
}

// Recorded is one request seen by a DetectionServer.
type Recorded struct {
	Header http.Header
	Body   string
}

// NewDetectionServer starts a fake endpoint answering with status and body.
// Requests without TestAPIKey get 403. The server is closed when the test completes.
func NewDetectionServer(t *testing.T, status int, body string) *DetectionServer {
	t.Helper()

	s := &DetectionServer{status: status, body: body}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *DetectionServer) handle(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{Header: r.Header.Clone(), Body: string(data)})
	status, body := s.status, s.body
	s.mu.Unlock()

	if r.Header.Get("x-api-key") != TestAPIKey {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "Forbidden")
		return
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// Requests returns a copy of the requests received so far.
func (s *DetectionServer) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// IsolateConfig clears every configuration variable and points the config
// directory at a temporary location for the duration of the test.
func IsolateConfig(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("COPYGUARD_SETTINGS", "")
	t.Setenv("COPYGUARD_DEBUG", "")
	t.Setenv("COPYGUARD_LOG_DIR", "")
	for _, key := range config.Keys() {
		t.Setenv(key, "")
	}
}

// UseServer points DETECTOR_URL and DETECTOR_KEY at s.
func UseServer(t *testing.T, s *DetectionServer) {
	t.Helper()
	t.Setenv(config.KeyDetectorURL, s.URL)
	t.Setenv(config.KeyDetectorKey, TestAPIKey)
}
