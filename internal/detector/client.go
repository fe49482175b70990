package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/copyguard/internal/errors"
	"github.com/Iron-Ham/copyguard/internal/logging"
	"github.com/Iron-Ham/copyguard/internal/util"
)

const (
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 1 << 20

	// invalidJSONPreview is how many characters of an unparseable body are quoted.
	invalidJSONPreview = 200

	msgInvalidFormat = "Invalid response format from server"
)

// Client sends code to the Detection API.
type Client interface {
	// Detect classifies req.Code. The returned error is one of the
	// TimeoutError, NetworkError or ProtocolError types.
	Detect(ctx context.Context, req Request) (*Result, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	endpoint   string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *logging.Logger
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header and the userAgent body field
// for requests that do not set one.
func WithUserAgent(ua string) ClientOption {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient creates a client for the given endpoint and API key. The
// request deadline comes from the context passed to Detect.
func NewHTTPClient(endpoint, apiKey string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		userAgent:  UserAgent(),
		httpClient: &http.Client{},
		logger:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// Detect POSTs req to the endpoint and classifies the outcome.
func (c *HTTPClient) Detect(ctx context.Context, req Request) (*Result, error) {
	log := c.logger.WithComponent("detector").WithRequest(req.ID)
	start := time.Now()

	if req.UserAgent == "" {
		req.UserAgent = c.userAgent
	}
	reqBytes, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBytes))
	if err != nil {
		return nil, errors.NewNetworkError(c.endpoint, errors.Wrap(err, "create request"))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("User-Agent", c.userAgent)

	log.Debug("sending detection request", "endpoint", c.endpoint, "code_length", len(req.Code))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = c.transportError(ctx, err, time.Since(start))
		log.Warn("detection request failed", "error", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = c.transportError(ctx, errors.Wrap(err, "read response"), time.Since(start))
		log.Warn("detection response unreadable", "error", err.Error())
		return nil, err
	}

	result, err := c.decode(resp, body)
	duration := time.Since(start)
	if err != nil {
		log.Warn("detection request rejected",
			"status", resp.StatusCode,
			"error", err.Error(),
			"duration_ms", duration.Milliseconds())
		return nil, err
	}

	log.Info("detection completed",
		"status", resp.StatusCode,
		"label", result.Label,
		"duration_ms", duration.Milliseconds())
	return result, nil
}

// transportError classifies a failure to obtain a response.
func (c *HTTPClient) transportError(ctx context.Context, err error, elapsed time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewTimeoutError("detect", elapsed.Round(time.Millisecond)).WithCause(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTimeoutError("detect", elapsed.Round(time.Millisecond)).WithCause(err)
	}
	return errors.NewNetworkError(c.endpoint, err)
}

// decode turns a received response into a Result or a ProtocolError.
func (c *HTTPClient) decode(resp *http.Response, body []byte) (*Result, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewProtocolError(statusMessage(resp.StatusCode, resp.Status, body)).
			WithStatus(resp.StatusCode, resp.Status)
	}

	if !json.Valid(body) {
		msg := fmt.Sprintf("Invalid JSON response: %s...", util.Prefix(string(body), invalidJSONPreview))
		return nil, errors.NewProtocolError(msg).WithStatus(resp.StatusCode, resp.Status)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || isFalsy(env.Result) {
		return nil, errors.NewProtocolError(msgInvalidFormat).WithStatus(resp.StatusCode, resp.Status)
	}

	result := parseResult(env.Result)
	return &result, nil
}

// statusMessage is the user message for a non-2xx response: the body text
// verbatim when there is one, otherwise the status code and the server's
// reason phrase.
func statusMessage(code int, status string, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text != "" && text[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			text = strings.TrimSpace(s)
		}
	}
	if text == "" {
		return fmt.Sprintf("HTTP Error %d: %s", code, reasonPhrase(code, status))
	}
	return text
}

// reasonPhrase extracts the text after the code in a status line such as
// "503 Service Unavailable", falling back to the standard text for code.
func reasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(status), strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}
