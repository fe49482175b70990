// Package detector talks to the remote Detection API: it builds the request
// body, sends it, and classifies the outcome into the CopyGuard error taxonomy.
package detector

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Iron-Ham/copyguard/internal/config"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Request is the body POSTed to the Detection API.
type Request struct {
	// ID correlates log lines for one request. It is not sent.
	ID        string `json:"-"`
	Code      string `json:"code"`
	Timestamp string `json:"timestamp"`
	UserAgent string `json:"userAgent"`
}

// NewRequest builds a request for code, stamped with now.
func NewRequest(id, code string, now time.Time) Request {
	return Request{
		ID:        id,
		Code:      code,
		Timestamp: now.UTC().Format(TimestampLayout),
		UserAgent: UserAgent(),
	}
}

// UserAgent identifies this client to the Detection API.
func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s; %s) Go/%s",
		config.AppName, config.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
