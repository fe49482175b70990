package detector

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

const (
	// UnknownLabel is shown when the service returns no label.
	UnknownLabel = "Unknown"
	// NoRawOutput is shown when the service returns no raw payload.
	NoRawOutput = "No additional data available"
)

// Result is a successful classification.
type Result struct {
	Label      string          `json:"label"`
	Confidence float64         `json:"confidence"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

// envelope is the top-level response shape: {"result": ...}.
type envelope struct {
	Result json.RawMessage `json:"result"`
}

type resultFields struct {
	Label      any             `json:"label"`
	Confidence any             `json:"confidence"`
	Raw        json.RawMessage `json:"raw"`
}

// isFalsy reports whether a JSON value is null, false, 0 or the empty string.
func isFalsy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}

// parseResult turns a truthy "result" value into a Result. Missing fields
// fall back to UnknownLabel and zero confidence. A result that is not an
// object becomes the raw payload of an Unknown result.
func parseResult(raw json.RawMessage) Result {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Result{Label: UnknownLabel, Raw: trimmed}
	}

	var f resultFields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Result{Label: UnknownLabel, Raw: trimmed}
	}

	res := Result{Label: UnknownLabel, Raw: f.Raw}
	if label := strings.TrimSpace(cast.ToString(f.Label)); label != "" {
		res.Label = label
	}
	if f.Confidence != nil {
		if c, err := cast.ToFloat64E(f.Confidence); err == nil {
			res.Confidence = c
		}
	}
	return res
}

// RawText renders the raw payload for display: structured values as indented
// JSON, strings as-is, and NoRawOutput when there is nothing to show.
func (r Result) RawText() string {
	trimmed := bytes.TrimSpace(r.Raw)
	if len(trimmed) == 0 || isFalsy(trimmed) {
		return NoRawOutput
	}
	switch trimmed[0] {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
			return string(trimmed)
		}
		return buf.String()
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}
