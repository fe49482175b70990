package detector

import "strings"

// Verdict is the closed set of labels the UI knows how to present.
// Labels outside the set parse as VerdictOther.
type Verdict int

const (
	VerdictOther Verdict = iota
	VerdictSafe
	VerdictSuspicious
	VerdictMalicious
	VerdictInfected
	VerdictUnknown
	VerdictError
)

// ParseVerdict maps a label to a Verdict, ignoring case and surrounding
// space. "clean" is a synonym for "safe".
func ParseVerdict(label string) Verdict {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "safe", "clean":
		return VerdictSafe
	case "suspicious":
		return VerdictSuspicious
	case "malicious":
		return VerdictMalicious
	case "infected":
		return VerdictInfected
	case "unknown":
		return VerdictUnknown
	case "error":
		return VerdictError
	default:
		return VerdictOther
	}
}

// String returns the lowercase name of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictSafe:
		return "safe"
	case VerdictSuspicious:
		return "suspicious"
	case VerdictMalicious:
		return "malicious"
	case VerdictInfected:
		return "infected"
	case VerdictUnknown:
		return "unknown"
	case VerdictError:
		return "error"
	default:
		return "other"
	}
}

// Verdict returns the parsed label of r.
func (r *Result) Verdict() Verdict {
	return ParseVerdict(r.Label)
}
