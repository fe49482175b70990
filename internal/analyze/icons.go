package analyze

import "github.com/Iron-Ham/copyguard/internal/detector"

// Icon returns the icon shown next to a verdict label.
func Icon(label string) string {
	return VerdictIcon(detector.ParseVerdict(label))
}

// VerdictIcon returns the icon for v. VerdictOther gets a magnifier.
func VerdictIcon(v detector.Verdict) string {
	switch v {
	case detector.VerdictSafe:
		return "✅"
	case detector.VerdictSuspicious:
		return "⚠️"
	case detector.VerdictMalicious:
		return "🚨"
	case detector.VerdictInfected:
		return "🦠"
	case detector.VerdictUnknown:
		return "❓"
	case detector.VerdictError:
		return "❌"
	default:
		return "🔍"
	}
}
