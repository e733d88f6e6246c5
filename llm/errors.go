package llm

import "strings"

// ErrorClass buckets upstream failures for fallback decisions. The
// service reports errors as text, so classification is by substring
// over the error message, matching what the API returns for each case.
type ErrorClass int

const (
	// ClassOther is any unclassified failure. Not eligible for
	// model-substitution fallback.
	ClassOther ErrorClass = iota

	// ClassQuota covers quota exhaustion and rate limiting.
	ClassQuota

	// ClassAuth covers missing or invalid credentials. Falling back to
	// another model cannot help here.
	ClassAuth

	// ClassUnavailable covers model-not-found, not-enabled, and
	// permission-denied responses. Permission errors are grouped here
	// because they surface for models the key cannot use, which a
	// different model may resolve.
	ClassUnavailable
)

// Classify maps an upstream error to an ErrorClass.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassOther
	}
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"):
		return ClassQuota
	case strings.Contains(msg, "401"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "api_key"):
		return ClassAuth
	case strings.Contains(msg, "404"),
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "not enabled"),
		strings.Contains(msg, "not available"),
		strings.Contains(msg, "permission"):
		return ClassUnavailable
	default:
		return ClassOther
	}
}

// FallbackEligible reports whether the error belongs to the closed set
// that warrants one retry against a substitute model: quota-exceeded,
// rate-limited, not-found, not-enabled, permission-denied.
func FallbackEligible(err error) bool {
	switch Classify(err) {
	case ClassQuota, ClassUnavailable:
		return true
	default:
		return false
	}
}
