package analysisService

import (
	"PostureRefine/internal/api/analysis"
	"PostureRefine/pkg/aistudio"
	"PostureRefine/pkg/gemini"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryPolicy makes the retry/fatal classification table tunable instead of
// hard-coded: quota handling in particular is deployment policy, not
// protocol.
type RetryPolicy struct {
	MaxRetries       int
	BaseDelay        time.Duration
	RetryRateLimited bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:       2,
		BaseDelay:        3 * time.Second,
		RetryRateLimited: false,
	}
}

// PolicyFromEnv overrides the defaults with ANALYSIS_MAX_RETRIES,
// ANALYSIS_RETRY_BASE_DELAY and ANALYSIS_RETRY_RATE_LIMITED when set.
func PolicyFromEnv() RetryPolicy {
	p := DefaultRetryPolicy()

	if v := os.Getenv("ANALYSIS_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.MaxRetries = n
		}
	}
	if v := os.Getenv("ANALYSIS_RETRY_BASE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			p.BaseDelay = d
		}
	}
	if v := os.Getenv("ANALYSIS_RETRY_RATE_LIMITED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.RetryRateLimited = b
		}
	}

	return p
}

// Classify maps a raw call failure to a failure-class sentinel and reports
// whether a retry can do anything about it. Bad credentials, quota and a
// missing model never heal on retry; generation hiccups usually do.
func (p RetryPolicy) Classify(err error) (classified error, class analysis.FailureClass, retryable bool) {
	if errors.Is(err, aistudio.ErrNoKeySelected) {
		return analysis.ErrMissingCredential, analysis.FailureMissingCredential, false
	}

	if errors.Is(err, gemini.ErrEmptyResponse) {
		return analysis.ErrMalformedResponse, analysis.FailureMalformedResponse, true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return analysis.ErrInvalidCredential, analysis.FailureInvalidCredential, false
		case 429:
			return analysis.ErrRateLimited, analysis.FailureRateLimited, p.RetryRateLimited
		case 404:
			return analysis.ErrUnsupportedModel, analysis.FailureUnsupportedModel, false
		}
	}

	// The genai client occasionally surfaces transport failures as plain
	// strings; sniff the same markers the status codes would carry.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key not valid"), strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "permission denied"), strings.Contains(msg, "unauthenticated"):
		return analysis.ErrInvalidCredential, analysis.FailureInvalidCredential, false
	case strings.Contains(msg, "429"), strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"):
		return analysis.ErrRateLimited, analysis.FailureRateLimited, p.RetryRateLimited
	case strings.Contains(msg, "model") && strings.Contains(msg, "not found"):
		return analysis.ErrUnsupportedModel, analysis.FailureUnsupportedModel, false
	}

	return analysis.ErrTransientNetwork, analysis.FailureTransientNetwork, true
}
