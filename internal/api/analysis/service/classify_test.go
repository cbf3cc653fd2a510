package analysisService

import (
	"PostureRefine/internal/api/analysis"
	"PostureRefine/pkg/aistudio"
	"PostureRefine/pkg/gemini"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func TestClassifyFailureClasses(t *testing.T) {
	policy := DefaultRetryPolicy()

	cases := []struct {
		name          string
		err           error
		wantSentinel  error
		wantClass     analysis.FailureClass
		wantRetryable bool
	}{
		{
			name:         "no key selected",
			err:          aistudio.ErrNoKeySelected,
			wantSentinel: analysis.ErrMissingCredential,
			wantClass:    analysis.FailureMissingCredential,
		},
		{
			name:          "empty response",
			err:           gemini.ErrEmptyResponse,
			wantSentinel:  analysis.ErrMalformedResponse,
			wantClass:     analysis.FailureMalformedResponse,
			wantRetryable: true,
		},
		{
			name:         "http 401",
			err:          &googleapi.Error{Code: 401, Message: "unauthorized"},
			wantSentinel: analysis.ErrInvalidCredential,
			wantClass:    analysis.FailureInvalidCredential,
		},
		{
			name:         "http 403",
			err:          &googleapi.Error{Code: 403, Message: "forbidden"},
			wantSentinel: analysis.ErrInvalidCredential,
			wantClass:    analysis.FailureInvalidCredential,
		},
		{
			name:         "http 429",
			err:          &googleapi.Error{Code: 429, Message: "quota exceeded"},
			wantSentinel: analysis.ErrRateLimited,
			wantClass:    analysis.FailureRateLimited,
		},
		{
			name:         "http 404",
			err:          &googleapi.Error{Code: 404, Message: "model not found"},
			wantSentinel: analysis.ErrUnsupportedModel,
			wantClass:    analysis.FailureUnsupportedModel,
		},
		{
			name:         "wrapped status error",
			err:          fmt.Errorf("call failed: %w", &googleapi.Error{Code: 401}),
			wantSentinel: analysis.ErrInvalidCredential,
			wantClass:    analysis.FailureInvalidCredential,
		},
		{
			name:         "string api key marker",
			err:          errors.New("rpc error: API key not valid. Please pass a valid API key."),
			wantSentinel: analysis.ErrInvalidCredential,
			wantClass:    analysis.FailureInvalidCredential,
		},
		{
			name:         "string quota marker",
			err:          errors.New("RESOURCE_EXHAUSTED: quota exceeded for this project"),
			wantSentinel: analysis.ErrRateLimited,
			wantClass:    analysis.FailureRateLimited,
		},
		{
			name:         "string model marker",
			err:          errors.New("model gemini-nonexistent not found for API version"),
			wantSentinel: analysis.ErrUnsupportedModel,
			wantClass:    analysis.FailureUnsupportedModel,
		},
		{
			name:          "anything else is transient",
			err:           errors.New("connection reset by peer"),
			wantSentinel:  analysis.ErrTransientNetwork,
			wantClass:     analysis.FailureTransientNetwork,
			wantRetryable: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			classified, class, retryable := policy.Classify(c.err)

			if !errors.Is(classified, c.wantSentinel) {
				t.Errorf("Expected sentinel %v, got %v", c.wantSentinel, classified)
			}
			if class != c.wantClass {
				t.Errorf("Expected class %q, got %q", c.wantClass, class)
			}
			if retryable != c.wantRetryable {
				t.Errorf("Expected retryable=%v, got %v", c.wantRetryable, retryable)
			}
		})
	}
}

func TestClassifyRateLimitedFollowsPolicy(t *testing.T) {
	quotaErr := &googleapi.Error{Code: 429, Message: "quota"}

	policy := DefaultRetryPolicy()
	if _, _, retryable := policy.Classify(quotaErr); retryable {
		t.Error("Expected rate limit to be fatal by default")
	}

	policy.RetryRateLimited = true
	if _, _, retryable := policy.Classify(quotaErr); !retryable {
		t.Error("Expected rate limit to be retryable when the policy allows it")
	}
}

func TestPolicyFromEnv(t *testing.T) {
	t.Setenv("ANALYSIS_MAX_RETRIES", "5")
	t.Setenv("ANALYSIS_RETRY_BASE_DELAY", "500ms")
	t.Setenv("ANALYSIS_RETRY_RATE_LIMITED", "true")

	p := PolicyFromEnv()
	if p.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries 5, got %d", p.MaxRetries)
	}
	if p.BaseDelay != 500*time.Millisecond {
		t.Errorf("Expected BaseDelay 500ms, got %v", p.BaseDelay)
	}
	if !p.RetryRateLimited {
		t.Error("Expected RetryRateLimited true")
	}
}

func TestPolicyFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("ANALYSIS_MAX_RETRIES", "-3")
	t.Setenv("ANALYSIS_RETRY_BASE_DELAY", "soon")
	t.Setenv("ANALYSIS_RETRY_RATE_LIMITED", "maybe")

	p := PolicyFromEnv()
	def := DefaultRetryPolicy()

	if p != def {
		t.Errorf("Expected defaults %+v for invalid overrides, got %+v", def, p)
	}
}
