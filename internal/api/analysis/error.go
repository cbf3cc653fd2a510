package analysis

import (
	"PostureRefine/pkg/response"
	"net/http"
)

// One sentinel per failure class. Fatal classes are never retried; the two
// retryable ones only surface after the retry budget is spent.
var (
	ErrMissingCredential  = response.NewError(http.StatusPreconditionFailed, "no API credential configured")
	ErrInvalidCredential  = response.NewError(http.StatusUnauthorized, "API credential rejected by the vision service")
	ErrRateLimited        = response.NewError(http.StatusTooManyRequests, "vision service quota exceeded")
	ErrUnsupportedModel   = response.NewError(http.StatusBadGateway, "requested model unavailable for this credential")
	ErrMalformedResponse  = response.NewError(http.StatusBadGateway, "vision service returned empty or malformed response")
	ErrTransientNetwork   = response.NewError(http.StatusBadGateway, "analysis call failed")
	ErrAnalysisInFlight   = response.NewError(http.StatusConflict, "analysis already in progress")
	ErrResultsNotReady    = response.NewError(http.StatusNotFound, "analysis results not available")
	ErrIncompleteViewData = response.NewError(http.StatusConflict, "selected views are missing before or after photos")
	ErrUnknownCredential  = response.NewError(http.StatusBadRequest, "unknown credential label")
)
