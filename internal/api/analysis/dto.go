package analysis

import "PostureRefine/internal/entity"

// FailureClass is the client-observable taxonomy for a failed analysis call.
type FailureClass string

const (
	FailureMissingCredential FailureClass = "missing_credential"
	FailureInvalidCredential FailureClass = "invalid_credential"
	FailureRateLimited       FailureClass = "rate_limited"
	FailureUnsupportedModel  FailureClass = "unsupported_model"
	FailureMalformedResponse FailureClass = "malformed_response"
	FailureTransientNetwork  FailureClass = "transient_network"
)

// ViewRequest is one "view" tuple of the multimodal request: the analysis
// angle plus the before/after image payloads (JPEG bytes).
type ViewRequest struct {
	Type        entity.ViewType
	BeforeImage []byte
	AfterImage  []byte
}

type ResultsResponse struct {
	Data *entity.AnalysisResults `json:"data"`
}

type AnalyzeResponse struct {
	SessionID string                  `json:"session_id"`
	Status    entity.SessionStatus    `json:"status"`
	Data      *entity.AnalysisResults `json:"data,omitempty"`
}

type CredentialStatusResponse struct {
	Selected bool     `json:"selected"`
	Labels   []string `json:"labels,omitempty"`
}

type SelectCredentialRequest struct {
	Label string `json:"label" validate:"required"`
}
