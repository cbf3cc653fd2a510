package analysisService

import (
	"PostureRefine/internal/api/analysis"
	"PostureRefine/internal/api/session"
	"PostureRefine/internal/entity"
	"PostureRefine/pkg/gemini"
	"PostureRefine/pkg/log"
	"fmt"

	"github.com/sethvargo/go-retry"
	"golang.org/x/net/context"
)

// Analyze runs one posture-comparison call for the session. At most one call
// is in flight per session; retries happen inside this invocation and are
// sequential, never parallel.
func (s *analysisService) Analyze(ctx context.Context, sessionID string) (*entity.AnalysisResults, error) {
	sess, err := s.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, session.ErrSessionNotFound
	}

	if !sess.UploadsComplete() {
		return nil, analysis.ErrIncompleteViewData
	}

	// Credential absence is detectable before any network call is made.
	if !s.keys.HasSelectedKey() {
		return nil, analysis.ErrMissingCredential
	}

	acquired, err := s.sessionRepo.AcquireAnalysisLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, analysis.ErrAnalysisInFlight
	}
	defer func() {
		if err := s.sessionRepo.ReleaseAnalysisLock(ctx, sessionID); err != nil {
			s.log.Errorf("Failed to release analysis lock for session %s: %v", sessionID, err)
		}
	}()

	views, err := s.buildViewRequests(sess)
	if err != nil {
		return nil, err
	}

	sess.Step = entity.StepAnalyze
	sess.Status = entity.StatusAnalyzing
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}

	results, callErr := s.callWithRetry(ctx, sessionID, views)
	if callErr != nil {
		sess.Status = entity.StatusFailed
		if err := s.sessionRepo.Save(ctx, sess); err != nil {
			s.log.Errorf("Failed to persist failed status for session %s: %v", sessionID, err)
		}
		return nil, callErr
	}

	results.ViewA.Type = sess.Views[0]
	if results.ViewB != nil && sess.DualView() {
		results.ViewB.Type = sess.Views[1]
	}

	sess.Results = results
	sess.Status = entity.StatusComplete
	sess.Comparison = entity.ComparisonState{
		RevealPosition: 50,
		ActiveView:     entity.ActiveViewA,
	}
	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"session_id":   sessionID,
		"before_score": results.OverallBeforeScore,
		"after_score":  results.OverallAfterScore,
	}).Info("Posture analysis complete")

	return results, nil
}

// callWithRetry is the bounded retry loop: exponential backoff from the
// policy base delay, capped attempt count, and an immediate stop on any
// failure class a retry cannot fix.
func (s *analysisService) callWithRetry(ctx context.Context, sessionID string, views []analysis.ViewRequest) (*entity.AnalysisResults, error) {
	req := gemini.StructuredRequest{
		SystemInstruction: systemInstruction,
		Parts:             buildParts(views),
		ResponseSchema:    responseSchema(len(views) > 1),
	}

	backoff := retry.WithMaxRetries(uint64(s.policy.MaxRetries), retry.NewExponential(s.policy.BaseDelay))

	var results *entity.AnalysisResults
	attempts := 0

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++

		text, err := s.gemini.GenerateStructured(ctx, req)
		if err != nil {
			classified, class, retryable := s.policy.Classify(err)

			s.log.WithFields(log.Fields{
				"session_id": sessionID,
				"attempt":    attempts,
				"class":      class,
				"retryable":  retryable,
				"error":      err.Error(),
			}).Warn("Analysis call failed")

			if retryable {
				return retry.RetryableError(classified)
			}
			return classified
		}

		parsed, err := parseAnalysisPayload(text, len(views) > 1)
		if err != nil {
			s.log.WithFields(log.Fields{
				"session_id": sessionID,
				"attempt":    attempts,
				"error":      err.Error(),
			}).Warn("Analysis response failed validation")
			return retry.RetryableError(analysis.ErrMalformedResponse)
		}

		results = parsed
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"session_id": sessionID,
		"attempts":   attempts,
	}).Debug("Analysis call succeeded")

	return results, nil
}

// buildViewRequests captures photo payloads by value: the transforms stay on
// the session for rendering, only the normalized image bytes travel.
func (s *analysisService) buildViewRequests(sess *entity.AnalysisSession) ([]analysis.ViewRequest, error) {
	views := make([]analysis.ViewRequest, 0, len(sess.Views))

	for i, viewType := range sess.Views {
		before := sess.Photos[entity.SlotKey(i, entity.PhaseBefore)]
		after := sess.Photos[entity.SlotKey(i, entity.PhaseAfter)]

		beforeData, _, err := s.pipeline.DecodePayload(before.URL)
		if err != nil {
			return nil, analysis.ErrIncompleteViewData
		}
		afterData, _, err := s.pipeline.DecodePayload(after.URL)
		if err != nil {
			return nil, analysis.ErrIncompleteViewData
		}

		views = append(views, analysis.ViewRequest{
			Type:        viewType,
			BeforeImage: beforeData,
			AfterImage:  afterData,
		})
	}

	return views, nil
}

func (s *analysisService) Results(ctx context.Context, sessionID string) (*entity.AnalysisResults, error) {
	sess, err := s.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, session.ErrSessionNotFound
	}

	if sess.Results == nil {
		return nil, analysis.ErrResultsNotReady
	}

	return sess.Results, nil
}

// Report renders the shareable plain-text summary line.
func (s *analysisService) Report(ctx context.Context, sessionID string) (string, error) {
	results, err := s.Results(ctx, sessionID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"Posture improvement report — Before: %.0f → After: %.0f\n%s\n",
		results.OverallBeforeScore, results.OverallAfterScore, results.Summary,
	), nil
}
