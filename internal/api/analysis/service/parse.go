package analysisService

import (
	"PostureRefine/internal/entity"
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// parseAnalysisPayload turns raw model text into validated AnalysisResults.
// The model is not a type-checked boundary: the text may arrive wrapped in a
// markdown fence, and even schema-constrained replies are re-validated for
// shape before anything downstream trusts them.
func parseAnalysisPayload(raw string, wantViewB bool) (*entity.AnalysisResults, error) {
	cleaned := stripCodeFences(raw)

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, errors.New("cannot find valid JSON in response")
	}

	var results entity.AnalysisResults
	if err := jsoniter.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &results); err != nil {
		return nil, err
	}

	if err := validateResults(&results, wantViewB); err != nil {
		return nil, err
	}

	return &results, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func validateResults(r *entity.AnalysisResults, wantViewB bool) error {
	if err := validateView(&r.ViewA); err != nil {
		return err
	}

	if wantViewB {
		if r.ViewB == nil {
			return errors.New("viewB missing from response")
		}
		if err := validateView(r.ViewB); err != nil {
			return err
		}
	}

	for _, point := range []*entity.PosturePoint{
		&r.DetailedScores.StraightNeck,
		&r.DetailedScores.RolledShoulder,
		&r.DetailedScores.Kyphosis,
		&r.DetailedScores.Swayback,
		&r.DetailedScores.OLegs,
	} {
		if point.Label == "" {
			return errors.New("detailed score missing label")
		}
		if !point.Status.Valid() {
			return errors.New("detailed score has invalid status: " + string(point.Status))
		}
		point.BeforeScore = clampScore(point.BeforeScore)
		point.AfterScore = clampScore(point.AfterScore)
	}

	r.OverallBeforeScore = clampScore(r.OverallBeforeScore)
	r.OverallAfterScore = clampScore(r.OverallAfterScore)

	if r.Summary == "" {
		return errors.New("summary missing from response")
	}

	return nil
}

func validateView(v *entity.AnalysisViewResult) error {
	if !v.BeforeLandmarks.Complete() || !v.AfterLandmarks.Complete() {
		return errors.New("landmark set incomplete")
	}

	clampLandmarks(v.BeforeLandmarks)
	clampLandmarks(v.AfterLandmarks)
	return nil
}

func clampLandmarks(l *entity.PostureLandmarks) {
	for _, p := range []*entity.Point2D{l.Head, l.Ear, l.Shoulder, l.Hip, l.Knee, l.Ankle, l.Heel} {
		clampPoint(p)
	}
	for i := range l.SpinePath {
		clampPoint(&l.SpinePath[i])
	}
}

func clampPoint(p *entity.Point2D) {
	if p.X < 0 {
		p.X = 0
	} else if p.X > entity.CoordinateMax {
		p.X = entity.CoordinateMax
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y > entity.CoordinateMax {
		p.Y = entity.CoordinateMax
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
