package entity

import "time"

type SessionStep string

const (
	StepTypeSelect SessionStep = "type-select"
	StepUpload     SessionStep = "upload"
	StepAlign      SessionStep = "align"
	StepAnalyze    SessionStep = "analyze"
)

type SessionStatus string

const (
	StatusIdle      SessionStatus = "idle"
	StatusAnalyzing SessionStatus = "analyzing"
	StatusComplete  SessionStatus = "complete"
	StatusFailed    SessionStatus = "failed"
)

type ActiveView string

const (
	ActiveViewA ActiveView = "A"
	ActiveViewB ActiveView = "B"
)

// ComparisonState drives the reveal slider and the A/B view toggle. The
// reveal position is a percentage in [0,100]; the toggle is only meaningful
// when the session analyzed two views.
type ComparisonState struct {
	RevealPosition float64    `json:"revealPosition"`
	ActiveView     ActiveView `json:"activeView"`
}

// AnalysisSession is the whole per-session state: selected views, the four
// photo slots, the wizard step, the in-flight status and, once analysis
// succeeded, the immutable results. Nothing outlives the session.
type AnalysisSession struct {
	ID         string               `json:"id"`
	Views      []ViewType           `json:"views"`
	Photos     map[string]PhotoData `json:"photos"`
	Step       SessionStep          `json:"step"`
	Status     SessionStatus        `json:"status"`
	Comparison ComparisonState      `json:"comparison"`
	Results    *AnalysisResults     `json:"results,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
}

func NewAnalysisSession(id string, views []ViewType) *AnalysisSession {
	photos := make(map[string]PhotoData, 4)
	for slot := range validSlots {
		photos[slot] = NewPhotoData(slot)
	}
	return &AnalysisSession{
		ID:     id,
		Views:  views,
		Photos: photos,
		Step:   StepTypeSelect,
		Status: StatusIdle,
		Comparison: ComparisonState{
			RevealPosition: 50,
			ActiveView:     ActiveViewA,
		},
		CreatedAt: time.Now(),
	}
}

func (s *AnalysisSession) DualView() bool {
	return len(s.Views) > 1
}

// UploadsComplete reports whether every selected view has both its before
// and after photo.
func (s *AnalysisSession) UploadsComplete() bool {
	for i := range s.Views {
		before := s.Photos[SlotKey(i, PhaseBefore)]
		if !before.Uploaded() {
			return false
		}
		after := s.Photos[SlotKey(i, PhaseAfter)]
		if !after.Uploaded() {
			return false
		}
	}
	return len(s.Views) > 0
}

// SlotForView resolves the photo pair backing the given active view.
func (s *AnalysisSession) SlotForView(view ActiveView) (before, after string) {
	idx := 0
	if view == ActiveViewB {
		idx = 1
	}
	return SlotKey(idx, PhaseBefore), SlotKey(idx, PhaseAfter)
}
