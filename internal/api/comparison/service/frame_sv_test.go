package comparisonService

import (
	"PostureRefine/internal/api/comparison"
	"PostureRefine/internal/api/session"
	sessionRepository "PostureRefine/internal/api/session/repository"
	"PostureRefine/internal/entity"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type fakeRepo struct {
	sessions map[string]*entity.AnalysisSession
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[string]*entity.AnalysisSession)}
}

func (r *fakeRepo) Save(_ context.Context, s *entity.AnalysisSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeRepo) Load(_ context.Context, id string) (*entity.AnalysisSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepository.ErrNotFound
	}
	return s, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeRepo) AcquireAnalysisLock(_ context.Context, _ string) (bool, error) { return true, nil }
func (r *fakeRepo) ReleaseAnalysisLock(_ context.Context, _ string) error        { return nil }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func analyzedSession(views []entity.ViewType) *entity.AnalysisSession {
	sess := entity.NewAnalysisSession("SESSION1", views)

	for i := range views {
		for _, phase := range []entity.PhotoPhase{entity.PhaseBefore, entity.PhaseAfter} {
			slot := entity.SlotKey(i, phase)
			p := sess.Photos[slot]
			p.URL = "data:image/jpeg;base64," + slot
			sess.Photos[slot] = p
		}
	}

	results := &entity.AnalysisResults{
		ViewA: entity.AnalysisViewResult{
			Type:            views[0],
			BeforeLandmarks: fullLandmarks(),
			AfterLandmarks:  fullLandmarks(),
		},
		OverallBeforeScore: 60,
		OverallAfterScore:  80,
		Summary:            "better",
	}
	if len(views) > 1 {
		results.ViewB = &entity.AnalysisViewResult{
			Type:            views[1],
			BeforeLandmarks: fullLandmarks(),
			AfterLandmarks:  fullLandmarks(),
		}
	}

	sess.Results = results
	sess.Status = entity.StatusComplete
	return sess
}

func TestBuildFrameLayerStack(t *testing.T) {
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})
	sess.Comparison.RevealPosition = 25

	frame, err := BuildFrame(sess)
	if err != nil {
		t.Fatalf("Expected frame, got %v", err)
	}

	if len(frame.Layers) != 5 {
		t.Fatalf("Expected 5 layers, got %d", len(frame.Layers))
	}

	// z-order: before photo, before overlay, clipped after photo, clipped
	// ghost overlay, clipped after overlay.
	wantKinds := []string{
		comparison.LayerPhoto, comparison.LayerOverlay,
		comparison.LayerPhoto, comparison.LayerOverlay, comparison.LayerOverlay,
	}
	for i, kind := range wantKinds {
		if frame.Layers[i].Kind != kind {
			t.Errorf("Layer %d: expected kind %q, got %q", i, kind, frame.Layers[i].Kind)
		}
	}

	clip := "inset(0 75% 0 0)"
	for _, i := range []int{2, 3, 4} {
		if frame.Layers[i].ClipInset != clip {
			t.Errorf("Layer %d: expected clip %q, got %q", i, clip, frame.Layers[i].ClipInset)
		}
	}
	for _, i := range []int{0, 1} {
		if frame.Layers[i].ClipInset != "" {
			t.Errorf("Layer %d: expected no clip, got %q", i, frame.Layers[i].ClipInset)
		}
	}

	if !frame.Layers[3].Ghost {
		t.Error("Expected the fourth layer to be the ghost overlay")
	}
	if frame.Layers[3].Opacity != 0.3 {
		t.Errorf("Expected ghost opacity 0.3, got %v", frame.Layers[3].Opacity)
	}

	if frame.CanToggle {
		t.Error("Expected CanToggle false for a single-view session")
	}
}

func TestBuildFrameRevealExtremes(t *testing.T) {
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})

	sess.Comparison.RevealPosition = 0
	frame, err := BuildFrame(sess)
	if err != nil {
		t.Fatalf("Expected frame, got %v", err)
	}
	if frame.Layers[2].ClipInset != "inset(0 100% 0 0)" {
		t.Errorf("Expected after image fully hidden at reveal 0, got %q", frame.Layers[2].ClipInset)
	}

	sess.Comparison.RevealPosition = 100
	frame, _ = BuildFrame(sess)
	if frame.Layers[2].ClipInset != "inset(0 0% 0 0)" {
		t.Errorf("Expected after image fully shown at reveal 100, got %q", frame.Layers[2].ClipInset)
	}

	// Out-of-range positions clamp instead of failing.
	sess.Comparison.RevealPosition = 180
	frame, _ = BuildFrame(sess)
	if frame.RevealPosition != 100 {
		t.Errorf("Expected reveal clamped to 100, got %v", frame.RevealPosition)
	}
}

func TestBuildFrameOverlayColors(t *testing.T) {
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})

	frame, err := BuildFrame(sess)
	if err != nil {
		t.Fatalf("Expected frame, got %v", err)
	}

	if !strings.Contains(frame.Layers[1].Source, ColorBefore) {
		t.Error("Expected the before overlay to use the before color")
	}
	if !strings.Contains(frame.Layers[4].Source, ColorAfter) {
		t.Error("Expected the after overlay to use the after color")
	}
	if !strings.Contains(frame.Layers[3].Source, ColorBefore) {
		t.Error("Expected the ghost layer to reuse the before color")
	}
}

func TestBuildFrameRequiresResults(t *testing.T) {
	sess := entity.NewAnalysisSession("SESSION1", []entity.ViewType{entity.ViewSide})

	_, err := BuildFrame(sess)
	if !errors.Is(err, comparison.ErrNoResults) {
		t.Fatalf("Expected ErrNoResults, got %v", err)
	}
}

func TestBuildFrameViewBUnavailable(t *testing.T) {
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})
	sess.Comparison.ActiveView = entity.ActiveViewB

	_, err := BuildFrame(sess)
	if !errors.Is(err, comparison.ErrViewUnavailable) {
		t.Fatalf("Expected ErrViewUnavailable, got %v", err)
	}
}

func TestBuildFrameDualViewToggle(t *testing.T) {
	sess := analyzedSession([]entity.ViewType{entity.ViewSide, entity.ViewFront})
	sess.Comparison.ActiveView = entity.ActiveViewB

	frame, err := BuildFrame(sess)
	if err != nil {
		t.Fatalf("Expected frame for view B, got %v", err)
	}

	if !frame.CanToggle {
		t.Error("Expected CanToggle true for a dual-view session")
	}
	if frame.Layers[0].Source != sess.Photos["v2-before"].URL {
		t.Error("Expected view B to use the second photo pair")
	}
}

func TestUpdateState(t *testing.T) {
	repo := newFakeRepo()
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})
	_ = repo.Save(context.Background(), sess)

	svc := New(testLogger(), repo)

	reveal := 130.0
	state, err := svc.UpdateState(context.Background(), "SESSION1", &reveal, nil)
	if err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}
	if state.RevealPosition != 100 {
		t.Errorf("Expected reveal clamped to 100, got %v", state.RevealPosition)
	}

	viewB := entity.ActiveViewB
	if _, err := svc.UpdateState(context.Background(), "SESSION1", nil, &viewB); !errors.Is(err, comparison.ErrViewUnavailable) {
		t.Errorf("Expected ErrViewUnavailable for a single-view session, got %v", err)
	}

	if _, err := svc.UpdateState(context.Background(), "MISSING", &reveal, nil); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestAlignmentFrameLayersReference(t *testing.T) {
	repo := newFakeRepo()
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})
	_ = repo.Save(context.Background(), sess)

	svc := New(testLogger(), repo)

	// A before slot has no reference layer underneath.
	frame, err := svc.AlignmentFrame(context.Background(), "SESSION1", "v1-before")
	if err != nil {
		t.Fatalf("Expected alignment frame, got %v", err)
	}
	if len(frame.Layers) != 1 {
		t.Errorf("Expected 1 layer for a before slot, got %d", len(frame.Layers))
	}

	// An after slot gets the paired before photo as a faint reference.
	frame, err = svc.AlignmentFrame(context.Background(), "SESSION1", "v1-after")
	if err != nil {
		t.Fatalf("Expected alignment frame, got %v", err)
	}
	if len(frame.Layers) != 2 {
		t.Fatalf("Expected 2 layers for an after slot, got %d", len(frame.Layers))
	}
	if !frame.Layers[0].Ghost || frame.Layers[0].Opacity != 0.3 {
		t.Errorf("Expected a faint reference layer, got %+v", frame.Layers[0])
	}
	if frame.Layers[0].Source != sess.Photos["v1-before"].URL {
		t.Error("Expected the reference layer to carry the before photo")
	}

	if _, err := svc.AlignmentFrame(context.Background(), "SESSION1", "nope"); !errors.Is(err, comparison.ErrInvalidSlot) {
		t.Errorf("Expected ErrInvalidSlot, got %v", err)
	}
}

func TestOverlaySVGLayers(t *testing.T) {
	repo := newFakeRepo()
	sess := analyzedSession([]entity.ViewType{entity.ViewSide})
	_ = repo.Save(context.Background(), sess)

	svc := New(testLogger(), repo)

	for layer, color := range map[string]string{
		"before": ColorBefore,
		"after":  ColorAfter,
		"ghost":  ColorBefore,
	} {
		svg, err := svc.OverlaySVG(context.Background(), "SESSION1", "v1-before", layer)
		if err != nil {
			t.Fatalf("Layer %q: expected SVG, got %v", layer, err)
		}
		if !strings.Contains(svg, color) {
			t.Errorf("Layer %q: expected color %s", layer, color)
		}
	}

	if _, err := svc.OverlaySVG(context.Background(), "SESSION1", "v1-before", "middle"); !errors.Is(err, comparison.ErrInvalidLayer) {
		t.Errorf("Expected ErrInvalidLayer, got %v", err)
	}
	if _, err := svc.OverlaySVG(context.Background(), "SESSION1", "v2-before", "before"); !errors.Is(err, comparison.ErrViewUnavailable) {
		t.Errorf("Expected ErrViewUnavailable for an unanalyzed view, got %v", err)
	}
}
