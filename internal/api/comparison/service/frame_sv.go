package comparisonService

import (
	"PostureRefine/internal/api/comparison"
	"PostureRefine/internal/api/session"
	"PostureRefine/internal/entity"
	"fmt"

	"golang.org/x/net/context"
)

func (s *comparisonService) load(ctx context.Context, sessionID string) (*entity.AnalysisSession, error) {
	sess, err := s.sessionRepo.Load(ctx, sessionID)
	if err != nil {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}

func (s *comparisonService) Frame(ctx context.Context, sessionID string) (comparison.Frame, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return comparison.Frame{}, err
	}
	return BuildFrame(sess)
}

// BuildFrame composes the reveal-slider comparison for the active view. The
// after image and its overlays are clipped to the region left of the reveal
// boundary; the before image and overlay occupy the rest.
func BuildFrame(sess *entity.AnalysisSession) (comparison.Frame, error) {
	if sess.Results == nil {
		return comparison.Frame{}, comparison.ErrNoResults
	}

	view := &sess.Results.ViewA
	if sess.Comparison.ActiveView == entity.ActiveViewB {
		if sess.Results.ViewB == nil {
			return comparison.Frame{}, comparison.ErrViewUnavailable
		}
		view = sess.Results.ViewB
	}

	beforeSlot, afterSlot := sess.SlotForView(sess.Comparison.ActiveView)
	photoBefore := sess.Photos[beforeSlot]
	photoAfter := sess.Photos[afterSlot]

	if !photoBefore.Uploaded() || !photoAfter.Uploaded() {
		return comparison.Frame{}, comparison.ErrIncompleteViewData
	}

	reveal := clampReveal(sess.Comparison.RevealPosition)
	clip := fmt.Sprintf("inset(0 %s%% 0 0)", fmtF(100-reveal))

	layers := []comparison.Layer{
		{Kind: comparison.LayerPhoto, Source: photoBefore.URL, Opacity: 1},
		{
			Kind:    comparison.LayerOverlay,
			Source:  RenderOverlaySVG(view.BeforeLandmarks, OverlayStyle{Color: ColorBefore}, photoBefore),
			Opacity: 1,
		},
		{Kind: comparison.LayerPhoto, Source: photoAfter.URL, ClipInset: clip, Opacity: 1},
		{
			Kind:      comparison.LayerOverlay,
			Source:    RenderOverlaySVG(view.BeforeLandmarks, OverlayStyle{Color: ColorBefore, Opacity: 0.3, Ghost: true}, photoAfter),
			ClipInset: clip,
			Opacity:   0.3,
			Ghost:     true,
		},
		{
			Kind:      comparison.LayerOverlay,
			Source:    RenderOverlaySVG(view.AfterLandmarks, OverlayStyle{Color: ColorAfter}, photoAfter),
			ClipInset: clip,
			Opacity:   1,
		},
	}

	return comparison.Frame{
		ActiveView:     sess.Comparison.ActiveView,
		RevealPosition: reveal,
		CanToggle:      sess.Results.ViewB != nil,
		Layers:         layers,
	}, nil
}

// AlignmentFrame backs the align step: the slot's photo with, for an after
// slot, the paired before photo underneath as a faint reference layer.
func (s *comparisonService) AlignmentFrame(ctx context.Context, sessionID, slot string) (comparison.Frame, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return comparison.Frame{}, err
	}

	if !entity.ValidSlot(slot) {
		return comparison.Frame{}, comparison.ErrInvalidSlot
	}

	photo := sess.Photos[slot]
	if !photo.Uploaded() {
		return comparison.Frame{}, comparison.ErrIncompleteViewData
	}

	var layers []comparison.Layer

	if slot == entity.SlotKey(0, entity.PhaseAfter) || slot == entity.SlotKey(1, entity.PhaseAfter) {
		idx := 0
		if slot == entity.SlotKey(1, entity.PhaseAfter) {
			idx = 1
		}
		if ref := sess.Photos[entity.SlotKey(idx, entity.PhaseBefore)]; ref.Uploaded() {
			layers = append(layers, comparison.Layer{
				Kind:    comparison.LayerPhoto,
				Source:  ref.URL,
				Opacity: 0.3,
				Ghost:   true,
			})
		}
	}

	layers = append(layers, comparison.Layer{Kind: comparison.LayerPhoto, Source: photo.URL, Opacity: 1})

	return comparison.Frame{
		ActiveView:     sess.Comparison.ActiveView,
		RevealPosition: sess.Comparison.RevealPosition,
		Layers:         layers,
	}, nil
}

func (s *comparisonService) UpdateState(ctx context.Context, sessionID string, reveal *float64, active *entity.ActiveView) (entity.ComparisonState, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return entity.ComparisonState{}, err
	}

	if reveal != nil {
		sess.Comparison.RevealPosition = clampReveal(*reveal)
	}

	if active != nil {
		if *active == entity.ActiveViewB {
			if sess.Results == nil || sess.Results.ViewB == nil {
				return entity.ComparisonState{}, comparison.ErrViewUnavailable
			}
		}
		sess.Comparison.ActiveView = *active
	}

	if err := s.sessionRepo.Save(ctx, sess); err != nil {
		return entity.ComparisonState{}, err
	}

	return sess.Comparison, nil
}

// OverlaySVG renders one standalone overlay layer for a photo slot.
func (s *comparisonService) OverlaySVG(ctx context.Context, sessionID, slot, layer string) (string, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if sess.Results == nil {
		return "", comparison.ErrNoResults
	}

	if !entity.ValidSlot(slot) {
		return "", comparison.ErrInvalidSlot
	}

	view := &sess.Results.ViewA
	if slot == entity.SlotKey(1, entity.PhaseBefore) || slot == entity.SlotKey(1, entity.PhaseAfter) {
		if sess.Results.ViewB == nil {
			return "", comparison.ErrViewUnavailable
		}
		view = sess.Results.ViewB
	}

	photo := sess.Photos[slot]

	switch layer {
	case "before":
		return RenderOverlaySVG(view.BeforeLandmarks, OverlayStyle{Color: ColorBefore}, photo), nil
	case "after":
		return RenderOverlaySVG(view.AfterLandmarks, OverlayStyle{Color: ColorAfter}, photo), nil
	case "ghost":
		return RenderOverlaySVG(view.BeforeLandmarks, OverlayStyle{Color: ColorBefore, Opacity: 0.3, Ghost: true}, photo), nil
	default:
		return "", comparison.ErrInvalidLayer
	}
}

func clampReveal(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
