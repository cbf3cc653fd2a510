package sessionService

import (
	"PostureRefine/internal/api/session"
	sessionRepository "PostureRefine/internal/api/session/repository"
	"PostureRefine/internal/entity"
	"PostureRefine/pkg/log"
	"errors"
	"time"

	"golang.org/x/net/context"
)

func (s *sessionService) CreateSession(ctx context.Context, views []entity.ViewType) (*entity.AnalysisSession, error) {
	if len(views) == 0 || len(views) > 2 {
		return nil, session.ErrInvalidViewSelection
	}

	seen := make(map[entity.ViewType]bool, len(views))
	for _, v := range views {
		if !v.Valid() || seen[v] {
			return nil, session.ErrInvalidViewSelection
		}
		seen[v] = true
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	sess := entity.NewAnalysisSession(id, views)
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"session_id": id,
		"views":      views,
	}).Info("Session created")

	return sess, nil
}

func (s *sessionService) GetSession(ctx context.Context, id string) (*entity.AnalysisSession, error) {
	sess, err := s.repo.Load(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepository.ErrNotFound) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) ResetSession(ctx context.Context, id string) error {
	if _, err := s.GetSession(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// stepOrder maps the wizard steps to their sequence so any backward move is
// always legal while forward moves are gated below.
var stepOrder = map[entity.SessionStep]int{
	entity.StepTypeSelect: 0,
	entity.StepUpload:     1,
	entity.StepAlign:      2,
	entity.StepAnalyze:    3,
}

func (s *sessionService) AdvanceStep(ctx context.Context, id string, step entity.SessionStep) (*entity.AnalysisSession, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if sess.Status == entity.StatusAnalyzing {
		return nil, session.ErrSessionBusy
	}

	target, ok := stepOrder[step]
	if !ok {
		return nil, session.ErrIllegalStepTransition
	}

	if target > stepOrder[sess.Step] {
		switch step {
		case entity.StepAlign, entity.StepAnalyze:
			if !sess.UploadsComplete() {
				return nil, session.ErrUploadsIncomplete
			}
		}
	}

	sess.Step = step
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// AttachPhoto runs the upload through the image pipeline and overwrites the
// slot URL. A superseded upload simply loses: last write wins per slot. The
// slot's transform survives a re-upload so alignment work is not thrown away.
func (s *sessionService) AttachPhoto(ctx context.Context, id, slot string, data []byte, contentType string) (*entity.AnalysisSession, error) {
	sess, photo, err := s.loadSlot(ctx, id, slot)
	if err != nil {
		return nil, err
	}

	encoded := s.pipeline.EncodeDataURL(data, contentType)
	photo.URL = s.pipeline.Normalize(encoded)

	sess.Photos[slot] = photo
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"session_id": id,
		"slot":       slot,
		"bytes":      len(data),
	}).Debug("Photo attached")

	return sess, nil
}

func (s *sessionService) loadSlot(ctx context.Context, id, slot string) (*entity.AnalysisSession, entity.PhotoData, error) {
	if !entity.ValidSlot(slot) {
		return nil, entity.PhotoData{}, session.ErrInvalidSlot
	}

	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, entity.PhotoData{}, err
	}

	if (slot == entity.SlotKey(1, entity.PhaseBefore) || slot == entity.SlotKey(1, entity.PhaseAfter)) && !sess.DualView() {
		return nil, entity.PhotoData{}, session.ErrSlotNotSelected
	}

	return sess, sess.Photos[slot], nil
}
