package sessionService

import (
	"PostureRefine/internal/api/session"
	"PostureRefine/internal/entity"

	"golang.org/x/net/context"
)

// Stepped transform controls: zoom by a signed delta (floor-clamped), toggle
// horizontal flip, or restore the identity transform. The renderer later
// replays the exact same transform, so this is the only place it mutates.
func (s *sessionService) ApplyTransform(ctx context.Context, id, slot, op string, delta float64) (entity.PhotoData, error) {
	sess, photo, err := s.loadSlot(ctx, id, slot)
	if err != nil {
		return entity.PhotoData{}, err
	}

	switch op {
	case "zoom":
		photo.Zoom(delta)
	case "flip":
		photo.Flip()
	case "reset":
		photo.Reset()
	default:
		return entity.PhotoData{}, session.ErrInvalidSlot
	}

	sess.Photos[slot] = photo
	if err := s.repo.Save(ctx, sess); err != nil {
		return entity.PhotoData{}, err
	}

	return photo, nil
}

// CommitDragDelta folds one drag sample's delta into the slot offset. The
// delta is measured since the previous sample, not since drag start, so
// accumulation stays path-independent and re-entering a drag never jumps.
func (s *sessionService) CommitDragDelta(ctx context.Context, id, slot string, dx, dy float64) (entity.PhotoData, error) {
	sess, photo, err := s.loadSlot(ctx, id, slot)
	if err != nil {
		return entity.PhotoData{}, err
	}

	photo.Pan(dx, dy)

	sess.Photos[slot] = photo
	if err := s.repo.Save(ctx, sess); err != nil {
		return entity.PhotoData{}, err
	}

	return photo, nil
}
