package sessionRepository

import (
	"PostureRefine/internal/entity"
	"errors"

	redisPkg "PostureRefine/pkg/redis"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"
)

var ErrNotFound = errors.New("session not found")

func (r *repository) Save(ctx context.Context, s *entity.AnalysisSession) error {
	payload, err := jsoniter.Marshal(s)
	if err != nil {
		r.log.Errorf("Failed to marshal session %s: %v", s.ID, err)
		return err
	}

	return r.redis.SetSession(ctx, s.ID, payload, sessionTTL)
}

func (r *repository) Load(ctx context.Context, id string) (*entity.AnalysisSession, error) {
	payload, err := r.redis.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, redisPkg.ErrSessionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var s entity.AnalysisSession
	if err := jsoniter.Unmarshal(payload, &s); err != nil {
		r.log.Errorf("Failed to unmarshal session %s: %v", id, err)
		return nil, err
	}

	return &s, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.redis.DeleteSession(ctx, id)
}

func (r *repository) AcquireAnalysisLock(ctx context.Context, id string) (bool, error) {
	return r.redis.AcquireAnalysisLock(ctx, id, analysisLockTTL)
}

func (r *repository) ReleaseAnalysisLock(ctx context.Context, id string) error {
	return r.redis.ReleaseAnalysisLock(ctx, id)
}
