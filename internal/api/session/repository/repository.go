package sessionRepository

import (
	"PostureRefine/internal/entity"
	redisPkg "PostureRefine/pkg/redis"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// Sessions live in Redis under a TTL; a reset deletes the key outright.
// Nothing here is durable storage.
const sessionTTL = 24 * time.Hour

const analysisLockTTL = 2 * time.Minute

type Repository interface {
	Save(ctx context.Context, s *entity.AnalysisSession) error
	Load(ctx context.Context, id string) (*entity.AnalysisSession, error)
	Delete(ctx context.Context, id string) error
	AcquireAnalysisLock(ctx context.Context, id string) (bool, error)
	ReleaseAnalysisLock(ctx context.Context, id string) error
}

type repository struct {
	redis redisPkg.IRedis
	log   *logrus.Logger
}

func New(redis redisPkg.IRedis, log *logrus.Logger) Repository {
	return &repository{
		redis: redis,
		log:   log,
	}
}
