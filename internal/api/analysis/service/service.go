package analysisService

import (
	sessionRepository "PostureRefine/internal/api/session/repository"
	"PostureRefine/internal/entity"
	"PostureRefine/pkg/aistudio"
	"PostureRefine/pkg/gemini"
	"PostureRefine/pkg/imagepipe"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAnalysisService interface {
	Analyze(ctx context.Context, sessionID string) (*entity.AnalysisResults, error)
	Results(ctx context.Context, sessionID string) (*entity.AnalysisResults, error)
	Report(ctx context.Context, sessionID string) (string, error)
}

type analysisService struct {
	log         *logrus.Logger
	gemini      gemini.IGemini
	keys        aistudio.IKeySelector
	sessionRepo sessionRepository.Repository
	pipeline    imagepipe.IPipeline
	policy      RetryPolicy
}

func New(
	log *logrus.Logger,
	gemini gemini.IGemini,
	keys aistudio.IKeySelector,
	sessionRepo sessionRepository.Repository,
	pipeline imagepipe.IPipeline,
	policy RetryPolicy,
) IAnalysisService {
	return &analysisService{
		log:         log,
		gemini:      gemini,
		keys:        keys,
		sessionRepo: sessionRepo,
		pipeline:    pipeline,
		policy:      policy,
	}
}
