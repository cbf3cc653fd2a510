package sessionService

import (
	sessionRepository "PostureRefine/internal/api/session/repository"
	"PostureRefine/internal/entity"
	"PostureRefine/pkg/imagepipe"
	"PostureRefine/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ISessionService interface {
	CreateSession(ctx context.Context, views []entity.ViewType) (*entity.AnalysisSession, error)
	GetSession(ctx context.Context, id string) (*entity.AnalysisSession, error)
	ResetSession(ctx context.Context, id string) error
	AdvanceStep(ctx context.Context, id string, step entity.SessionStep) (*entity.AnalysisSession, error)
	AttachPhoto(ctx context.Context, id, slot string, data []byte, contentType string) (*entity.AnalysisSession, error)
	ApplyTransform(ctx context.Context, id, slot, op string, delta float64) (entity.PhotoData, error)
	CommitDragDelta(ctx context.Context, id, slot string, dx, dy float64) (entity.PhotoData, error)
}

type sessionService struct {
	log      *logrus.Logger
	repo     sessionRepository.Repository
	pipeline imagepipe.IPipeline
	utils    utils.IUtils
}

func New(
	log *logrus.Logger,
	repo sessionRepository.Repository,
	pipeline imagepipe.IPipeline,
	utils utils.IUtils,
) ISessionService {
	return &sessionService{
		log:      log,
		repo:     repo,
		pipeline: pipeline,
		utils:    utils,
	}
}
