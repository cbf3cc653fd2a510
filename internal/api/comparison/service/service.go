package comparisonService

import (
	"PostureRefine/internal/api/comparison"
	sessionRepository "PostureRefine/internal/api/session/repository"
	"PostureRefine/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IComparisonService interface {
	Frame(ctx context.Context, sessionID string) (comparison.Frame, error)
	AlignmentFrame(ctx context.Context, sessionID, slot string) (comparison.Frame, error)
	UpdateState(ctx context.Context, sessionID string, reveal *float64, active *entity.ActiveView) (entity.ComparisonState, error)
	OverlaySVG(ctx context.Context, sessionID, slot, layer string) (string, error)
}

type comparisonService struct {
	log         *logrus.Logger
	sessionRepo sessionRepository.Repository
}

func New(log *logrus.Logger, sessionRepo sessionRepository.Repository) IComparisonService {
	return &comparisonService{
		log:         log,
		sessionRepo: sessionRepo,
	}
}
