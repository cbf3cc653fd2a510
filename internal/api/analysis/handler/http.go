package analysisHandler

import (
	analysisService "PostureRefine/internal/api/analysis/service"
	"PostureRefine/internal/middleware"
	"PostureRefine/pkg/aistudio"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AnalysisHandler struct {
	log             *logrus.Logger
	validator       *validator.Validate
	middleware      middleware.Middleware
	analysisService analysisService.IAnalysisService
	keys            aistudio.IKeySelector
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	as analysisService.IAnalysisService,
	keys aistudio.IKeySelector,
) *AnalysisHandler {
	return &AnalysisHandler{
		log:             log,
		validator:       validator,
		middleware:      middleware,
		analysisService: as,
		keys:            keys,
	}
}

func (h *AnalysisHandler) Start(srv fiber.Router) {
	sessions := srv.Group("/sessions")
	sessions.Post("/:id/analyze", h.middleware.NewRateLimiter, h.Analyze)
	sessions.Get("/:id/results", h.Results)
	sessions.Get("/:id/report", h.Report)

	credential := srv.Group("/credential")
	credential.Get("/", h.CredentialStatus)
	credential.Post("/select", h.SelectCredential)
}
