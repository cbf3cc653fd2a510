package comparisonHandler

import (
	comparisonService "PostureRefine/internal/api/comparison/service"
	"PostureRefine/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ComparisonHandler struct {
	log               *logrus.Logger
	validator         *validator.Validate
	middleware        middleware.Middleware
	comparisonService comparisonService.IComparisonService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	cs comparisonService.IComparisonService,
) *ComparisonHandler {
	return &ComparisonHandler{
		log:               log,
		validator:         validator,
		middleware:        middleware,
		comparisonService: cs,
	}
}

func (h *ComparisonHandler) Start(srv fiber.Router) {
	sessions := srv.Group("/sessions")
	sessions.Get("/:id/comparison", h.GetFrame)
	sessions.Patch("/:id/comparison", h.UpdateState)
	sessions.Get("/:id/photos/:slot/alignment", h.GetAlignmentFrame)
	sessions.Get("/:id/overlay", h.GetOverlay)
}
