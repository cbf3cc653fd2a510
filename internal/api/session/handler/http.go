package sessionHandler

import (
	sessionService "PostureRefine/internal/api/session/service"
	"PostureRefine/internal/middleware"
	"PostureRefine/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type SessionHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	sessionService sessionService.ISessionService
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ss sessionService.ISessionService,
	utils utils.IUtils,
) *SessionHandler {
	return &SessionHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		sessionService: ss,
		utils:          utils,
	}
}

func (h *SessionHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	sessions := srv.Group("/sessions")
	sessions.Post("/", h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.ResetSession)
	sessions.Patch("/:id/step", h.AdvanceStep)
	sessions.Post("/:id/photos/:slot", h.UploadPhoto)
	sessions.Patch("/:id/photos/:slot/transform", h.ApplyTransform)

	sessions.Use("/:id/photos/:slot/align/ws", wsMiddleware)
	sessions.Get("/:id/photos/:slot/align/ws", websocket.New(h.handleAlignWebSocket))
}
