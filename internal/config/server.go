package config

import (
	analysisHandler "PostureRefine/internal/api/analysis/handler"
	analysisService "PostureRefine/internal/api/analysis/service"
	comparisonHandler "PostureRefine/internal/api/comparison/handler"
	comparisonService "PostureRefine/internal/api/comparison/service"
	sessionHandler "PostureRefine/internal/api/session/handler"
	sessionRepository "PostureRefine/internal/api/session/repository"
	sessionService "PostureRefine/internal/api/session/service"
	"PostureRefine/internal/middleware"
	"PostureRefine/pkg/aistudio"
	"PostureRefine/pkg/gemini"
	"PostureRefine/pkg/imagepipe"
	"PostureRefine/pkg/redis"
	"PostureRefine/pkg/utils"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	keySelector  aistudio.IKeySelector
	geminiClient gemini.IGemini
	pipeline     imagepipe.IPipeline
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithKeySelector(selector aistudio.IKeySelector) ServerOption {
	return func(s *Server) error {
		s.keySelector = selector
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		if s.keySelector == nil {
			return fmt.Errorf("key selector must be initialized before the Gemini client")
		}
		s.geminiClient = gemini.NewGeminiClient(s.keySelector)
		return nil
	}
}

func WithImagePipeline() ServerOption {
	return func(s *Server) error {
		s.pipeline = imagepipe.New()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	sessionRepo := sessionRepository.New(s.redisServer, s.log)

	// Session Domain
	sessionServices := sessionService.New(s.log, sessionRepo, s.pipeline, s.utils)
	sessionHandlers := sessionHandler.New(s.log, s.validator, s.middleware, sessionServices, s.utils)

	// Analysis Domain
	analysisServices := analysisService.New(s.log, s.geminiClient, s.keySelector, sessionRepo, s.pipeline, analysisService.PolicyFromEnv())
	analysisHandlers := analysisHandler.New(s.log, s.validator, s.middleware, analysisServices, s.keySelector)

	// Comparison Domain
	comparisonServices := comparisonService.New(s.log, sessionRepo)
	comparisonHandlers := comparisonHandler.New(s.log, s.validator, s.middleware, comparisonServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, sessionHandlers, analysisHandlers, comparisonHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
