package analysisHandler

import (
	"PostureRefine/internal/api/analysis"
	"PostureRefine/internal/entity"
	contextPkg "PostureRefine/pkg/context"
	"PostureRefine/pkg/handlerUtil"
	"PostureRefine/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AnalysisHandler) Analyze(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	// Long ceiling: the budget covers the retries, not only one attempt.
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 120*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)
	sessionID := ctx.Params("id")

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"path":       ctx.Path(),
	}).Info("Starting posture analysis")

	results, err := h.analysisService.Analyze(c, sessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_posture")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.AnalyzeResponse{
			SessionID: sessionID,
			Status:    entity.StatusComplete,
			Data:      results,
		})
	}
}

func (h *AnalysisHandler) Results(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	results, err := h.analysisService.Results(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_results")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.ResultsResponse{Data: results})
}

func (h *AnalysisHandler) Report(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	report, err := h.analysisService.Report(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_report")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.Status(fiber.StatusOK).SendString(report)
}

func (h *AnalysisHandler) CredentialStatus(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(analysis.CredentialStatusResponse{
		Selected: h.keys.HasSelectedKey(),
		Labels:   h.keys.Labels(),
	})
}

func (h *AnalysisHandler) SelectCredential(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req analysis.SelectCredentialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.keys.SelectKey(req.Label); err != nil {
		return errHandler.Handle(ctx, requestID, analysis.ErrUnknownCredential, ctx.Path(), "select_credential")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"label":      req.Label,
	}).Info("Credential selected")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, analysis.CredentialStatusResponse{
		Selected: true,
		Labels:   h.keys.Labels(),
	})
}
