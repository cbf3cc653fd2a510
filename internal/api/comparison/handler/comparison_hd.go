package comparisonHandler

import (
	"PostureRefine/internal/api/comparison"
	"PostureRefine/internal/entity"
	contextPkg "PostureRefine/pkg/context"
	"PostureRefine/pkg/handlerUtil"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *ComparisonHandler) GetFrame(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	frame, err := h.comparisonService.Frame(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_comparison_frame")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, comparison.FrameResponse{Data: frame})
}

func (h *ComparisonHandler) GetAlignmentFrame(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	frame, err := h.comparisonService.AlignmentFrame(c, ctx.Params("id"), ctx.Params("slot"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_alignment_frame")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, comparison.FrameResponse{Data: frame})
}

func (h *ComparisonHandler) UpdateState(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req comparison.UpdateStateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	var active *entity.ActiveView
	if req.ActiveView != nil {
		v := entity.ActiveView(*req.ActiveView)
		active = &v
	}

	state, err := h.comparisonService.UpdateState(c, ctx.Params("id"), req.RevealPosition, active)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_comparison_state")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, comparison.StateResponse{Data: state})
}

func (h *ComparisonHandler) GetOverlay(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	layer := ctx.Query("layer", "after")
	slot := ctx.Query("slot")

	svg, err := h.comparisonService.OverlaySVG(c, ctx.Params("id"), slot, layer)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "render_overlay")
	}

	ctx.Set(fiber.HeaderContentType, "image/svg+xml")
	return ctx.Status(fiber.StatusOK).SendString(svg)
}
