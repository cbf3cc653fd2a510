package sessionHandler

import (
	"PostureRefine/internal/api/session"
	"PostureRefine/internal/entity"
	contextPkg "PostureRefine/pkg/context"
	"PostureRefine/pkg/handlerUtil"
	"PostureRefine/pkg/log"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SessionHandler) CreateSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req session.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	views := make([]entity.ViewType, 0, len(req.Views))
	for _, v := range req.Views {
		views = append(views, entity.ViewType(v))
	}

	sess, err := h.sessionService.CreateSession(c, views)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_session")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sess.ID,
		"views":      req.Views,
	}).Info("Session created")

	return errHandler.HandleSuccess(ctx, fiber.StatusCreated, session.SessionResponse{Data: sess})
}

func (h *SessionHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sess, err := h.sessionService.GetSession(c, ctx.Params("id"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, session.SessionResponse{Data: sess})
}

func (h *SessionHandler) ResetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.sessionService.ResetSession(c, ctx.Params("id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reset_session")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": ctx.Params("id"),
	}).Info("Session reset")

	return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
}

func (h *SessionHandler) AdvanceStep(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req session.AdvanceStepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	sess, err := h.sessionService.AdvanceStep(c, ctx.Params("id"), entity.SessionStep(req.Step))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "advance_step")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, session.SessionResponse{Data: sess})
}

func (h *SessionHandler) UploadPhoto(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_form_file")
	}

	if err := h.utils.ValidateImageFile(file); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing photo upload")

	fileContent, err := file.Open()
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
	}
	defer fileContent.Close()

	data, err := io.ReadAll(fileContent)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
	}

	slot := ctx.Params("slot")
	sess, err := h.sessionService.AttachPhoto(c, ctx.Params("id"), slot, data, file.Header.Get("Content-Type"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "attach_photo")
	}

	uploaded := 0
	for _, p := range sess.Photos {
		if p.Uploaded() {
			uploaded++
		}
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, session.UploadResponse{
		Slot:   slot,
		URL:    sess.Photos[slot].URL,
		Photos: uploaded,
	})
}

func (h *SessionHandler) ApplyTransform(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req session.TransformRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	photo, err := h.sessionService.ApplyTransform(c, ctx.Params("id"), ctx.Params("slot"), req.Op, req.Delta)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "apply_transform")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, session.PhotoResponse{Data: photo})
}
