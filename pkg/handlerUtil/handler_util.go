package handlerUtil

import (
	"PostureRefine/internal/api/analysis"
	"PostureRefine/internal/api/comparison"
	"PostureRefine/internal/api/session"
	"PostureRefine/pkg/log"
	"PostureRefine/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// mapped pairs a sentinel error with the structured body the client sees.
// Remediation is only set where an action actually exists.
type mapped struct {
	err         error
	status      int
	message     string
	code        string
	remediation string
}

var errorTable = []mapped{
	// Analysis failure classes
	{analysis.ErrMissingCredential, fiber.StatusPreconditionFailed, "No API credential configured", "MISSING_CREDENTIAL", "configure_key"},
	{analysis.ErrInvalidCredential, fiber.StatusUnauthorized, "API credential was rejected by the vision service", "INVALID_CREDENTIAL", "select_key"},
	{analysis.ErrRateLimited, fiber.StatusTooManyRequests, "Vision service quota exceeded", "RATE_LIMITED", "select_key"},
	{analysis.ErrUnsupportedModel, fiber.StatusBadGateway, "Requested model is unavailable for this credential", "UNSUPPORTED_MODEL", ""},
	{analysis.ErrMalformedResponse, fiber.StatusBadGateway, "Vision service returned an empty or malformed response", "MALFORMED_RESPONSE", "retry"},
	{analysis.ErrTransientNetwork, fiber.StatusBadGateway, "Analysis call failed", "TRANSIENT_NETWORK", "retry"},
	{analysis.ErrAnalysisInFlight, fiber.StatusConflict, "Analysis already in progress", "ANALYSIS_IN_FLIGHT", ""},
	{analysis.ErrResultsNotReady, fiber.StatusNotFound, "Analysis results not available", "RESULTS_NOT_READY", ""},
	{analysis.ErrIncompleteViewData, fiber.StatusConflict, "Selected views are missing before or after photos", "INCOMPLETE_VIEW_DATA", ""},
	{analysis.ErrUnknownCredential, fiber.StatusBadRequest, "Unknown credential label", "UNKNOWN_CREDENTIAL", ""},

	// Session domain
	{session.ErrSessionNotFound, fiber.StatusNotFound, "Session not found", "SESSION_NOT_FOUND", ""},
	{session.ErrInvalidSlot, fiber.StatusBadRequest, "Invalid photo slot", "INVALID_SLOT", ""},
	{session.ErrSlotNotSelected, fiber.StatusBadRequest, "Slot does not belong to a selected view", "SLOT_NOT_SELECTED", ""},
	{session.ErrInvalidViewSelection, fiber.StatusBadRequest, "Invalid view selection", "INVALID_VIEW_SELECTION", ""},
	{session.ErrUploadsIncomplete, fiber.StatusConflict, "Before and after photos are required for every selected view", "UPLOADS_INCOMPLETE", ""},
	{session.ErrIllegalStepTransition, fiber.StatusConflict, "Illegal step transition", "ILLEGAL_STEP_TRANSITION", ""},
	{session.ErrSessionBusy, fiber.StatusConflict, "Analysis already in progress", "SESSION_BUSY", ""},

	// Comparison domain
	{comparison.ErrNoResults, fiber.StatusNotFound, "No analysis results to compare", "NO_RESULTS", ""},
	{comparison.ErrViewUnavailable, fiber.StatusBadRequest, "Requested view was not analyzed", "VIEW_UNAVAILABLE", ""},
	{comparison.ErrIncompleteViewData, fiber.StatusConflict, "Active view is missing required photos", "INCOMPLETE_VIEW_DATA", ""},
	{comparison.ErrInvalidLayer, fiber.StatusBadRequest, "Invalid overlay layer", "INVALID_LAYER", ""},
	{comparison.ErrInvalidSlot, fiber.StatusBadRequest, "Invalid photo slot", "INVALID_SLOT", ""},
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			h.logger.WithFields(log.Fields{
				"request_id": requestID,
				"error":      err.Error(),
				"code":       m.code,
				"path":       path,
				"operation":  operation,
			}).Warn(m.message)

			body := fiber.Map{
				"error": m.message,
				"code":  m.code,
			}
			if m.remediation != "" {
				body["remediation"] = m.remediation
			}
			return c.Status(m.status).JSON(body)
		}
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
