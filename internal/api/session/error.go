package session

import (
	"PostureRefine/pkg/response"
	"net/http"
)

var (
	ErrSessionNotFound       = response.NewError(http.StatusNotFound, "session not found")
	ErrInvalidSlot           = response.NewError(http.StatusBadRequest, "invalid photo slot")
	ErrSlotNotSelected       = response.NewError(http.StatusBadRequest, "slot does not belong to a selected view")
	ErrInvalidViewSelection  = response.NewError(http.StatusBadRequest, "invalid view selection")
	ErrUploadsIncomplete     = response.NewError(http.StatusConflict, "before and after photos are required for every selected view")
	ErrIllegalStepTransition = response.NewError(http.StatusConflict, "illegal step transition")
	ErrSessionBusy           = response.NewError(http.StatusConflict, "analysis already in progress")
)
