package comparison

import (
	"PostureRefine/pkg/response"
	"net/http"
)

var (
	ErrNoResults          = response.NewError(http.StatusNotFound, "no analysis results to compare")
	ErrViewUnavailable    = response.NewError(http.StatusBadRequest, "requested view was not analyzed")
	ErrIncompleteViewData = response.NewError(http.StatusConflict, "active view is missing required photos")
	ErrInvalidLayer       = response.NewError(http.StatusBadRequest, "invalid overlay layer")
	ErrInvalidSlot        = response.NewError(http.StatusBadRequest, "invalid photo slot")
)
