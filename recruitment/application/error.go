package application

import (
	"net/http"

	"github.com/talenthub/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeAlreadyApplied          = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeConflict, http.StatusConflict, "You already applied to this search")
	CodeInvalidState            = ErrRegistry.Register("INVALID_STATE", errx.TypeValidation, http.StatusBadRequest, "Unknown application state")
	CodeInvalidStateTransition  = ErrRegistry.Register("INVALID_STATE_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid state transition")
	CodeInvalidStateFilter      = ErrRegistry.Register("INVALID_STATE_FILTER", errx.TypeValidation, http.StatusBadRequest, "Unknown state filter")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrInvalidState() *errx.Error {
	return ErrRegistry.New(CodeInvalidState)
}

func ErrInvalidStateTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStateTransition)
}

func ErrInvalidStateFilter() *errx.Error {
	return ErrRegistry.New(CodeInvalidStateFilter)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
