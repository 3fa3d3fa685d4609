package search

import (
	"net/http"

	"github.com/talenthub/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SEARCH")

// Error codes
var (
	CodeSearchNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Search not found")
	CodeSearchNotActive = ErrRegistry.Register("NOT_ACTIVE", errx.TypeBusiness, http.StatusBadRequest, "Search is not accepting applications")
	CodeInvalidStatus   = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid search status")
	CodeInvalidRequest  = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrSearchNotFound() *errx.Error {
	return ErrRegistry.New(CodeSearchNotFound)
}

func ErrSearchNotActive() *errx.Error {
	return ErrRegistry.New(CodeSearchNotActive)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
