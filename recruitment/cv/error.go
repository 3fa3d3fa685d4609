package cv

import (
	"net/http"

	"github.com/talenthub/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CV")

// Error codes
var (
	CodeCvNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "CV not found")
	CodeDocumentNotFound   = ErrRegistry.Register("DOCUMENT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "CV document not found")
	CodeIncompleteDocument = ErrRegistry.Register("INCOMPLETE_DOCUMENT", errx.TypeBusiness, http.StatusBadRequest, "Document reference must carry both file id and url")
	CodeFileSizeTooLarge   = ErrRegistry.Register("FILE_SIZE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	CodeInvalidFileType    = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type")
	CodeInvalidRequest     = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrCvNotFound() *errx.Error {
	return ErrRegistry.New(CodeCvNotFound)
}

func ErrDocumentNotFound() *errx.Error {
	return ErrRegistry.New(CodeDocumentNotFound)
}

func ErrIncompleteDocument() *errx.Error {
	return ErrRegistry.New(CodeIncompleteDocument)
}

func ErrFileSizeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileSizeTooLarge)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
