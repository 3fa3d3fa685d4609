package cvapi

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/talenthub/portal/pkg/iam/auth"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/cv"
	"github.com/talenthub/portal/recruitment/cv/cvsrv"
)

// Handlers provides HTTP handlers for CV operations
type Handlers struct {
	service *cvsrv.CvService
}

// NewHandlers creates a new CV handlers instance
func NewHandlers(service *cvsrv.CvService) *Handlers {
	return &Handlers{service: service}
}

// GetMyCv retrieves the caller's CV
// GET /api/cv/me
func (h *Handlers) GetMyCv(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	record, err := h.service.GetCvByUserID(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// SaveMyCv creates or replaces the caller's CV data
// PUT /api/cv/me
func (h *Handlers) SaveMyCv(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req cv.SaveCvRequest
	if err := c.BodyParser(&req); err != nil {
		return cv.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	record, err := h.service.SaveCv(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// UploadDocument attaches a new CV file to the caller's CV
// POST /api/cv/me/document
func (h *Handlers) UploadDocument(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	file, err := c.FormFile("file")
	if err != nil {
		return cv.ErrInvalidRequest().WithDetail("file", "file is required")
	}

	opened, err := file.Open()
	if err != nil {
		return cv.ErrInvalidRequest().WithDetail("file", "failed to open uploaded file")
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		return cv.ErrInvalidRequest().WithDetail("file", "failed to read uploaded file")
	}

	resp, err := h.service.UploadDocument(
		c.Context(),
		authContext.UserID,
		data,
		file.Filename,
		file.Header.Get(fiber.HeaderContentType),
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RemoveDocument detaches the caller's CV file
// DELETE /api/cv/me/document
func (h *Handlers) RemoveDocument(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.RemoveDocument(c.Context(), authContext.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetMyDocumentURL resolves a fresh download URL for the caller's document
// GET /api/cv/me/document/url
func (h *Handlers) GetMyDocumentURL(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	url, err := h.service.ResolveDocumentURL(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(cv.DocumentURLResponse{URL: url})
}

// GetDocumentURLByCvID resolves a fresh download URL for any CV's document
// GET /api/admin/cvs/:id/document/url
func (h *Handlers) GetDocumentURLByCvID(c *fiber.Ctx) error {
	cvID := kernel.CvID(c.Params("id"))
	if cvID.IsEmpty() {
		return cv.ErrCvNotFound().WithDetail("id", "missing or empty")
	}

	url, err := h.service.ResolveDocumentURLByCvID(c.Context(), cvID)
	if err != nil {
		return err
	}
	return c.JSON(cv.DocumentURLResponse{URL: url})
}

// RegisterRoutes registers all CV routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	me := app.Group("/api/cv/me", authMiddleware.Authenticate())
	me.Get("/", handlers.GetMyCv)
	me.Put("/", handlers.SaveMyCv)
	me.Post("/document", handlers.UploadDocument)
	me.Delete("/document", handlers.RemoveDocument)
	me.Get("/document/url", handlers.GetMyDocumentURL)

	admin := app.Group("/api/admin/cvs",
		authMiddleware.Authenticate(),
		authMiddleware.RequireStaff(),
	)
	admin.Get("/:id/document/url", handlers.GetDocumentURLByCvID)
}
