package applicationapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talenthub/portal/pkg/iam/auth"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/application"
	"github.com/talenthub/portal/recruitment/application/applicationsrv"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{service: service}
}

// Submit applies the caller to a search
// POST /api/applications
func (h *Handlers) Submit(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req application.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.Submit(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// ListMine lists the caller's applications
// GET /api/applications/mine
func (h *Handlers) ListMine(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	rows, err := h.service.ListMine(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Withdraw removes the caller's application
// DELETE /api/applications/:id
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	appID := kernel.ApplicationID(c.Params("id"))
	if appID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.Withdraw(c.Context(), appID, authContext.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": appID, "withdrawn": true})
}

// AdminList lists applications for staff review
// GET /api/admin/applications?state=&search=&q=
func (h *Handlers) AdminList(c *fiber.Ctx) error {
	filters := application.AdminListFilters{
		State:    application.ApplicationState(c.Query("state")),
		SearchID: kernel.SearchID(c.Query("search")),
		Query:    c.Query("q"),
	}

	rows, err := h.service.AdminList(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// UpdateState moves an application to a new review state
// PATCH /api/admin/applications/:id
func (h *Handlers) UpdateState(c *fiber.Ctx) error {
	appID := kernel.ApplicationID(c.Params("id"))
	if appID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStateRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	app, err := h.service.Transition(c.Context(), appID, req.State)
	if err != nil {
		return err
	}
	return c.JSON(app)
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	mine := app.Group("/api/applications", authMiddleware.Authenticate())
	mine.Post("/", handlers.Submit)
	mine.Get("/mine", handlers.ListMine)
	mine.Delete("/:id", handlers.Withdraw)

	admin := app.Group("/api/admin/applications",
		authMiddleware.Authenticate(),
		authMiddleware.RequireStaff(),
	)
	admin.Get("/", handlers.AdminList)
	admin.Patch("/:id", handlers.UpdateState)
}
