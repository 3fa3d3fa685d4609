package searchapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talenthub/portal/pkg/iam/auth"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/search"
	"github.com/talenthub/portal/recruitment/search/searchsrv"
)

// Handlers provides HTTP handlers for search operations
type Handlers struct {
	service *searchsrv.SearchService
}

// NewHandlers creates a new search handlers instance
func NewHandlers(service *searchsrv.SearchService) *Handlers {
	return &Handlers{service: service}
}

// ListActiveSearches lists searches open for applications
// GET /api/searches
func (h *Handlers) ListActiveSearches(c *fiber.Ctx) error {
	items, err := h.service.ListActiveSearches(c.Context(), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetSearchByID retrieves a search by ID
// GET /api/searches/:id
func (h *Handlers) GetSearchByID(c *fiber.Ctx) error {
	searchID := kernel.SearchID(c.Params("id"))
	if searchID.IsEmpty() {
		return search.ErrSearchNotFound().WithDetail("id", "missing or empty")
	}

	s, err := h.service.GetSearchByID(c.Context(), searchID)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// ListSearches lists all searches regardless of status
// GET /api/admin/searches
func (h *Handlers) ListSearches(c *fiber.Ctx) error {
	items, err := h.service.ListSearches(c.Context(), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// CreateSearch creates a new search
// POST /api/admin/searches
func (h *Handlers) CreateSearch(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req search.CreateSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return search.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateSearch(c.Context(), req, authContext.UserID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateSearch updates an existing search
// PATCH /api/admin/searches/:id
func (h *Handlers) UpdateSearch(c *fiber.Ctx) error {
	searchID := kernel.SearchID(c.Params("id"))
	if searchID.IsEmpty() {
		return search.ErrSearchNotFound().WithDetail("id", "missing or empty")
	}

	var req search.UpdateSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return search.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateSearch(c.Context(), searchID, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteSearch deletes a search
// DELETE /api/admin/searches/:id
func (h *Handlers) DeleteSearch(c *fiber.Ctx) error {
	searchID := kernel.SearchID(c.Params("id"))
	if searchID.IsEmpty() {
		return search.ErrSearchNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteSearch(c.Context(), searchID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{Page: page, PageSize: pageSize}
}

// RegisterRoutes registers all search routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	public := app.Group("/api/searches")
	public.Get("/", handlers.ListActiveSearches)
	public.Get("/:id", handlers.GetSearchByID)

	admin := app.Group("/api/admin/searches",
		authMiddleware.Authenticate(),
		authMiddleware.RequireStaff(),
	)
	admin.Get("/", handlers.ListSearches)
	admin.Post("/", handlers.CreateSearch)
	admin.Patch("/:id", handlers.UpdateSearch)
	admin.Delete("/:id", handlers.DeleteSearch)
}
