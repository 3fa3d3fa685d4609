package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/iam/user"
	"github.com/talenthub/portal/pkg/kernel"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeUnauthorized = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeForbidden    = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient role")
)

func ErrUnauthorized() *errx.Error { return ErrRegistry.New(CodeUnauthorized) }
func ErrForbidden() *errx.Error    { return ErrRegistry.New(CodeForbidden) }

const authContextKey = "auth_context"

// AuthContext is the authenticated identity attached to a request
type AuthContext struct {
	UserID kernel.UserID
	Role   user.Role
}

// GetAuthContext retrieves the authenticated identity from the request
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

// Middleware guards routes with bearer-token authentication
type Middleware struct {
	tokens *TokenService
}

func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate validates the bearer token and stores the identity
func (m *Middleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return ErrUnauthorized()
		}

		claims, err := m.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return ErrUnauthorized().WithDetail("reason", err.Error())
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: kernel.UserID(claims.Subject),
			Role:   claims.Role,
		})
		return c.Next()
	}
}

// RequireStaff restricts the route to admin and rrhh roles
func (m *Middleware) RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authCtx.Role.IsStaff() {
			return ErrForbidden().WithDetail("role", authCtx.Role)
		}
		return c.Next()
	}
}
