package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

const securityContextKey = "auth_security_context"

// SecurityContext is the request-scoped record of the authenticated caller.
// It is created fresh for each request that presents a valid token and is
// discarded when the request ends; it is never shared across requests.
type SecurityContext struct {
	Principal   *domain.User
	Authorities []string
	RemoteAddr  string
}

// publishSecurityContext attaches the context to the current request.
func publishSecurityContext(c *fiber.Ctx, sc *SecurityContext) {
	c.Locals(securityContextKey, sc)
}

// SecurityContextFrom retrieves the security context for the current request.
func SecurityContextFrom(c *fiber.Ctx) (*SecurityContext, bool) {
	val := c.Locals(securityContextKey)
	if val == nil {
		return nil, false
	}
	sc, ok := val.(*SecurityContext)
	return sc, ok
}
