package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/observability"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

const bearerScheme = "Bearer "

// Gate is the per-request authentication filter guarding protected routes.
// It runs at most once per request and resolves to exactly one of three
// outcomes: forward authenticated, forward unauthenticated, or reject.
type Gate struct {
	tokens   *TokenService
	resolver IdentityResolver
	policy   *AccessPolicy
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// NewGate constructs the filter.
func NewGate(tokens *TokenService, resolver IdentityResolver, policy *AccessPolicy, logger *zap.Logger, metrics *observability.Metrics) *Gate {
	return &Gate{tokens: tokens, resolver: resolver, policy: policy, logger: logger, metrics: metrics}
}

// Handle inspects the Authorization header and publishes a security context
// when the presented token is valid for an enabled principal.
func (g *Gate) Handle(c *fiber.Ctx) error {
	path := c.Path()

	// Public routes bypass authentication entirely.
	if g.policy.IsPublic(path) {
		g.metrics.RecordAuthOutcome(observability.AuthOutcomeBypassed)
		return c.Next()
	}

	// Missing or non-bearer header: the request proceeds unauthenticated and
	// downstream authorization decides whether that is acceptable.
	header := c.Get(fiber.HeaderAuthorization)
	if !hasBearerPrefixFold(header) {
		g.metrics.RecordAuthOutcome(observability.AuthOutcomeAnonymous)
		return c.Next()
	}

	raw := strings.TrimSpace(header[len(bearerScheme):])

	subject, err := g.tokens.ExtractSubject(raw)
	if err != nil {
		g.logger.Warn("malformed bearer token rejected", zap.String("path", path))
		g.metrics.RecordAuthOutcome(observability.AuthOutcomeRejected)
		return apperrors.NewTokenMalformed("token invalid")
	}

	if _, ok := SecurityContextFrom(c); ok || subject == "" {
		g.metrics.RecordAuthOutcome(observability.AuthOutcomeAnonymous)
		return c.Next()
	}

	principal, err := g.resolver.Resolve(c.Context(), subject)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			g.logger.Warn("token subject not authorized", zap.String("subject", subject))
			g.metrics.RecordAuthOutcome(observability.AuthOutcomeRejected)
			return apperrors.NewPrincipalNotFound("principal not authorized")
		}
		return apperrors.MapError(err)
	}

	if g.tokens.IsValid(raw, principal) && principal.Enabled() {
		publishSecurityContext(c, &SecurityContext{
			Principal:   principal,
			Authorities: principal.Authorities(),
			RemoteAddr:  c.IP(),
		})
		g.metrics.RecordAuthOutcome(observability.AuthOutcomeAuthenticated)
		return c.Next()
	}

	// Observed behavior kept on purpose: a token that decodes but fails
	// validation forwards the request without a context instead of rejecting
	// it; role guards further down then deny access.
	g.logger.Warn("token not valid for principal, proceeding unauthenticated",
		zap.String("subject", subject))
	g.metrics.RecordAuthOutcome(observability.AuthOutcomeAnonymous)
	return c.Next()
}

// hasBearerPrefixFold matches the bearer scheme marker case-insensitively.
func hasBearerPrefixFold(header string) bool {
	return len(header) >= len(bearerScheme) && strings.EqualFold(header[:len(bearerScheme)], bearerScheme)
}
