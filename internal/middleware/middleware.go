package middleware

import (
	"strings"

	"careernest/internal/models"
	"careernest/internal/service"

	"github.com/gofiber/fiber/v3"
)

const principalKey = "principal"

func principalFromClaims(claims *models.Claims) *models.Principal {
	principal := &models.Principal{
		Role:  claims.Role,
		Email: claims.Email,
	}
	switch claims.Role {
	case models.RoleSeeker:
		principal.SeekerID = claims.UserID
	case models.RoleCompany:
		principal.CompanyID = claims.UserID
	}
	return principal
}

func bearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid session token and stores the
// authenticated principal for downstream handlers.
func RequireAuth(jwtService *service.JWTService) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization token",
			})
		}
		claims, err := jwtService.VerifySessionToken(token)
		if err != nil || claims.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session token",
			})
		}
		c.Locals(principalKey, principalFromClaims(claims))
		return c.Next()
	}
}

// OptionalAuth resolves a principal when a valid token is present but lets
// anonymous requests through. Listing endpoints use this to personalize
// results without requiring login.
func OptionalAuth(jwtService *service.JWTService) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := bearerToken(c); token != "" {
			if claims, err := jwtService.VerifySessionToken(token); err == nil && claims.Role != "" {
				c.Locals(principalKey, principalFromClaims(claims))
			}
		}
		return c.Next()
	}
}

// RequireRole gates a route group to one role. It assumes RequireAuth ran
// earlier in the chain.
func RequireRole(role models.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		principal := Principal(c)
		if principal == nil || principal.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient permissions",
			})
		}
		return c.Next()
	}
}

// Principal returns the authenticated principal, or nil for anonymous
// requests behind OptionalAuth.
func Principal(c fiber.Ctx) *models.Principal {
	principal, _ := c.Locals(principalKey).(*models.Principal)
	return principal
}
