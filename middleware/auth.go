// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"moneylab-academy/services"
)

// UserContextMiddleware extracts user identity, roles and plan set by the
// Gateway. When the gateway headers are absent but the request carries its
// own bearer token (direct clients, local dev), it falls back to validating
// the token against the auth service.
func UserContextMiddleware(authClient *services.AuthServiceClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		rolesStr := c.Get("X-User-Roles")
		plan := c.Get("X-User-Plan")

		if userID == "" && authClient != nil {
			if token := bearerToken(c); token != "" {
				session, err := authClient.ValidateToken(token)
				if err != nil {
					log.Printf("❌ [USER_CTX] Token validation failed on %s: %v", c.Path(), err)
				} else {
					userID = session.UserID
					rolesStr = strings.Join(session.Roles, ",")
					plan = session.Plan
				}
			}
		}

		// Enforce user context on secured paths (i.e., /s/ or /s/admin/)
		path := c.Path()
		isSecured := strings.HasPrefix(path, "/s/")
		if isSecured && userID == "" {
			log.Printf("❌ [USER_CTX] X-User-ID required but missing on secured route: %s", path)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		var roles []string
		if rolesStr != "" {
			for _, r := range strings.Split(rolesStr, ",") {
				r = strings.TrimSpace(r)
				if r != "" {
					roles = append(roles, r)
				}
			}
		}

		// Attach to ctx for handlers
		c.Locals("user_id", userID)
		c.Locals("user_roles", roles)
		c.Locals("user_plan", plan)

		return c.Next()
	}
}

// RequireRole guards admin routes. Roles come from the gateway headers.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("user_roles").([]string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		log.Printf("🚫 [USER_CTX] Role %q required for %s", role, c.Path())
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	token := strings.TrimPrefix(h, "Bearer ")
	if token == h {
		return ""
	}
	return token
}
