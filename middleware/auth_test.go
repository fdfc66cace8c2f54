package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func adminTestApp(roles []string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		c.Locals("user_roles", roles)
		return c.Next()
	})
	admin := app.Group("/s/admin", RequireRole("admin"))
	admin.Post("/xp/grant", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRoleBlocksNonAdmins(t *testing.T) {
	cases := []struct {
		name  string
		roles []string
		want  int
	}{
		{"no roles", nil, fiber.StatusForbidden},
		{"other role", []string{"user"}, fiber.StatusForbidden},
		{"admin", []string{"admin"}, fiber.StatusOK},
		{"admin among others", []string{"user", "admin"}, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := adminTestApp(tc.roles)
			req := httptest.NewRequest("POST", "/s/admin/xp/grant", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("roles %v: status = %d, want %d", tc.roles, resp.StatusCode, tc.want)
			}
		})
	}
}
