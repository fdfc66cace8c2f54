// handlers/news.go
package handlers

import (
	"strings"
	"time"

	"moneylab-academy/models"
	"moneylab-academy/services"

	"github.com/gofiber/fiber/v2"
)

func SetupNewsRoutes(app *fiber.App, userCtx fiber.Handler, newsService *services.NewsService, nexusService *services.NexusService) {
	securedGroup := app.Group("/s", userCtx)

	// Market news feed. Served from the daily cache; refresh=true forces a
	// regeneration (paid plans only, the feed is expensive to rebuild).
	securedGroup.Get("/news", func(c *fiber.Ctx) error {
		plan, _ := c.Locals("user_plan").(string)
		limit := services.NewsLimitForPlan(plan)

		forceRefresh := c.QueryBool("refresh", false)
		if forceRefresh && !models.IsPaidPlan(plan) {
			forceRefresh = false
		}

		items, cached, err := newsService.TodayNews(c.Context(), limit, forceRefresh, time.Now())
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "failed to load market news",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"items":  items,
			"cached": cached,
			"limit":  limit,
		})
	})

	// Terminal Nexus Alpha — grounded Q&A, paid plans only.
	securedGroup.Post("/terminal", func(c *fiber.Ctx) error {
		plan, _ := c.Locals("user_plan").(string)
		if !models.IsPaidPlan(plan) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "terminal access requires an upgraded plan",
			})
		}

		type Req struct {
			Query string `json:"query"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		req.Query = strings.TrimSpace(req.Query)
		if req.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "query is required",
			})
		}

		answer, err := nexusService.AskTerminal(c.Context(), req.Query)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "terminal query failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(answer)
	})
}
