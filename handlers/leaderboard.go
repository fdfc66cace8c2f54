// handlers/leaderboard.go
package handlers

import (
	"moneylab-academy/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, userCtx fiber.Handler, leaderboardService *services.LeaderboardService) {
	securedGroup := app.Group("/s", userCtx)

	// Top of the global ranking, capped at the visible board size.
	securedGroup.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries, err := leaderboardService.TopRanking()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load ranking",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"entries": entries,
			"size":    services.LeaderboardSize,
		})
	})

	// Ranking window centered on the caller, for the dashboard widget.
	securedGroup.Get("/leaderboard/around-me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		entries, err := leaderboardService.AroundUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load ranking window",
				"cause": err.Error(),
			})
		}

		rank, inTop, err := leaderboardService.UserRank(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute rank",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"entries": entries,
			"rank":    rank,
			"in_top":  inTop,
		})
	})
}
