// handlers/progression_routes.go
package handlers

import (
	"strconv"
	"time"

	"moneylab-academy/middleware"
	"moneylab-academy/services"
	"moneylab-academy/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(app *fiber.App, userCtx fiber.Handler, progressionService *services.ProgressionService, leaderboardService *services.LeaderboardService) {
	// 🔐 Secured routes — require user context (userID, plan, roles)
	// The gateway forwards paths like /api/v1/academy/s/user/progress -> /s/user/progress
	securedGroup := app.Group("/s", userCtx)

	securedGroup.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		now := time.Now()

		prog, err := progressionService.LoadProgress(userID, now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load progress",
				"cause": err.Error(),
			})
		}

		// Rank widget: position or "50+" when outside the visible board.
		rankDisplay := ""
		if rank, inTop, err := leaderboardService.UserRank(userID); err == nil {
			if inTop {
				rankDisplay = strconv.Itoa(rank)
			} else {
				rankDisplay = "50+"
			}
		}

		return c.JSON(fiber.Map{
			"id":                 prog.ID,
			"xp":                 prog.XP,
			"xp_display":         utils.FormatXP(prog.XP),
			"level":              prog.Level,
			"xp_next_level":      prog.XPNextLevel,
			"daily_xp":           prog.DailyXP,
			"today_xp":           prog.TodayXP(),
			"streak":             prog.Streak,
			"rank_display":       rankDisplay,
			"can_claim_daily":    services.CanClaim(prog, now),
			"last_claimed_at":    prog.LastClaimedAt,
			"last_activity_date": prog.LastActivityDate,
			"last_level_up_at":   prog.LastLevelUpAt,
		})
	})

	securedGroup.Post("/user/progress/claim-daily", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		now := time.Now()

		prog, claimed, err := progressionService.ClaimDailyBonus(userID, now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "daily claim failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"claimed":         claimed,
			"bonus_xp":        services.DailyBonusXP,
			"xp":              prog.XP,
			"level":           prog.Level,
			"streak":          prog.Streak,
			"last_claimed_at": prog.LastClaimedAt,
			"can_claim_daily": services.CanClaim(prog, now),
		})
	})

	securedGroup.Get("/user/progress/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		achievements, err := progressionService.Achievements.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get achievements",
				"cause": err.Error(),
			})
		}
		return c.JSON(achievements)
	})

	// Admin endpoints
	adminGroup := app.Group("/s/admin", userCtx, middleware.RequireRole("admin"))

	adminGroup.Post("/xp/grant", func(c *fiber.Ctx) error {
		type Req struct {
			UserID string `json:"user_id"`
			XP     int64  `json:"xp"`
			Reason string `json:"reason"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if req.UserID == "" || req.XP < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id and a positive xp amount are required",
			})
		}

		prog, err := progressionService.GrantXP(req.UserID, req.XP, "admin_grant:"+req.Reason, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "XP grant failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "XP granted successfully",
			"user_id": req.UserID,
			"xp":      req.XP,
			"level":   prog.Level,
			"total":   prog.XP,
		})
	})
}
