// handlers/plans.go
package handlers

import (
	"log"

	"moneylab-academy/models"
	"moneylab-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

func SetupPlanRoutes(app *fiber.App, userCtx fiber.Handler, db *gorm.DB) {
	// Pricing page is public — no user context required.
	app.Get("/plans", func(c *fiber.Ctx) error {
		type planView struct {
			models.Plan
			PriceDisplay string `json:"price_display"`
		}
		views := make([]planView, 0, len(models.PlanCatalog))
		for _, p := range models.PlanCatalog {
			views = append(views, planView{
				Plan:         p,
				PriceDisplay: utils.FormatBRL(p.PriceCents),
			})
		}
		return c.JSON(views)
	})

	securedGroup := app.Group("/s", userCtx)

	// Upgrades only move forward (FREE → PRO → ELITE). Billing is settled
	// upstream; this endpoint records the outcome and updates the mirror.
	securedGroup.Post("/user/plan/upgrade", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		roles, _ := c.Locals("user_roles").([]string)

		type Req struct {
			Plan string `json:"plan"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if !models.IsKnownPlan(req.Plan) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown plan",
			})
		}

		var profile models.Profile
		if err := db.Where("external_user_id = ?", userID).First(&profile).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "profile not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}

		if !models.IsUpgrade(profile.Plan, req.Plan) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":        "plan changes only move forward",
				"current_plan": profile.Plan,
			})
		}

		change := models.PlanChange{
			ExternalUserID: userID,
			FromPlan:       profile.Plan,
			ToPlan:         req.Plan,
			Roles:          pq.StringArray(roles),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Profile{}).
				Where("external_user_id = ?", userID).
				Update("plan", req.Plan).Error; err != nil {
				return err
			}
			return tx.Create(&change).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "plan upgrade failed",
				"cause": err.Error(),
			})
		}

		log.Printf("💳 Plan upgraded: %s %s → %s", userID, change.FromPlan, change.ToPlan)
		return c.JSON(fiber.Map{
			"plan":      req.Plan,
			"from_plan": change.FromPlan,
			"change_id": change.ID,
		})
	})
}
