// handlers/profile.go
package handlers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"moneylab-academy/models"
	"moneylab-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxAvatarSize = 2 * 1024 * 1024 // 2MB

func SetupProfileRoutes(app *fiber.App, userCtx fiber.Handler, db *gorm.DB) {
	securedGroup := app.Group("/s", userCtx)

	securedGroup.Get("/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var profile models.Profile
		if err := db.Where("external_user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Sync worker hasn't seen this user yet. Serve gateway
				// context as a provisional profile instead of failing.
				plan, _ := c.Locals("user_plan").(string)
				if !models.IsKnownPlan(plan) {
					plan = models.PlanFree
				}
				return c.JSON(fiber.Map{
					"external_user_id": userID,
					"name":             "Alpha Pioneer",
					"plan":             plan,
					"provisional":      true,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load profile",
				"cause": err.Error(),
			})
		}

		now := time.Now()
		profile.LastSeen = &now
		if err := db.Model(&profile).Update("last_seen", now).Error; err != nil {
			log.Printf("⚠️ Failed to touch last_seen for %s: %v", userID, err)
		}

		return c.JSON(profile)
	})

	securedGroup.Put("/user/profile", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			Name *string `json:"name"`
			Bio  *string `json:"bio"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" || len(name) > 60 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "name must be 1–60 characters",
				})
			}
			updates["name"] = name
		}
		if req.Bio != nil {
			if len(*req.Bio) > 500 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "bio must be at most 500 characters",
				})
			}
			updates["bio"] = *req.Bio
		}
		if len(updates) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "nothing to update",
			})
		}

		res := db.Model(&models.Profile{}).Where("external_user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update profile",
				"cause": res.Error.Error(),
			})
		}
		if res.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "profile not found",
			})
		}

		var profile models.Profile
		if err := db.Where("external_user_id = ?", userID).First(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to reload profile",
				"cause": err.Error(),
			})
		}
		return c.JSON(profile)
	})

	securedGroup.Post("/user/profile/photo", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		fileHeader, err := c.FormFile("photo")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "photo file is required",
				"cause": err.Error(),
			})
		}
		if fileHeader.Size > maxAvatarSize {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": "photo must be at most 2MB",
			})
		}

		contentType := fileHeader.Header.Get("Content-Type")
		ext := ""
		switch contentType {
		case "image/png":
			ext = ".png"
		case "image/jpeg":
			ext = ".jpg"
		case "image/webp":
			ext = ".webp"
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "photo must be PNG, JPEG or WebP",
			})
		}

		key := fmt.Sprintf("avatars/%s-%s%s", userID, uuid.NewString()[:8], ext)

		var photoURL string
		if utils.R2Configured() {
			photoURL, err = utils.UploadFileToR2(fileHeader, key)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "photo upload failed",
					"cause": err.Error(),
				})
			}
		} else {
			dest := utils.GetUploadPath(filepath.Base(key))
			if err := utils.SaveFile(fileHeader, dest); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "photo upload failed",
					"cause": err.Error(),
				})
			}
			photoURL = "/" + dest
		}

		res := db.Model(&models.Profile{}).
			Where("external_user_id = ?", userID).
			Update("photo_url", photoURL)
		if res.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save photo URL",
				"cause": res.Error.Error(),
			})
		}
		if res.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "profile not found",
			})
		}

		return c.JSON(fiber.Map{
			"photo_url": photoURL,
		})
	})
}
