// handlers/course.go
package handlers

import (
	"errors"
	"time"

	"moneylab-academy/models"
	"moneylab-academy/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCourseRoutes(app *fiber.App, userCtx fiber.Handler, courseService *services.CourseService, nexusService *services.NexusService) {
	securedGroup := app.Group("/s", userCtx)

	// Full catalog, ordered by trail position. Premium flags are included so
	// the client can render locks without fetching each module.
	securedGroup.Get("/modules", func(c *fiber.Ctx) error {
		modules, err := courseService.ListModules()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list modules",
				"cause": err.Error(),
			})
		}
		return c.JSON(modules)
	})

	securedGroup.Get("/modules/:slug", func(c *fiber.Ctx) error {
		mod, err := courseService.GetModule(c.Params("slug"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "module not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load module",
				"cause": err.Error(),
			})
		}

		plan, _ := c.Locals("user_plan").(string)
		type lessonView struct {
			models.Lesson
			Accessible bool `json:"accessible"`
		}
		lessons := make([]lessonView, 0, len(mod.Lessons))
		for i := range mod.Lessons {
			lessons = append(lessons, lessonView{
				Lesson:     mod.Lessons[i],
				Accessible: services.LessonAccessible(mod, &mod.Lessons[i], plan),
			})
		}

		return c.JSON(fiber.Map{
			"module":  mod,
			"lessons": lessons,
		})
	})

	securedGroup.Post("/modules/:slug/lessons/:lessonID/complete", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		plan, _ := c.Locals("user_plan").(string)

		prog, err := courseService.CompleteLesson(userID, c.Params("slug"), c.Params("lessonID"), plan, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrPremiumLocked) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "premium content requires an upgraded plan",
				})
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "lesson not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to complete lesson",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"xp_awarded":    services.LessonXP,
			"xp":            prog.XP,
			"level":         prog.Level,
			"xp_next_level": prog.XPNextLevel,
		})
	})

	// Deep-dive lesson synthesis (AI, paid plans only).
	securedGroup.Post("/modules/:slug/lessons/:lessonID/deep-dive", func(c *fiber.Ctx) error {
		plan, _ := c.Locals("user_plan").(string)
		if !models.IsPaidPlan(plan) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "premium content requires an upgraded plan",
			})
		}

		mod, err := courseService.GetModule(c.Params("slug"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "module not found",
			})
		}

		lessonID := c.Params("lessonID")
		var lessonTitle string
		for i := range mod.Lessons {
			if mod.Lessons[i].ID == lessonID {
				lessonTitle = mod.Lessons[i].Title
				break
			}
		}
		if lessonTitle == "" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "lesson not found",
			})
		}

		content, err := nexusService.GenerateDeepLesson(c.Context(), mod.Title, lessonTitle)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "lesson synthesis failed",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"module":  mod.Code,
			"lesson":  lessonID,
			"content": content,
		})
	})

	// AI-generated module exam. Questions are generated fresh; scoring uses
	// the answers echoed back on submit against the stored curated quizzes.
	securedGroup.Get("/modules/:slug/quiz", func(c *fiber.Ctx) error {
		mod, err := courseService.GetModule(c.Params("slug"))
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "module not found",
			})
		}

		plan, _ := c.Locals("user_plan").(string)
		if mod.IsPremium && !models.IsPaidPlan(plan) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "premium content requires an upgraded plan",
			})
		}

		// Curated questions first; fall back to generation when the module
		// has none.
		if len(mod.Quizzes) > 0 {
			return c.JSON(mod.Quizzes)
		}

		quizzes, err := nexusService.GenerateModuleQuiz(c.Context(), mod.Title, mod.Objective)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "quiz generation failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(quizzes)
	})

	securedGroup.Post("/modules/:slug/quiz/submit", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		plan, _ := c.Locals("user_plan").(string)

		type Req struct {
			Answers map[string]int `json:"answers"` // quiz id → selected option index
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		result, err := courseService.SubmitQuiz(userID, c.Params("slug"), req.Answers, plan, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrPremiumLocked) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "premium content requires an upgraded plan",
				})
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "module not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to submit exam",
				"cause": err.Error(),
			})
		}

		return c.JSON(result)
	})
}
