package services

import (
	"fmt"
	"log"
	"time"

	"moneylab-academy/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseService struct {
	DB          *gorm.DB
	Progression *ProgressionService
}

func NewCourseService(db *gorm.DB, progression *ProgressionService) *CourseService {
	return &CourseService{DB: db, Progression: progression}
}

// SeedCatalog upserts the static course catalog. Safe to run on every boot;
// keyed by module code so redeploys pick up content edits.
func (s *CourseService) SeedCatalog() error {
	for i, seed := range models.ModuleCatalog {
		mod := models.CourseModule{
			Code:        seed.Code,
			Slug:        slug.Make(seed.Title),
			Title:       seed.Title,
			Description: seed.Description,
			Objective:   seed.Objective,
			Application: seed.Application,
			Icon:        seed.Icon,
			IsPremium:   seed.IsPremium,
			Position:    i + 1,
		}
		if err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"slug", "title", "description", "objective", "application",
				"icon", "is_premium", "position", "updated_at",
			}),
		}).Create(&mod).Error; err != nil {
			return fmt.Errorf("failed to seed module %s: %w", seed.Code, err)
		}

		lessons := models.GenerateLessons(seed.Code, seed.IsPremium)
		for _, lesson := range lessons {
			if err := s.DB.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"title", "type", "duration", "is_premium", "content", "position",
				}),
			}).Create(&lesson).Error; err != nil {
				return fmt.Errorf("failed to seed lesson %s: %w", lesson.ID, err)
			}
		}

		for _, quiz := range seed.Quizzes {
			if err := s.DB.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"question", "options", "correct_answer", "explanation",
				}),
			}).Create(&quiz).Error; err != nil {
				return fmt.Errorf("failed to seed quiz %s: %w", quiz.ID, err)
			}
		}
	}
	log.Printf("📚 Course catalog seeded (%d modules)", len(models.ModuleCatalog))
	return nil
}

// ListModules returns the catalog ordered by position, without lesson bodies.
func (s *CourseService) ListModules() ([]models.CourseModule, error) {
	var modules []models.CourseModule
	err := s.DB.Order("position ASC").Find(&modules).Error
	return modules, err
}

// GetModule loads one module with its lessons and curated quizzes.
func (s *CourseService) GetModule(slugOrCode string) (*models.CourseModule, error) {
	var mod models.CourseModule
	err := s.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Quizzes").
		Where("slug = ? OR code = ?", slugOrCode, slugOrCode).
		First(&mod).Error
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

// LessonAccessible applies the plan gate: premium lessons need a paid plan.
func LessonAccessible(mod *models.CourseModule, lesson *models.Lesson, plan string) bool {
	if models.IsPaidPlan(plan) {
		return true
	}
	return !mod.IsPremium && !lesson.IsPremium
}

// CompleteLesson books the fixed lesson reward. The lesson must exist and be
// accessible under the user's plan.
func (s *CourseService) CompleteLesson(userID, moduleSlug, lessonID, plan string, now time.Time) (*models.UserProgress, error) {
	mod, err := s.GetModule(moduleSlug)
	if err != nil {
		return nil, err
	}

	var lesson *models.Lesson
	for i := range mod.Lessons {
		if mod.Lessons[i].ID == lessonID {
			lesson = &mod.Lessons[i]
			break
		}
	}
	if lesson == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if !LessonAccessible(mod, lesson, plan) {
		return nil, ErrPremiumLocked
	}

	return s.Progression.GrantXP(userID, LessonXP, fmt.Sprintf("lesson_%s_completed", lesson.ID), now)
}

// QuizResult is the outcome of a submitted module exam.
type QuizResult struct {
	Total     int                   `json:"total"`
	Correct   int                   `json:"correct"`
	XPAwarded int64                 `json:"xp_awarded"`
	Progress  *models.UserProgress  `json:"progress"`
	Review    []QuizQuestionOutcome `json:"review"`
}

type QuizQuestionOutcome struct {
	QuizID      string `json:"quiz_id"`
	Selected    int    `json:"selected"`
	Correct     int    `json:"correct"`
	WasCorrect  bool   `json:"was_correct"`
	Explanation string `json:"explanation"`
}

// scoreAnswers matches submitted answers against the stored questions.
// Unknown or stale quiz ids are skipped and do not count toward the total,
// so correct/total always reflects questions that were actually scored.
func scoreAnswers(quizzes []models.Quiz, answers map[string]int) *QuizResult {
	result := &QuizResult{}
	for _, quiz := range quizzes {
		selected, ok := answers[quiz.ID]
		if !ok {
			continue
		}
		outcome := QuizQuestionOutcome{
			QuizID:      quiz.ID,
			Selected:    selected,
			Correct:     quiz.CorrectAnswer,
			WasCorrect:  selected == quiz.CorrectAnswer,
			Explanation: quiz.Explanation,
		}
		result.Total++
		if outcome.WasCorrect {
			result.Correct++
		}
		result.Review = append(result.Review, outcome)
	}
	return result
}

// SubmitQuiz scores answers against the stored questions and pays the exam
// bonus. The bonus is granted for finishing, independent of the score — the
// exam is pedagogy, not a gate.
func (s *CourseService) SubmitQuiz(userID, moduleSlug string, answers map[string]int, plan string, now time.Time) (*QuizResult, error) {
	mod, err := s.GetModule(moduleSlug)
	if err != nil {
		return nil, err
	}
	if mod.IsPremium && !models.IsPaidPlan(plan) {
		return nil, ErrPremiumLocked
	}

	result := scoreAnswers(mod.Quizzes, answers)

	prog, err := s.Progression.GrantXP(userID, ModuleExamXP, fmt.Sprintf("module_%s_exam_completed", mod.Code), now)
	if err != nil {
		return nil, err
	}
	result.Progress = prog
	result.XPAwarded = ModuleExamXP

	log.Printf("🎓 Exam finished: %s on %s → %d/%d correct", userID, mod.Code, result.Correct, result.Total)
	return result, nil
}
