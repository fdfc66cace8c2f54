package services

import (
	"testing"

	"moneylab-academy/models"
)

func TestLessonAccessiblePaidPlanSeesEverything(t *testing.T) {
	mod := &models.CourseModule{Code: "m20", IsPremium: true}
	lesson := &models.Lesson{ID: "l20-9", IsPremium: true}

	for _, plan := range []string{models.PlanPro, models.PlanElite} {
		if !LessonAccessible(mod, lesson, plan) {
			t.Errorf("%s must unlock premium lessons", plan)
		}
	}
}

func TestLessonAccessibleFreePlanGating(t *testing.T) {
	freeMod := &models.CourseModule{Code: "m3"}
	premiumMod := &models.CourseModule{Code: "m20", IsPremium: true}
	openLesson := &models.Lesson{ID: "l3-1"}
	lockedLesson := &models.Lesson{ID: "l3-9", IsPremium: true}

	if !LessonAccessible(freeMod, openLesson, models.PlanFree) {
		t.Error("open lesson in a free module must be accessible")
	}
	if LessonAccessible(freeMod, lockedLesson, models.PlanFree) {
		t.Error("premium lesson must be locked on the free plan")
	}
	if LessonAccessible(premiumMod, openLesson, models.PlanFree) {
		t.Error("any lesson of a premium module must be locked on the free plan")
	}
	// Unknown plans behave as the free tier.
	if !LessonAccessible(freeMod, openLesson, "") {
		t.Error("unknown plan must still see open lessons in free modules")
	}
	if LessonAccessible(premiumMod, lockedLesson, "TRIAL") {
		t.Error("unknown plan must not unlock premium content")
	}
}

func TestScoreAnswersCountsOnlyMatchedQuestions(t *testing.T) {
	quizzes := []models.Quiz{
		{ID: "q1-1", CorrectAnswer: 2, Explanation: "porque sim"},
		{ID: "q1-2", CorrectAnswer: 0},
		{ID: "q1-3", CorrectAnswer: 1},
	}

	// One right, one wrong, one stale id from an outdated client, one stored
	// question left unanswered.
	answers := map[string]int{
		"q1-1":     2,
		"q1-2":     3,
		"q9-stale": 0,
	}

	result := scoreAnswers(quizzes, answers)

	if result.Total != 2 {
		t.Fatalf("total = %d, want 2 (stale ids and unanswered questions excluded)", result.Total)
	}
	if result.Correct != 1 {
		t.Fatalf("correct = %d, want 1", result.Correct)
	}
	if len(result.Review) != 2 {
		t.Fatalf("review has %d entries, want 2", len(result.Review))
	}
	if result.Review[0].QuizID != "q1-1" || !result.Review[0].WasCorrect {
		t.Errorf("first outcome = %+v, want correct q1-1", result.Review[0])
	}
	if result.Review[0].Explanation != "porque sim" {
		t.Errorf("explanation not carried: %+v", result.Review[0])
	}
	if result.Review[1].QuizID != "q1-2" || result.Review[1].WasCorrect {
		t.Errorf("second outcome = %+v, want wrong q1-2", result.Review[1])
	}
}

func TestScoreAnswersEmptySubmission(t *testing.T) {
	result := scoreAnswers([]models.Quiz{{ID: "q1-1", CorrectAnswer: 0}}, nil)
	if result.Total != 0 || result.Correct != 0 || len(result.Review) != 0 {
		t.Fatalf("empty submission scored: %+v", result)
	}
}
