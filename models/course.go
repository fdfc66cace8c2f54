package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	LessonTypeTheory    = "theory"
	LessonTypePractical = "practical"
	LessonTypeDeepDive  = "deep-dive"
)

// CourseModule is one course in the catalog. The catalog is static product
// content seeded at boot; progress against it lives in UserProgress.
type CourseModule struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"` // stable catalog id, e.g. "m7"
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Objective   string `json:"objective"`
	Application string `json:"application"`
	Icon        string `json:"icon" gorm:"type:varchar(16)"`
	IsPremium   bool   `json:"is_premium" gorm:"default:false"`
	Position    int    `json:"position" gorm:"index"`

	Lessons []Lesson `json:"lessons" gorm:"foreignKey:ModuleCode;references:Code"`
	Quizzes []Quiz   `json:"quizzes" gorm:"foreignKey:ModuleCode;references:Code"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

type Lesson struct {
	ID         string `json:"id" gorm:"primaryKey"` // catalog id, e.g. "l7-3"
	ModuleCode string `json:"module_code" gorm:"index;not null"`
	Title      string `json:"title" gorm:"not null"`
	Type       string `json:"type" gorm:"type:varchar(16)"` // theory | practical | deep-dive
	Duration   string `json:"duration"`
	IsPremium  bool   `json:"is_premium" gorm:"default:false"`
	Content    string `json:"content" gorm:"type:text"`
	Position   int    `json:"position"`
}

// Quiz is a stored multiple-choice question. Generated exams from the AI are
// not persisted; these are the curated baseline questions.
type Quiz struct {
	ID            string         `json:"id" gorm:"primaryKey"` // catalog id, e.g. "q1-1"
	ModuleCode    string         `json:"module_code" gorm:"index;not null"`
	Question      string         `json:"question" gorm:"type:text;not null"`
	Options       pq.StringArray `json:"options" gorm:"type:text[]"`
	CorrectAnswer int            `json:"correct_answer"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
}
