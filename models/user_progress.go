package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// DailyWindowSize is the number of slots in the rolling per-day XP history.
const DailyWindowSize = 7

// UserProgress tracks gamified progression for each user (denormalized for performance)
type UserProgress struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	// Core progression
	XP          int64 `json:"xp" gorm:"default:0"`
	Level       int   `json:"level" gorm:"default:1"`
	XPNextLevel int64 `json:"xp_next_level" gorm:"default:1000"` // threshold for the next level-up; grows ×1.5 (floored)

	// Rolling 7-day XP window, oldest→newest. Always exactly DailyWindowSize slots.
	DailyXP pq.Int64Array `json:"daily_xp" gorm:"type:bigint[]"`

	// Engagement
	Streak           int        `json:"streak" gorm:"default:1"` // consecutive active days
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	LastClaimedAt    *time.Time `json:"last_claimed_at,omitempty"` // daily bonus gate (24h rolling, not calendar)

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TodayXP returns the newest slot of the daily window.
func (p *UserProgress) TodayXP() int64 {
	if len(p.DailyXP) == 0 {
		return 0
	}
	return p.DailyXP[len(p.DailyXP)-1]
}
