package services

import (
	"moneylab-academy/models"
	"moneylab-academy/utils"

	"gorm.io/gorm"
)

// LeaderboardSize caps the global ranking page.
const LeaderboardSize = 50

// RankingEntry is one row of the global ranking, shaped for the dashboard.
type RankingEntry struct {
	Position       int     `json:"position"`
	ExternalUserID string  `json:"external_user_id"`
	Name           string  `json:"name"`
	PhotoURL       *string `json:"photo_url,omitempty"`
	Plan           string  `json:"plan"`
	XP             int64   `json:"xp"`
	XPDisplay      string  `json:"xp_display"`
	Level          int     `json:"level"`
}

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// TopRanking returns up to LeaderboardSize users ordered by total XP.
// Profiles without a progress row yet simply don't rank.
func (s *LeaderboardService) TopRanking() ([]RankingEntry, error) {
	return s.ranking(LeaderboardSize, 0)
}

func (s *LeaderboardService) ranking(limit, offset int) ([]RankingEntry, error) {
	type row struct {
		ExternalUserID string
		Name           string
		PhotoURL       *string
		Plan           string
		XP             int64
		Level          int
	}
	var rows []row
	err := s.DB.Model(&models.UserProgress{}).
		Select("user_progresses.external_user_id, profiles.name, profiles.photo_url, profiles.plan, user_progresses.xp, user_progresses.level").
		Joins("INNER JOIN profiles ON profiles.external_user_id = user_progresses.external_user_id AND profiles.deleted_at IS NULL").
		Order("user_progresses.xp DESC, user_progresses.created_at ASC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(rows))
	for i, r := range rows {
		plan := r.Plan
		if !models.IsKnownPlan(plan) {
			plan = models.PlanFree
		}
		entries = append(entries, RankingEntry{
			Position:       offset + i + 1,
			ExternalUserID: r.ExternalUserID,
			Name:           r.Name,
			PhotoURL:       r.PhotoURL,
			Plan:           plan,
			XP:             r.XP,
			XPDisplay:      utils.FormatXP(r.XP),
			Level:          r.Level,
		})
	}
	return entries, nil
}

// UserRank returns the caller's 1-based position. inTop reports whether the
// user sits inside the visible top window; outside it the UI shows "50+".
func (s *LeaderboardService) UserRank(externalUserID string) (rank int, inTop bool, err error) {
	var prog models.UserProgress
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error; err != nil {
		return 0, false, err
	}

	var ahead int64
	if err := s.DB.Model(&models.UserProgress{}).
		Where("xp > ?", prog.XP).
		Count(&ahead).Error; err != nil {
		return 0, false, err
	}

	rank = int(ahead) + 1
	return rank, rank <= LeaderboardSize, nil
}

// AroundUser returns the ranking window centered on the user (±5 positions),
// for the dashboard widget.
func (s *LeaderboardService) AroundUser(externalUserID string) ([]RankingEntry, error) {
	rank, _, err := s.UserRank(externalUserID)
	if err != nil {
		return nil, err
	}

	lower := rank - 5
	if lower < 1 {
		lower = 1
	}
	return s.ranking(11, lower-1)
}
