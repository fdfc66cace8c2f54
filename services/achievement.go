package services

import (
	"log"

	"moneylab-academy/models"

	"gorm.io/gorm"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// SeedAchievementTypes upserts the static trigger catalog at boot.
func (s *AchievementService) SeedAchievementTypes() error {
	for _, trigger := range models.AchievementTriggers {
		var existing models.AchievementType
		err := s.DB.Where("code = ?", trigger.Code).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := s.DB.Create(&trigger).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// AutoAward checks all triggers against the given progress record and awards
// anything newly earned. Called after every XP grant.
func (s *AchievementService) AutoAward(prog *models.UserProgress) error {
	var types []models.AchievementType
	if err := s.DB.Find(&types).Error; err != nil {
		return err
	}

	for _, t := range types {
		if !meetsThreshold(prog, t.Threshold) {
			continue
		}
		var count int64
		s.DB.Model(&models.UserAchievement{}).
			Where("external_user_id = ? AND achievement_type_id = ?", prog.ExternalUserID, t.ID).
			Count(&count)
		if count > 0 {
			continue
		}
		award := models.UserAchievement{
			ExternalUserID:    prog.ExternalUserID,
			AchievementTypeID: t.ID,
		}
		if err := s.DB.Create(&award).Error; err != nil {
			return err
		}
		log.Printf("🎖️ Achievement awarded: %s → %s", t.Name, prog.ExternalUserID)
	}
	return nil
}

// ListForUser returns the user's achievements joined with their type info.
func (s *AchievementService) ListForUser(externalUserID string) ([]map[string]interface{}, error) {
	type row struct {
		models.UserAchievement
		Code        string
		Name        string
		Description string
		Icon        string
		Rarity      string
	}
	var rows []row
	err := s.DB.Model(&models.UserAchievement{}).
		Select("user_achievements.*, achievement_types.code, achievement_types.name, achievement_types.description, achievement_types.icon, achievement_types.rarity").
		Joins("INNER JOIN achievement_types ON achievement_types.id = user_achievements.achievement_type_id").
		Where("user_achievements.external_user_id = ?", externalUserID).
		Order("user_achievements.awarded_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, r := range rows {
		out = append(out, map[string]interface{}{
			"id":          r.ID,
			"code":        r.Code,
			"name":        r.Name,
			"description": r.Description,
			"icon":        r.Icon,
			"rarity":      r.Rarity,
			"awarded_at":  r.AwardedAt,
		})
	}
	return out, nil
}

func meetsThreshold(prog *models.UserProgress, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "xp":
			if prog.XP < required {
				return false
			}
		case "level":
			if int64(prog.Level) < required {
				return false
			}
		case "streak":
			if int64(prog.Streak) < required {
				return false
			}
		case "event": // special: always true (e.g., first grant)
			return true
		}
	}
	return true
}
