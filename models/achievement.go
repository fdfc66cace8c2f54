package models

import (
	"time"
)

// AchievementType: static config (seeded into the DB at boot)
type AchievementType struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string `gorm:"uniqueIndex;not null"` // e.g., "FIRST_LESSON", "STREAK_7"
	Name        string `gorm:"not null"`
	Description string
	Icon        string           `gorm:"type:varchar(16)"`                  // emoji shown by the UI
	Rarity      string           `gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"serializer:json;type:jsonb"`        // e.g., {"level": 5}, {"streak": 7}
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

// UserAchievement: awarded instance
type UserAchievement struct {
	ID                string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID    string    `gorm:"index:idx_user_achievement,unique;not null" json:"external_user_id"`
	AchievementTypeID string    `gorm:"index:idx_user_achievement,unique;not null" json:"achievement_type_id"`
	AwardedAt         time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// AchievementTriggers are the thresholds checked after every XP grant.
var AchievementTriggers = []AchievementType{
	{
		Code:        "WELCOME",
		Name:        "Protocolo Iniciado",
		Description: "Entrou na academia",
		Icon:        "🚀",
		Rarity:      "common",
		Threshold:   map[string]int64{"event": 1}, // awarded on first grant
	},
	{
		Code:        "LEVEL_2",
		Name:        "Primeira Evolução",
		Description: "Alcançou o nível 2",
		Icon:        "⚡",
		Rarity:      "common",
		Threshold:   map[string]int64{"level": 2},
	},
	{
		Code:        "LEVEL_5",
		Name:        "Operador Alpha",
		Description: "Alcançou o nível 5",
		Icon:        "💎",
		Rarity:      "rare",
		Threshold:   map[string]int64{"level": 5},
	},
	{
		Code:        "LEVEL_10",
		Name:        "Lenda do Terminal",
		Description: "Alcançou o nível 10",
		Icon:        "👑",
		Rarity:      "epic",
		Threshold:   map[string]int64{"level": 10},
	},
	{
		Code:        "STREAK_7",
		Name:        "Semana de Fogo",
		Description: "Sete dias seguidos de atividade",
		Icon:        "🔥",
		Rarity:      "rare",
		Threshold:   map[string]int64{"streak": 7},
	},
	{
		Code:        "STREAK_30",
		Name:        "Disciplina de Aço",
		Description: "Trinta dias seguidos de atividade",
		Icon:        "🛡️",
		Rarity:      "legendary",
		Threshold:   map[string]int64{"streak": 30},
	},
	{
		Code:        "XP_10K",
		Name:        "Acumulador",
		Description: "10.000 XP acumulados",
		Icon:        "🏦",
		Rarity:      "epic",
		Threshold:   map[string]int64{"xp": 10000},
	},
}
