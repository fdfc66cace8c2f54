package models

import (
	"encoding/json"
	"time"
)

const (
	MarketImpactHigh   = "Alto"
	MarketImpactMedium = "Médio"
	MarketImpactLow    = "Baixo"
)

// NewsItem is one AI-synthesized market news entry, validated at the
// generation boundary before it ever reaches the cache.
type NewsItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Source       string `json:"source"`
	Category     string `json:"category"` // Economia | Tecnologia | IA | Mercado | Brasil | Internacional
	Region       string `json:"region"`   // BR | INT
	Timestamp    string `json:"timestamp"`
	URL          string `json:"url"`
	Summary      string `json:"summary"`
	AIInsight    string `json:"ai_insight,omitempty"`
	MarketImpact string `json:"market_impact"`
	IsHot        bool   `json:"is_hot,omitempty"`
}

// NewsCache holds one day's validated news payload, keyed by calendar date.
// The scheduler prunes rows older than the daily window.
type NewsCache struct {
	ID        string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Date      string          `gorm:"uniqueIndex;type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Data      json.RawMessage `gorm:"type:jsonb" json:"data"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Items decodes the cached payload.
func (n *NewsCache) Items() ([]NewsItem, error) {
	var items []NewsItem
	if len(n.Data) == 0 {
		return items, nil
	}
	err := json.Unmarshal(n.Data, &items)
	return items, err
}
