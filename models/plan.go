package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	PlanFree  = "FREE"
	PlanPro   = "PRO"
	PlanElite = "ELITE"
)

// planOrder ranks plans for upgrade checks. Upgrades only move forward.
var planOrder = map[string]int{
	PlanFree:  0,
	PlanPro:   1,
	PlanElite: 2,
}

// IsKnownPlan reports whether s is one of the three plan tiers.
func IsKnownPlan(s string) bool {
	_, ok := planOrder[s]
	return ok
}

// IsUpgrade reports whether moving from → to increases the tier.
func IsUpgrade(from, to string) bool {
	return planOrder[to] > planOrder[from]
}

// IsPaidPlan reports whether the plan unlocks premium content and AI tools.
func IsPaidPlan(plan string) bool {
	return plan == PlanPro || plan == PlanElite
}

// Plan is a catalog entry served to the pricing page. Static, not persisted.
type Plan struct {
	Type       string   `json:"type"`
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"` // BRL, one-time
	Features   []string `json:"features"`
}

// PlanCatalog matches the product's pricing page. Prices are one-time, BRL.
var PlanCatalog = []Plan{
	{
		Type:       PlanFree,
		Name:       "Explorador",
		PriceCents: 0,
		Features: []string{
			"Acesso a 18 Módulos",
			"XP e Níveis",
			"Acesso a 10 notícias",
			"Simulador de Juros",
		},
	},
	{
		Type:       PlanPro,
		Name:       "Pro Trader",
		PriceCents: 2990,
		Features: []string{
			"Todos os módulos",
			"IA Nexus ALPHA liberada",
			"+50 notícias",
		},
	},
	{
		Type:       PlanElite,
		Name:       "Alpha Elite",
		PriceCents: 5740,
		Features: []string{
			"Plano Família",
			"Badge Elite no Ranking",
			"+100 notícias",
			"Inclui tudo do plano PRO",
		},
	},
}

// PlanByType returns the catalog entry for a plan type.
func PlanByType(t string) (Plan, bool) {
	for _, p := range PlanCatalog {
		if p.Type == t {
			return p, true
		}
	}
	return Plan{}, false
}

// PlanChange records a plan transition for auditing. Billing happens
// elsewhere; this service only records the outcome and updates the mirror.
type PlanChange struct {
	ID             string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string         `gorm:"index;not null" json:"external_user_id"`
	FromPlan       string         `gorm:"type:varchar(16)" json:"from_plan"`
	ToPlan         string         `gorm:"type:varchar(16)" json:"to_plan"`
	Roles          pq.StringArray `gorm:"type:text[]" json:"roles,omitempty"` // gateway roles at change time
	ChangedAt      time.Time      `json:"changed_at" gorm:"autoCreateTime"`
}
