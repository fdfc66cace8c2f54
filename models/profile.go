package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is a local snapshot of user data needed by the academy.
// Owned and managed solely by this service. Populated via sync worker
// from the auth service's profile feed, and updated directly when the
// user edits name/bio/photo or upgrades their plan here.
//
// It doubles as the last-known-good fallback: reads never block on the
// auth service, and the next successful sync overwrites local drift.
type Profile struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"` // the auth service's UUID
	Name           string  `gorm:"index;not null" json:"name"`
	Email          string  `json:"email,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	PhotoURL       *string `json:"photo_url,omitempty"`

	Plan     string    `gorm:"type:varchar(16);default:'FREE'" json:"plan"` // FREE | PRO | ELITE
	JoinedAt time.Time `json:"joined_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	LastSeen *time.Time `json:"last_seen,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// RemoteProfile mirrors the JSON shape of the auth service's public profile
// feed (read-only). Used by the sync worker; defaults are filled at this
// boundary, not scattered through call sites.
type RemoteProfile struct {
	ID         string     `json:"id"`
	ExternalID string     `json:"external_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Bio        *string    `json:"bio,omitempty"`
	PhotoURL   *string    `json:"photo_url,omitempty"`
	Plan       string     `json:"plan"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Normalize fills the defaults the feed is allowed to omit.
func (r *RemoteProfile) Normalize() {
	if r.Name == "" {
		r.Name = "Alpha Pioneer"
	}
	if r.Plan != PlanPro && r.Plan != PlanElite {
		r.Plan = PlanFree
	}
}
