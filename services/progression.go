package services

import (
	"log"
	"time"

	"moneylab-academy/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// XP sources and their fixed grants (tunable via config/env later)
const (
	SeedXP        int64 = 10   // granted on first sight of a user
	LessonXP      int64 = 150  // per lesson completed
	ModuleExamXP  int64 = 1000 // per module exam finished
	DailyBonusXP  int64 = 50   // once per 24h claim
	SeedThreshold int64 = 1000 // first level-up threshold
)

// ClaimCooldown gates the daily bonus. Deliberately a rolling 24h duration,
// not a calendar day — the streak logic below uses calendar days instead.
const ClaimCooldown = 24 * time.Hour

// nextThreshold grows the level-up threshold by ×1.5, floored.
// Integer math: floor(t*1.5) == t*3/2 for non-negative t.
func nextThreshold(t int64) int64 {
	return t * 3 / 2
}

// NewProgressRecord seeds a fresh progress record for a user first observed
// at `now`: 10 XP already in today's slot, level 1, streak 1.
func NewProgressRecord(externalUserID string, now time.Time) *models.UserProgress {
	daily := make([]int64, models.DailyWindowSize)
	daily[models.DailyWindowSize-1] = SeedXP
	return &models.UserProgress{
		ID:               uuid.NewString(),
		ExternalUserID:   externalUserID,
		XP:               SeedXP,
		Level:            1,
		XPNextLevel:      SeedThreshold,
		DailyXP:          daily,
		Streak:           1,
		LastActivityDate: &now,
	}
}

// ApplyXP adds a non-negative amount of XP to the record, levels up as many
// times as the thresholds allow, books the amount into today's slot and
// touches LastActivityDate. Callers must not pass negative amounts.
//
// Postcondition: p.XP < p.XPNextLevel.
func ApplyXP(p *models.UserProgress, amount int64, now time.Time) {
	p.XP += amount

	// A single large grant can cross several thresholds.
	for p.XP >= p.XPNextLevel {
		p.Level++
		p.XPNextLevel = nextThreshold(p.XPNextLevel)
		t := now
		p.LastLevelUpAt = &t
	}

	ensureWindow(p)
	p.DailyXP[len(p.DailyXP)-1] += amount
	t := now
	p.LastActivityDate = &t
}

// RollDayIfNeeded ages the daily window and settles the streak when the
// calendar date changed since the last activity. Runs once per session load,
// before the record is handed to anything else. Returns true if the record
// was modified.
//
// The window shifts once per elapsed day (capped at the window size), so a
// long absence correctly zeroes the history rather than keeping stale slots.
func RollDayIfNeeded(p *models.UserProgress, now time.Time) bool {
	ensureWindow(p)

	if p.LastActivityDate == nil {
		t := now
		p.LastActivityDate = &t
		return true
	}

	days := calendarDaysBetween(*p.LastActivityDate, now)
	if days <= 0 {
		return false
	}

	shift := days
	if shift > models.DailyWindowSize {
		shift = models.DailyWindowSize
	}
	for i := 0; i < shift; i++ {
		copy(p.DailyXP, p.DailyXP[1:])
		p.DailyXP[len(p.DailyXP)-1] = 0
	}

	// Streak survives only an exactly-one-day gap.
	if days == 1 {
		if p.Streak < 1 {
			p.Streak = 1
		}
	} else {
		p.Streak = 1
	}

	t := now
	p.LastActivityDate = &t
	return true
}

// CanClaim reports whether the daily bonus is available: never claimed, or
// at least ClaimCooldown since the last claim.
func CanClaim(p *models.UserProgress, now time.Time) bool {
	if p.LastClaimedAt == nil {
		return true
	}
	return now.Sub(*p.LastClaimedAt) >= ClaimCooldown
}

// ClaimDaily pays the fixed bonus and stamps the claim. A denied claim is a
// silent no-op, not an error — the UI is expected to disable the affordance.
//
// Note: the streak increments unconditionally here, independent of
// RollDayIfNeeded's calendar-day reset. The two writers use different time
// semantics (24h rolling vs calendar day) and are intentionally left
// unreconciled; see the pinning tests.
func ClaimDaily(p *models.UserProgress, now time.Time) bool {
	if !CanClaim(p, now) {
		return false
	}
	ApplyXP(p, DailyBonusXP, now)
	t := now
	p.LastClaimedAt = &t
	p.Streak++
	return true
}

// ensureWindow repairs a record whose daily window has the wrong length
// (older rows, or a loosely validated external write).
func ensureWindow(p *models.UserProgress) {
	if len(p.DailyXP) == models.DailyWindowSize {
		return
	}
	fixed := make([]int64, models.DailyWindowSize)
	if n := len(p.DailyXP); n > 0 {
		if n > models.DailyWindowSize {
			copy(fixed, p.DailyXP[n-models.DailyWindowSize:])
		} else {
			copy(fixed[models.DailyWindowSize-n:], p.DailyXP)
		}
	}
	p.DailyXP = fixed
}

// calendarDaysBetween counts midnight boundaries crossed between a and b,
// evaluated in b's location. DST makes some civil days 23h or 25h long, so
// the midnight-to-midnight distance is rounded to the nearest day rather
// than truncated.
func calendarDaysBetween(a, b time.Time) int {
	a = a.In(b.Location())
	am := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, b.Location())
	bm := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int((bm.Sub(am) + 12*time.Hour) / (24 * time.Hour))
}

type ProgressionService struct {
	DB           *gorm.DB
	Achievements *AchievementService
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db, Achievements: NewAchievementService(db)}
}

// EnsureProgressRecord ensures a UserProgress row exists (idempotent)
func (s *ProgressionService) EnsureProgressRecord(externalUserID string, now time.Time) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error
	if err == gorm.ErrRecordNotFound {
		seeded := NewProgressRecord(externalUserID, now)
		if err := s.DB.Create(seeded).Error; err != nil {
			return nil, err
		}
		log.Printf("🌱 Seeded progress record for %s (xp=%d)", externalUserID, seeded.XP)
		return seeded, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// LoadProgress fetches (or seeds) the record and applies the day-rollover
// check before exposing it. The rolled record is persisted best-effort.
func (s *ProgressionService) LoadProgress(externalUserID string, now time.Time) (*models.UserProgress, error) {
	prog, err := s.EnsureProgressRecord(externalUserID, now)
	if err != nil {
		return nil, err
	}
	if RollDayIfNeeded(prog, now) {
		s.saveProgress(prog)
	}
	return prog, nil
}

// GrantXP applies an XP grant and persists the result. Persistence is best
// effort: on save failure the in-memory record is still returned, so the
// caller-visible state can run ahead of durable state until the next save.
func (s *ProgressionService) GrantXP(externalUserID string, amount int64, reason string, now time.Time) (*models.UserProgress, error) {
	prog, err := s.LoadProgress(externalUserID, now)
	if err != nil {
		return nil, err
	}

	ApplyXP(prog, amount, now)
	s.saveProgress(prog)

	// Auto-award achievements (fire-and-forget)
	if s.Achievements != nil {
		_ = s.Achievements.AutoAward(prog)
	}

	log.Printf("🎮 XP granted: %s +%d → xp=%d, lvl=%d, next=%d (reason: %s)",
		externalUserID, amount, prog.XP, prog.Level, prog.XPNextLevel, reason)
	return prog, nil
}

// ClaimDailyBonus attempts the daily claim. claimed=false means the 24h gate
// was closed; that is a denied no-op, not an error.
func (s *ProgressionService) ClaimDailyBonus(externalUserID string, now time.Time) (*models.UserProgress, bool, error) {
	prog, err := s.LoadProgress(externalUserID, now)
	if err != nil {
		return nil, false, err
	}

	if !ClaimDaily(prog, now) {
		return prog, false, nil
	}
	s.saveProgress(prog)

	if s.Achievements != nil {
		_ = s.Achievements.AutoAward(prog)
	}

	log.Printf("💎 Daily bonus claimed: %s → xp=%d, streak=%d", externalUserID, prog.XP, prog.Streak)
	return prog, true, nil
}

// saveProgress persists with one bounded retry. Failures are logged and
// swallowed — optimistic local state wins and the next mutation retries.
func (s *ProgressionService) saveProgress(p *models.UserProgress) {
	if err := s.DB.Save(p).Error; err != nil {
		log.Printf("⚠️ Progress save failed for %s, retrying: %v", p.ExternalUserID, err)
		time.Sleep(250 * time.Millisecond)
		if err := s.DB.Save(p).Error; err != nil {
			log.Printf("❌ Progress save failed for %s after retry — keeping in-memory state: %v", p.ExternalUserID, err)
		}
	}
}
