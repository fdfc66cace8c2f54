package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"moneylab-academy/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Per-plan news allowances, matching the pricing page.
func NewsLimitForPlan(plan string) int {
	switch plan {
	case models.PlanElite:
		return 100
	case models.PlanPro:
		return 50
	default:
		return 10
	}
}

type NewsService struct {
	DB    *gorm.DB
	Nexus *NexusService
}

func NewNewsService(db *gorm.DB, nexus *NexusService) *NewsService {
	return &NewsService{DB: db, Nexus: nexus}
}

// cacheDate keys the cache by calendar date, matching the product's
// one-payload-per-day contract.
func cacheDate(now time.Time) string {
	return now.Format("2006-01-02")
}

// TodayNews serves the day's cached payload, synthesizing and caching it on
// a miss. forceRefresh bypasses the cache (paid plans only, enforced by the
// handler). cached reports whether the payload came from the cache.
func (s *NewsService) TodayNews(ctx context.Context, limit int, forceRefresh bool, now time.Time) (items []models.NewsItem, cached bool, err error) {
	date := cacheDate(now)

	if !forceRefresh {
		var entry models.NewsCache
		err := s.DB.Where("date = ?", date).First(&entry).Error
		if err == nil {
			if cachedItems, decodeErr := entry.Items(); decodeErr == nil && len(cachedItems) > 0 {
				return clampNews(cachedItems, limit), true, nil
			}
			// Corrupt or empty payload: fall through and regenerate.
			log.Printf("⚠️ News cache for %s unusable, regenerating", date)
		} else if err != gorm.ErrRecordNotFound {
			// Cache unreachable is not fatal; degrade to a live fetch.
			log.Printf("⚠️ News cache read failed: %v", err)
		}
	}

	fresh, err := s.Nexus.FetchMarketNews(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("news fetch failed: %w", err)
	}

	if len(fresh) > 0 {
		if err := s.storeCache(date, fresh); err != nil {
			// Best effort: the response still goes out.
			log.Printf("⚠️ Failed to store news cache for %s: %v", date, err)
		}
	}

	return clampNews(fresh, limit), false, nil
}

func (s *NewsService) storeCache(date string, items []models.NewsItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	entry := models.NewsCache{Date: date, Data: payload}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&entry).Error
}

// WarmCache pre-fills today's payload so the first reader doesn't pay the
// synthesis latency. Called by the scheduler.
func (s *NewsService) WarmCache(ctx context.Context, now time.Time) {
	date := cacheDate(now)
	var count int64
	s.DB.Model(&models.NewsCache{}).Where("date = ?", date).Count(&count)
	if count > 0 {
		return
	}
	items, err := s.Nexus.FetchMarketNews(ctx)
	if err != nil || len(items) == 0 {
		log.Printf("⚠️ News cache warm-up failed for %s: %v", date, err)
		return
	}
	if err := s.storeCache(date, items); err != nil {
		log.Printf("⚠️ News cache warm-up store failed for %s: %v", date, err)
		return
	}
	log.Printf("📰 News cache warmed for %s (%d items)", date, len(items))
}

// Prune drops cache rows older than the daily window.
func (s *NewsService) Prune(now time.Time) {
	cutoff := cacheDate(now.AddDate(0, 0, -models.DailyWindowSize))
	res := s.DB.Where("date < ?", cutoff).Delete(&models.NewsCache{})
	if res.Error != nil {
		log.Printf("⚠️ News cache prune failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("🧹 Pruned %d stale news cache row(s)", res.RowsAffected)
	}
}

func clampNews(items []models.NewsItem, limit int) []models.NewsItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
