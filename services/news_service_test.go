package services

import (
	"testing"
	"time"

	"moneylab-academy/models"
)

func TestNewsLimitForPlan(t *testing.T) {
	cases := []struct {
		plan string
		want int
	}{
		{models.PlanElite, 100},
		{models.PlanPro, 50},
		{models.PlanFree, 10},
		{"", 10},
		{"TRIAL", 10},
	}
	for _, tc := range cases {
		if got := NewsLimitForPlan(tc.plan); got != tc.want {
			t.Errorf("NewsLimitForPlan(%q) = %d, want %d", tc.plan, got, tc.want)
		}
	}
}

func TestCacheDateIsCalendarDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	if got := cacheDate(now); got != "2026-08-31" {
		t.Fatalf("got %q", got)
	}
	if got := cacheDate(now.Add(time.Second)); got != "2026-09-01" {
		t.Fatalf("after midnight got %q", got)
	}
}

func TestClampNews(t *testing.T) {
	items := make([]models.NewsItem, 30)
	if got := clampNews(items, 10); len(got) != 10 {
		t.Errorf("clamp to 10 returned %d", len(got))
	}
	if got := clampNews(items, 50); len(got) != 30 {
		t.Errorf("limit above length returned %d", len(got))
	}
	if got := clampNews(items, 0); len(got) != 30 {
		t.Errorf("zero limit must not clamp, returned %d", len(got))
	}
}
