package services

import (
	"strings"
	"testing"

	"moneylab-academy/models"
)

func TestCleanJSONArrayStripsFences(t *testing.T) {
	in := "```json\n[{\"id\":\"news-1\"}]\n```"
	got := cleanJSONArray(in)
	if got != `[{"id":"news-1"}]` {
		t.Fatalf("got %q", got)
	}
}

func TestCleanJSONArrayStripsSurroundingProse(t *testing.T) {
	in := "Claro! Aqui está o resultado:\n[1, 2, 3]\nEspero que ajude."
	got := cleanJSONArray(in)
	if got != "[1, 2, 3]" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanJSONArrayEmptyInput(t *testing.T) {
	if got := cleanJSONArray(""); got != "[]" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanJSONArrayNoArrayLeftAsIs(t *testing.T) {
	in := "sem dados hoje"
	if got := cleanJSONArray(in); got != in {
		t.Fatalf("got %q", got)
	}
}

func TestValidateNewsItemDefaults(t *testing.T) {
	item := ValidateNewsItem(models.NewsItem{Title: "Selic mantida"})

	if !strings.HasPrefix(item.ID, "news-") {
		t.Errorf("expected generated id, got %q", item.ID)
	}
	if item.Region != "INT" {
		t.Errorf("expected default region INT, got %q", item.Region)
	}
	if item.MarketImpact != models.MarketImpactLow {
		t.Errorf("expected default impact %q, got %q", models.MarketImpactLow, item.MarketImpact)
	}
	if item.Category != "Mercado" {
		t.Errorf("expected default category Mercado, got %q", item.Category)
	}
	if item.Timestamp != "ATUALIZADO AGORA" {
		t.Errorf("expected stamped timestamp, got %q", item.Timestamp)
	}
	if item.IsHot {
		t.Error("low-impact item must not be hot")
	}
}

func TestValidateNewsItemKeepsValidFields(t *testing.T) {
	item := ValidateNewsItem(models.NewsItem{
		ID:           "news-abc123def",
		Title:        "Dólar dispara",
		Region:       "BR",
		MarketImpact: models.MarketImpactHigh,
		Category:     "Economia",
	})

	if item.ID != "news-abc123def" {
		t.Errorf("id rewritten: %q", item.ID)
	}
	if item.Region != "BR" || item.Category != "Economia" {
		t.Errorf("valid fields rewritten: region=%q category=%q", item.Region, item.Category)
	}
	if !item.IsHot {
		t.Error("high-impact item must be hot")
	}
}

func TestValidateNewsItemUnknownImpactNotHot(t *testing.T) {
	item := ValidateNewsItem(models.NewsItem{Title: "x", MarketImpact: "Extremo"})
	if item.MarketImpact != models.MarketImpactLow || item.IsHot {
		t.Fatalf("unknown impact must default low and cold, got %q hot=%v", item.MarketImpact, item.IsHot)
	}
}
