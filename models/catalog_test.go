package models

import "testing"

func TestModuleCatalogShape(t *testing.T) {
	if len(ModuleCatalog) != 25 {
		t.Fatalf("catalog has %d modules, want 25", len(ModuleCatalog))
	}

	seen := map[string]bool{}
	for i, m := range ModuleCatalog {
		if m.Code == "" || m.Title == "" {
			t.Errorf("module %d missing code or title", i)
		}
		if seen[m.Code] {
			t.Errorf("duplicate module code %s", m.Code)
		}
		seen[m.Code] = true
	}

	// m1–m18 are free, m19–m25 premium.
	for i, m := range ModuleCatalog {
		wantPremium := i >= 18
		if m.IsPremium != wantPremium {
			t.Errorf("module %s premium=%v, want %v", m.Code, m.IsPremium, wantPremium)
		}
	}
}

func TestGenerateLessonsArc(t *testing.T) {
	lessons := GenerateLessons("m7", false)
	if len(lessons) != 15 {
		t.Fatalf("got %d lessons, want 15", len(lessons))
	}

	if lessons[0].ID != "l7-1" || lessons[14].ID != "l7-15" {
		t.Errorf("lesson ids off: first=%s last=%s", lessons[0].ID, lessons[14].ID)
	}

	for i, l := range lessons {
		if l.ModuleCode != "m7" {
			t.Errorf("lesson %d module code %s", i, l.ModuleCode)
		}
		if l.Position != i+1 {
			t.Errorf("lesson %d position %d", i, l.Position)
		}
		switch {
		case i%5 == 0:
			if l.Type != LessonTypeDeepDive {
				t.Errorf("lesson %d type %s, want deep-dive", i, l.Type)
			}
		case i%2 == 0:
			if l.Type != LessonTypeTheory {
				t.Errorf("lesson %d type %s, want theory", i, l.Type)
			}
		default:
			if l.Type != LessonTypePractical {
				t.Errorf("lesson %d type %s, want practical", i, l.Type)
			}
		}
	}

	// In a free module only the first three lessons are open.
	for i, l := range lessons {
		wantPremium := i > 2
		if l.IsPremium != wantPremium {
			t.Errorf("lesson %s premium=%v, want %v", l.ID, l.IsPremium, wantPremium)
		}
	}
}

func TestGenerateLessonsPremiumModuleAllLocked(t *testing.T) {
	for _, l := range GenerateLessons("m20", true) {
		if !l.IsPremium {
			t.Fatalf("lesson %s of a premium module must be premium", l.ID)
		}
	}
}
