package domain

import (
	"path/filepath"
	"testing"
	"time"
)

func TestMatchScoresKeywordsAgainstKeys(t *testing.T) {
	r := NewRegistry("")
	got := r.Match(map[string]any{
		"stars":        1,
		"forks":        2,
		"contributors": []any{},
	})
	if got == nil || got.ID != "github_repo" {
		t.Fatalf("Match = %+v, want github_repo", got)
	}
}

func TestMatchBelowThreshold(t *testing.T) {
	r := NewRegistry("")
	if got := r.Match(map[string]any{"foo": 1, "bar": 2}); got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestMatchTieGoesToEarlierDomain(t *testing.T) {
	r := NewRegistry("")
	r.EnsureLoaded()
	r.configs = []Config{
		{ID: "first", Keywords: []string{"alpha", "beta"}},
		{ID: "second", Keywords: []string{"alpha", "beta"}},
	}
	got := r.Match(map[string]any{"alpha": 1})
	if got == nil || got.ID != "first" {
		t.Fatalf("Match = %+v, want first", got)
	}
}

func TestMatchEmptyData(t *testing.T) {
	r := NewRegistry("")
	if got := r.Match(nil); got != nil {
		t.Fatalf("expected nil for empty data, got %+v", got)
	}
}

func TestSaveAndReloadCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.json")
	r := NewRegistry(path)
	cfg := Config{
		ID:        "fleet_ops",
		Name:      "Fleet Operations",
		Keywords:  []string{"vehicle", "route", "driver"},
		CreatedBy: CreatedByAI,
		CreatedAt: time.Now(),
	}
	if err := r.Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	fresh := NewRegistry(path)
	got, ok := fresh.Get("fleet_ops")
	if !ok {
		t.Fatalf("expected persisted config to reload")
	}
	if got.Name != "Fleet Operations" || len(got.Keywords) != 3 {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.CreatedBy != CreatedByAI {
		t.Fatalf("created_by = %q", got.CreatedBy)
	}
}

func TestLoadMissingFileYieldsSystemSet(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "absent.json"))
	all := r.All()
	if len(all) != len(SystemConfigs()) {
		t.Fatalf("expected system configs only, got %d", len(all))
	}
}

func TestSystemConfigsNeverPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.json")
	r := NewRegistry(path)
	if err := r.Save(Config{ID: "custom_one", Keywords: []string{"x"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	fresh := NewRegistry(path)
	customs := fresh.loadFile()
	if len(customs) != 1 || customs[0].ID != "custom_one" {
		t.Fatalf("persisted rows = %+v", customs)
	}
}
