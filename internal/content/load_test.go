package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Levels) == 0 || cfg.DailyVisitPoints != Default().DailyVisitPoints {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	data := "daily_visit_points: 25\nautonomy_badge_min: 75\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DailyVisitPoints != 25 || cfg.AutonomyBadgeMin != 75 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Challenges) == 0 {
		t.Fatal("unset sections must keep defaults")
	}
}

func TestLoad_RejectsUnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, []byte(":\t not yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
