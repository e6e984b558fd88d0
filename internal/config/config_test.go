package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var embedded ChaseConfig
	if err := yaml.Unmarshal(GetDefaultYAML("chase"), &embedded); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	def := DefaultChaseConfig()

	if embedded.Default != def.Default {
		t.Fatalf("default = %q, want %q", embedded.Default, def.Default)
	}
	if len(embedded.Profiles) != len(def.Profiles) {
		t.Fatalf("profiles = %d, want %d", len(embedded.Profiles), len(def.Profiles))
	}
	for i := range def.Profiles {
		a, b := embedded.Profiles[i], def.Profiles[i]
		if a.Name != b.Name || a.RegularScore != b.RegularScore || a.SpecialScore != b.SpecialScore {
			t.Errorf("profile %d: embedded %+v, hardcoded %+v", i, a, b)
		}
		for j := range b.Ghosts {
			if a.Ghosts[j] != b.Ghosts[j] {
				t.Errorf("profile %s ghost %d: embedded %+v, hardcoded %+v", b.Name, j, a.Ghosts[j], b.Ghosts[j])
			}
		}
	}
}

func TestPresetsAllConfigured(t *testing.T) {
	cfg := DefaultChaseConfig()
	for _, p := range Presets {
		prof, err := cfg.Profile(string(p))
		if err != nil {
			t.Fatalf("Profile(%q): %v", p, err)
		}
		if len(prof.Ghosts) != 4 {
			t.Errorf("%s: ghosts = %d, want 4", p, len(prof.Ghosts))
		}
		if prof.Invincible != 5*time.Second {
			t.Errorf("%s: invincible = %v, want 5s", p, prof.Invincible)
		}
	}
}

func TestProfileCaseInsensitive(t *testing.T) {
	prof, err := DefaultChaseConfig().Profile("  HARD ")
	if err != nil {
		t.Fatal(err)
	}
	if prof.Name != "hard" || prof.SpecialScore != 75 {
		t.Fatalf("Profile() = %+v", prof)
	}
	if prof.Ghosts[0].Speed != 220*time.Millisecond {
		t.Fatalf("blinky speed = %v, want 220ms", prof.Ghosts[0].Speed)
	}
}

func TestProfileUnknown(t *testing.T) {
	_, err := DefaultChaseConfig().Profile("nightmare")
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Fatalf("err = %v, want ErrUnknownDifficulty", err)
	}
}

func TestProfileOrDefault(t *testing.T) {
	tests := []struct {
		name string
		cfg  ChaseConfig
		in   string
		want string
	}{
		{"known", DefaultChaseConfig(), "easy", "easy"},
		{"unknown falls back to default", DefaultChaseConfig(), "???", "medium"},
		{"empty falls back to default", DefaultChaseConfig(), "", "medium"},
		{"broken config falls back to built-in", ChaseConfig{Default: "nope"}, "easy", "medium"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ProfileOrDefault(tt.in).Name; got != tt.want {
				t.Fatalf("ProfileOrDefault(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProfileRejectsBadGhost(t *testing.T) {
	cfg := ChaseConfig{Profiles: []ProfileEntry{
		{Name: "broken", Ghosts: []GhostConfig{{Name: "g", SpeedMS: 0}}},
		{Name: "empty"},
	}}
	if _, err := cfg.Profile("broken"); err == nil {
		t.Fatal("expected error for zero speed")
	}
	if _, err := cfg.Profile("empty"); err == nil {
		t.Fatal("expected error for no ghosts")
	}
}

func TestTimingDefaults(t *testing.T) {
	cfg := DefaultChaseConfig()
	cfg.Timing = TimingConfig{}
	prof := cfg.ProfileOrDefault("easy")
	if prof.FastTick != 100*time.Millisecond || prof.Blink != 300*time.Millisecond || prof.Invincible != 5*time.Second {
		t.Fatalf("timing = %v/%v/%v", prof.FastTick, prof.Blink, prof.Invincible)
	}
}

func TestLoadChaseCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chase.yaml")
	data := []byte(`
default: solo
profiles:
  - name: solo
    regular_score: 1
    special_score: 2
    ghosts:
      - { name: lone, spawn: { x: 1, y: 1 }, speed_ms: 50, lock_on_duration: 2 }
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadChase(path)
	if err != nil {
		t.Fatalf("LoadChase: %v", err)
	}
	prof := cfg.ProfileOrDefault("")
	if prof.Name != "solo" || prof.Ghosts[0].Speed != 50*time.Millisecond {
		t.Fatalf("profile = %+v", prof)
	}
}

func TestLoadChaseCustomPathErrors(t *testing.T) {
	if _, err := LoadChase(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("profiles: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadChase(bad); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIsPreset(t *testing.T) {
	if !IsPreset("Insane") || IsPreset("nightmare") {
		t.Fatal("IsPreset mismatch")
	}
}
