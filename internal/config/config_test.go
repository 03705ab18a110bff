package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.World.Width != 1000 || cfg.World.Height != 1500 {
		t.Errorf("unexpected world size %gx%g", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Sim.TPS != 60 {
		t.Errorf("expected 60 tps, got %d", cfg.Sim.TPS)
	}
	if cfg.Rules.SpawnTiers != 3 {
		t.Errorf("expected 3 spawn tiers, got %d", cfg.Rules.SpawnTiers)
	}
}

func TestParamsRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.Gravity = 0.25
	cfg.Physics.ConsumedInert = true

	p := cfg.Params()
	if p.Gravity != 0.25 || !p.ConsumedInert {
		t.Errorf("params not copied: %+v", p)
	}
	if p.Radius(0) != 100 {
		t.Errorf("radius(0) = %f, want 100", p.Radius(0))
	}

	s := cfg.NewState()
	if s.Current == nil || s.Params.Gravity != 0.25 {
		t.Error("NewState did not use the config")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("moon")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Physics.Gravity != 0.1 {
		t.Errorf("expected gravity 0.1, got %f", cfg.Physics.Gravity)
	}
	if DefaultConfig().Physics.Gravity != 0.6 {
		t.Error("preset leaked into defaults")
	}
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative scale", func(c *Config) { c.World.BallScale = -1 }},
		{"restitution above one", func(c *Config) { c.Physics.WallRestitution = 1.5 }},
		{"negative damping", func(c *Config) { c.Physics.FloorDamping = -0.1 }},
		{"negative gravity", func(c *Config) { c.Physics.Gravity = -1 }},
		{"no spawn tiers", func(c *Config) { c.Rules.SpawnTiers = 0 }},
		{"too many spawn tiers", func(c *Config) { c.Rules.SpawnTiers = 12 }},
		{"zero tps", func(c *Config) { c.Sim.TPS = 0 }},
		{"zero max ticks", func(c *Config) { c.Sim.MaxTicks = 0 }},
		{"zero epsilon", func(c *Config) { c.Physics.OverlapEpsilon = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suikasim.yaml")
	data := []byte("physics:\n  gravity: 0.3\nsim:\n  seed: 99\n  policy: random\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.3 || cfg.Sim.Seed != 99 || cfg.Sim.Policy != "random" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.World.Width != 1000 || cfg.Physics.WallRestitution != 0.7 {
		t.Error("defaults lost for fields missing from the file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("crowded")
	cfg.Sim.Seed = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("world:\n  width: -5\n"), 0644)

	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	os.WriteFile(path, []byte("rules:\n  overline_limit: 10\n"), 0644)

	cfg, err := Resolve("moon", path, Env{Seed: 5, HasSeed: true})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.1 {
		t.Error("preset not applied")
	}
	if cfg.Rules.OverlineLimit != 10 {
		t.Error("file did not override preset")
	}
	if cfg.Sim.Seed != 5 {
		t.Error("env seed not applied")
	}

	if _, err := Resolve("nope", "", Env{}); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg, err = Resolve("", "", Env{Preset: "bouncy"})
	if err != nil || cfg.Physics.WallRestitution != 0.95 {
		t.Errorf("env preset not used: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, "test.env")
	os.WriteFile(dotenv, []byte("SUIKASIM_PRESET=moon\nSUIKASIM_SEED=123\n"), 0644)

	t.Setenv(EnvPreset, "")
	os.Unsetenv(EnvPreset)
	t.Setenv(EnvSeed, "")
	os.Unsetenv(EnvSeed)
	t.Setenv(EnvTheme, "ocean")

	env, err := LoadEnv(dotenv)
	if err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if env.Preset != "moon" || !env.HasSeed || env.Seed != 123 {
		t.Errorf("dotenv values not loaded: %+v", env)
	}
	if env.Theme != "ocean" {
		t.Errorf("existing variable overridden: %q", env.Theme)
	}

	if _, err := LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing dotenv should be ignored, got %v", err)
	}
}

func TestLoadEnvBadSeed(t *testing.T) {
	t.Setenv(EnvSeed, "abc")
	if _, err := LoadEnv(filepath.Join(t.TempDir(), "none.env")); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestOverride(t *testing.T) {
	base := DefaultConfig()

	cfg, err := Override(base, "physics.gravity", 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Gravity != 0.25 {
		t.Errorf("expected gravity 0.25, got %g", cfg.Physics.Gravity)
	}
	if base.Physics.Gravity != 0.6 {
		t.Error("Override modified its base")
	}

	cfg, err = Override(base, "rules.overline_limit", 60.0)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.OverlineLimit != 60 {
		t.Errorf("expected limit 60, got %d", cfg.Rules.OverlineLimit)
	}
}

func TestOverrideRejects(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"unknown section", "graphics.fov", 90},
		{"unknown field", "physics.drag", 0.1},
		{"empty path", "", 1},
		{"empty segment", "physics..gravity", 1},
		{"fraction into int", "rules.spawn_tiers", 2.5},
		{"fails validation", "world.width", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Override(DefaultConfig(), tt.field, tt.value); err == nil {
				t.Errorf("expected error for %s=%v", tt.field, tt.value)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg, err := Apply(DefaultConfig(), map[string]any{
		"physics.gravity": 0.4,
		"sim.policy":      "random",
		"rules.move_step": 12,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Physics.Gravity != 0.4 || cfg.Sim.Policy != "random" || cfg.Rules.MoveStep != 12 {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	base := DefaultConfig()
	cp, err := Apply(base, nil)
	if err != nil || cp == base || *cp != *base {
		t.Errorf("empty Apply should return an equal copy, got %v", err)
	}
}
