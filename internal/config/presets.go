package config

import "sort"

// Presets are named tweaks applied on top of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"bouncy": func(c *Config) {
		c.Physics.WallRestitution = 0.95
		c.Physics.FloorRestitution = 0.85
		c.Physics.ImpulseRestitution = 1.0
		c.Physics.FloorDamping = 0.995
	},
	"moon": func(c *Config) {
		c.Physics.Gravity = 0.1
		c.Rules.OverlineLimit = 360
	},
	"crowded": func(c *Config) {
		c.World.BallScale = 3
		c.Rules.SpawnTiers = 5
		c.Sim.DropInterval = 20
	},
	"strict": func(c *Config) {
		c.Physics.ConsumedInert = true
		c.Rules.OverlineLimit = 60
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
