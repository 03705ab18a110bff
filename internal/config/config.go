package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

const (
	DefaultTPS          = 60
	DefaultMaxTicks     = 60 * 60 * 10
	DefaultPolicy       = "greedy"
	DefaultDropInterval = 45
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Physics PhysicsConfig `yaml:"physics"`
	Rules   RulesConfig   `yaml:"rules"`
	Sim     SimConfig     `yaml:"sim"`
}

type WorldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	BallScale float64 `yaml:"ball_scale"`
}

type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	WallRestitution    float64 `yaml:"wall_restitution"`
	FloorRestitution   float64 `yaml:"floor_restitution"`
	FloorDamping       float64 `yaml:"floor_damping"`
	ImpulseRestitution float64 `yaml:"impulse_restitution"`
	OverlapEpsilon     float64 `yaml:"overlap_epsilon"`
	ConsumedInert      bool    `yaml:"consumed_inert"`
}

type RulesConfig struct {
	LineY         float64 `yaml:"line_y"`
	OverlineLimit int     `yaml:"overline_limit"`
	DropOffset    float64 `yaml:"drop_offset"`
	MoveStep      float64 `yaml:"move_step"`
	SpawnTiers    int     `yaml:"spawn_tiers"`
}

type SimConfig struct {
	TPS          int    `yaml:"tps"`
	Seed         int64  `yaml:"seed"`
	MaxTicks     int    `yaml:"max_ticks"`
	Policy       string `yaml:"policy"`
	DropInterval int    `yaml:"drop_interval"`
}

func DefaultConfig() *Config {
	p := physics.DefaultParams()
	r := game.DefaultRules()
	return &Config{
		World: WorldConfig{
			Width:     p.Width,
			Height:    p.Height,
			BallScale: p.BallScale,
		},
		Physics: PhysicsConfig{
			Gravity:            p.Gravity,
			WallRestitution:    p.WallRestitution,
			FloorRestitution:   p.FloorRestitution,
			FloorDamping:       p.FloorDamping,
			ImpulseRestitution: p.ImpulseRestitution,
			OverlapEpsilon:     p.OverlapEpsilon,
		},
		Rules: RulesConfig{
			LineY:         r.LineY,
			OverlineLimit: r.OverlineLimit,
			DropOffset:    r.DropOffset,
			MoveStep:      r.MoveStep,
			SpawnTiers:    r.SpawnTiers,
		},
		Sim: SimConfig{
			TPS:          DefaultTPS,
			MaxTicks:     DefaultMaxTicks,
			Policy:       DefaultPolicy,
			DropInterval: DefaultDropInterval,
		},
	}
}

// Load reads a YAML file on top of the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, DefaultConfig())
}

// Parse decodes YAML over base and validates the result.
func Parse(data []byte, base *Config) (*Config, error) {
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"world.width", c.World.Width},
		{"world.height", c.World.Height},
		{"world.ball_scale", c.World.BallScale},
		{"physics.overlap_epsilon", c.Physics.OverlapEpsilon},
		{"rules.move_step", c.Rules.MoveStep},
	}
	for _, f := range positive {
		if f.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, f.name, f.val)
		}
	}

	fractions := []struct {
		name string
		val  float64
	}{
		{"physics.wall_restitution", c.Physics.WallRestitution},
		{"physics.floor_restitution", c.Physics.FloorRestitution},
		{"physics.floor_damping", c.Physics.FloorDamping},
		{"physics.impulse_restitution", c.Physics.ImpulseRestitution},
	}
	for _, f := range fractions {
		if f.val < 0 || f.val > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrInvalid, f.name, f.val)
		}
	}

	if c.Physics.Gravity < 0 {
		return fmt.Errorf("%w: physics.gravity must not be negative, got %g", ErrInvalid, c.Physics.Gravity)
	}
	if c.Rules.SpawnTiers < 1 || c.Rules.SpawnTiers > physics.NumTiers {
		return fmt.Errorf("%w: rules.spawn_tiers must be in [1, %d], got %d", ErrInvalid, physics.NumTiers, c.Rules.SpawnTiers)
	}
	if c.Rules.OverlineLimit < 0 {
		return fmt.Errorf("%w: rules.overline_limit must not be negative, got %d", ErrInvalid, c.Rules.OverlineLimit)
	}
	if c.Sim.TPS <= 0 {
		return fmt.Errorf("%w: sim.tps must be positive, got %d", ErrInvalid, c.Sim.TPS)
	}
	if c.Sim.MaxTicks <= 0 {
		return fmt.Errorf("%w: sim.max_ticks must be positive, got %d", ErrInvalid, c.Sim.MaxTicks)
	}
	if c.Sim.DropInterval <= 0 {
		return fmt.Errorf("%w: sim.drop_interval must be positive, got %d", ErrInvalid, c.Sim.DropInterval)
	}
	return nil
}

// Params converts the world and physics sections into the core's constants.
func (c *Config) Params() physics.Params {
	return physics.Params{
		Width:              c.World.Width,
		Height:             c.World.Height,
		BallScale:          c.World.BallScale,
		Gravity:            c.Physics.Gravity,
		WallRestitution:    c.Physics.WallRestitution,
		FloorRestitution:   c.Physics.FloorRestitution,
		FloorDamping:       c.Physics.FloorDamping,
		ImpulseRestitution: c.Physics.ImpulseRestitution,
		OverlapEpsilon:     c.Physics.OverlapEpsilon,
		ConsumedInert:      c.Physics.ConsumedInert,
	}
}

func (c *Config) GameRules() game.Rules {
	return game.Rules{
		LineY:         c.Rules.LineY,
		OverlineLimit: c.Rules.OverlineLimit,
		DropOffset:    c.Rules.DropOffset,
		MoveStep:      c.Rules.MoveStep,
		SpawnTiers:    c.Rules.SpawnTiers,
	}
}

// NewState builds a fresh game from the config.
func (c *Config) NewState() *game.State {
	return game.New(c.Params(), c.GameRules(), c.Sim.Seed)
}
