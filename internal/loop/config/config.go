// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rates
const (
	PhysicsTickRate = 60
	PhysicsTickTime = time.Second / PhysicsTickRate
	AITickTime      = time.Second / 60
	PowerUpTickTime = 2 * time.Second
)

// Max terminal area used for the field. Larger terminals get a centered,
// bordered render area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// DefaultPreset is used when no preset is named.
const DefaultPreset = "classic"

// SpeedProfile selects how ball speed scales with level.
type SpeedProfile string

const (
	// ProfileStepped multiplies by 1+(level-1)*0.5.
	ProfileStepped SpeedProfile = "stepped"
	// ProfileLinear multiplies by 1+level*0.2.
	ProfileLinear SpeedProfile = "linear"
)

// AILevel tunes the computer paddle for a single level.
type AILevel struct {
	Prediction float64       `toml:"prediction"` // weight of the projected intercept, 0 tracks the ball
	Jitter     float64       `toml:"jitter"`     // max offset added to the target
	Speed      float64       `toml:"speed"`      // multiple of the paddle's own speed
	Reaction   time.Duration `toml:"reaction"`   // pause after every decision
}

// Config is one parameterization of the game core. Visual differences
// between variants live in the renderers, not here.
type Config struct {
	Preset string `toml:"preset"`

	// Field geometry in logical units.
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	PaddleWidth  float64 `toml:"paddle_width"`
	PaddleHeight float64 `toml:"paddle_height"`
	BallRadius   float64 `toml:"ball_radius"`

	PaddleSpeed      float64      `toml:"paddle_speed"`
	InitialBallSpeed float64      `toml:"initial_ball_speed"`
	MaxBallSpeed     float64      `toml:"max_ball_speed"`
	SpeedProfile     SpeedProfile `toml:"speed_profile"`
	SpeedGain        float64      `toml:"speed_gain"`
	GainPerLevel     float64      `toml:"gain_per_level"`
	AngleSpan        float64      `toml:"angle_span"`
	ServeSlopeMin    float64      `toml:"serve_slope_min"`
	ServeSlopeMax    float64      `toml:"serve_slope_max"`

	WinningScore       int  `toml:"winning_score"`
	LevelCount         int  `toml:"level_count"`
	TwoPlayerSupported bool `toml:"two_player_supported"`

	// Computer paddle.
	IdleSpeed float64   `toml:"idle_speed"` // fraction of paddle speed while centering
	IdleBand  float64   `toml:"idle_band"`
	Deadband  float64   `toml:"deadband"`
	AI        []AILevel `toml:"ai"`

	// Power-ups.
	PowerUpChance float64 `toml:"powerup_chance"`
	PowerUpTicks  int     `toml:"powerup_ticks"`
	PickupRadius  float64 `toml:"pickup_radius"`
	BoostSteps    int     `toml:"boost_steps"`
	PaddleExtend  float64 `toml:"paddle_extend"`
	SlowFactor    float64 `toml:"slow_factor"`

	PhysicsPeriod time.Duration `toml:"physics_period"`
	AIPeriod      time.Duration `toml:"ai_period"`
	PowerUpPeriod time.Duration `toml:"powerup_period"`
	RenderPeriod  time.Duration `toml:"render_period"`
}

var presets = map[string]func() Config{
	"classic": Classic,
	"arcade":  Arcade,
}

// Classic is the large-field tuning with a pi/3 bounce span and the linear
// speed profile.
func Classic() Config {
	return Config{
		Preset:             "classic",
		Width:              1280,
		Height:             800,
		PaddleWidth:        20,
		PaddleHeight:       100,
		BallRadius:         10,
		PaddleSpeed:        7,
		InitialBallSpeed:   7.5,
		MaxBallSpeed:       15,
		SpeedProfile:       ProfileLinear,
		SpeedGain:          1.05,
		GainPerLevel:       0.05,
		AngleSpan:          math.Pi / 3,
		ServeSlopeMin:      0.6,
		ServeSlopeMax:      1.0,
		WinningScore:       10,
		LevelCount:         3,
		TwoPlayerSupported: true,
		IdleSpeed:          0.5,
		IdleBand:           20,
		Deadband:           10,
		AI: []AILevel{
			{Prediction: 0, Jitter: 75, Speed: 0.65, Reaction: 55 * time.Millisecond},
			{Prediction: 0.9, Jitter: 50, Speed: 1.08, Reaction: 30 * time.Millisecond},
			{Prediction: 1, Jitter: 25, Speed: 1.4, Reaction: 5 * time.Millisecond},
		},
		PowerUpChance: 0.1,
		PowerUpTicks:  600,
		PickupRadius:  24,
		BoostSteps:    2,
		PaddleExtend:  50,
		SlowFactor:    0.5,
		PhysicsPeriod: PhysicsTickTime,
		AIPeriod:      AITickTime,
		PowerUpPeriod: PowerUpTickTime,
		RenderPeriod:  ClientTargetFrameTime,
	}
}

// Arcade is the smaller, faster field: wider bounce span, stepped speed
// profile and a stronger per-hit gain.
func Arcade() Config {
	c := Classic()
	c.Preset = "arcade"
	c.Width = 800
	c.Height = 600
	c.PaddleWidth = 15
	c.PaddleHeight = 80
	c.BallRadius = 8
	c.PaddleSpeed = 6
	c.InitialBallSpeed = 6
	c.MaxBallSpeed = 14
	c.SpeedProfile = ProfileStepped
	c.SpeedGain = 1.1
	c.AngleSpan = 1.5
	c.PickupRadius = 18
	c.PaddleExtend = 40
	c.AI = []AILevel{
		{Prediction: 0, Jitter: 60, Speed: 0.6, Reaction: 60 * time.Millisecond},
		{Prediction: 0.85, Jitter: 40, Speed: 1.0, Reaction: 35 * time.Millisecond},
		{Prediction: 1, Jitter: 15, Speed: 1.35, Reaction: 10 * time.Millisecond},
	}
	return c
}

// Preset returns the named preset. An empty name selects DefaultPreset.
func Preset(name string) (Config, error) {
	if name == "" {
		name = DefaultPreset
	}
	build, ok := presets[strings.ToLower(name)]
	if !ok {
		return Config{}, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(PresetNames(), ", "))
	}
	return build(), nil
}

// PresetNames lists the available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a TOML document on top of the preset it names.
// Keys that do not map onto Config are rejected.
func Parse(data string) (Config, error) {
	var head struct {
		Preset string `toml:"preset"`
	}
	if _, err := toml.Decode(data, &head); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := Preset(head.Preset)
	if err != nil {
		return Config{}, err
	}

	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Load reads and parses a TOML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve picks the config file when path is set, the named preset
// otherwise, and validates the result.
func Resolve(path, preset string) (Config, error) {
	var (
		cfg Config
		err error
	)
	if path != "" {
		cfg, err = Load(path)
	} else {
		cfg, err = Preset(preset)
	}
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LevelMultiplier scales the serve speed for a level.
func (c *Config) LevelMultiplier(level int) float64 {
	if c.SpeedProfile == ProfileLinear {
		return 1 + float64(level)*0.2
	}
	return 1 + float64(level-1)*0.5
}

// ServeSpeed is the horizontal serve speed at a level. It is also the
// floor a paddle return is raised to before the gain applies.
func (c *Config) ServeSpeed(level int) float64 {
	return c.InitialBallSpeed * c.LevelMultiplier(level)
}

// Gain is the per-return speed factor at a level.
func (c *Config) Gain(level int) float64 {
	return c.SpeedGain + float64(level-1)*c.GainPerLevel
}

// AILevel returns the computer tuning for level, clamped to the table.
func (c *Config) AILevel(level int) AILevel {
	if len(c.AI) == 0 {
		return AILevel{}
	}
	i := min(max(level-1, 0), len(c.AI)-1)
	return c.AI[i]
}

// Validate reports every constraint the config violates.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Width > 0 && c.Height > 0, "field size must be positive, got %gx%g", c.Width, c.Height)
	check(c.PaddleWidth > 0 && c.PaddleHeight > 0, "paddle size must be positive")
	check(c.PaddleHeight+c.PaddleExtend <= c.Height, "extended paddle (%g) taller than field (%g)", c.PaddleHeight+c.PaddleExtend, c.Height)
	check(c.BallRadius > 0 && 2*c.BallRadius < c.Height, "ball radius %g does not fit the field", c.BallRadius)
	check(c.PaddleWidth+c.BallRadius < c.Width/4, "paddle column overlaps the pickup band")

	check(c.PaddleSpeed > 0, "paddle_speed must be positive")
	check(c.InitialBallSpeed > 0, "initial_ball_speed must be positive")
	check(c.ServeSlopeMin > 0 && c.ServeSlopeMin <= c.ServeSlopeMax, "serve slope band [%g, %g] is invalid", c.ServeSlopeMin, c.ServeSlopeMax)
	check(c.ServeSpeed(c.LevelCount) <= c.MaxBallSpeed,
		"max_ball_speed %g is below the level %d serve speed (%g)", c.MaxBallSpeed, c.LevelCount, c.ServeSpeed(c.LevelCount))
	// One integration step must not carry the ball across the paddle band.
	check(c.MaxBallSpeed <= c.PaddleWidth+2*c.BallRadius,
		"max_ball_speed %g exceeds the paddle band (%g) and can tunnel through a paddle", c.MaxBallSpeed, c.PaddleWidth+2*c.BallRadius)
	check(c.SpeedProfile == ProfileStepped || c.SpeedProfile == ProfileLinear, "unknown speed_profile %q", c.SpeedProfile)
	check(c.SpeedGain >= 1, "speed_gain must be at least 1")
	check(c.GainPerLevel >= 0, "gain_per_level must not be negative")
	check(c.AngleSpan > 0 && c.AngleSpan < math.Pi, "angle_span must be in (0, pi)")

	check(c.WinningScore >= 1, "winning_score must be at least 1")
	check(c.LevelCount >= 1, "level_count must be at least 1")
	check(len(c.AI) == c.LevelCount, "ai table has %d levels, level_count is %d", len(c.AI), c.LevelCount)
	for i, lvl := range c.AI {
		check(lvl.Prediction >= 0 && lvl.Prediction <= 1, "ai level %d: prediction must be in [0, 1]", i+1)
		check(lvl.Jitter >= 0, "ai level %d: jitter must not be negative", i+1)
		check(lvl.Speed > 0, "ai level %d: speed must be positive", i+1)
		check(lvl.Reaction >= 0, "ai level %d: reaction must not be negative", i+1)
	}
	check(c.IdleSpeed > 0 && c.IdleBand >= 0 && c.Deadband >= 0, "ai idle tuning is invalid")

	check(c.PowerUpChance >= 0 && c.PowerUpChance <= 1, "powerup_chance must be in [0, 1]")
	check(c.PowerUpTicks >= 1, "powerup_ticks must be at least 1")
	check(c.PickupRadius > 0, "pickup_radius must be positive")
	check(c.BoostSteps >= 1, "boost_steps must be at least 1")
	check(c.PaddleExtend >= 0, "paddle_extend must not be negative")
	check(c.SlowFactor > 0 && c.SlowFactor <= 1, "slow_factor must be in (0, 1]")

	check(c.PhysicsPeriod > 0 && c.AIPeriod > 0 && c.PowerUpPeriod > 0 && c.RenderPeriod > 0, "tick periods must be positive")

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
