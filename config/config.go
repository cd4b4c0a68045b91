// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Motion    MotionConfig    `yaml:"motion"`
	Text      TextConfig      `yaml:"text"`
	Shapes    []ShapeConfig   `yaml:"shapes"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Backdrop  BackdropConfig  `yaml:"backdrop"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle field sizing and initial state.
type FieldConfig struct {
	ParticleCount int     `yaml:"particle_count"`
	InitialShape  string  `yaml:"initial_shape"`
	InitialColor  string  `yaml:"initial_color"`
	PointSize     float64 `yaml:"point_size"`
	Opacity       float64 `yaml:"opacity"`
}

// MotionConfig holds the per-tick envelope and interpolation constants.
type MotionConfig struct {
	LerpFactor      float64 `yaml:"lerp_factor"`      // Fraction of remaining distance covered per tick
	BreathAmplitude float64 `yaml:"breath_amplitude"` // Idle expansion = 1 + sin(t*rate)*amplitude
	BreathRate      float64 `yaml:"breath_rate"`      // Radians per second
	ExpansionGain   float64 `yaml:"expansion_gain"`   // Expansion = 1 + openness*gain
	NoiseGain       float64 `yaml:"noise_gain"`       // Jitter amplitude per unit openness
	MorphNoiseGain  float64 `yaml:"morph_noise_gain"` // Jitter amplitude while morphing text
	BaseSpin        float64 `yaml:"base_spin"`        // Radians per tick, always applied
	GestureSpin     float64 `yaml:"gesture_spin"`     // Extra radians per tick per unit openness
}

// TextConfig holds text rasterizer parameters.
type TextConfig struct {
	// Strings wider than the canvas are clipped at its edges. At font_size 50
	// the 200px default fits about ten characters.
	CanvasWidth  int     `yaml:"canvas_width"`
	CanvasHeight int     `yaml:"canvas_height"`
	FontSize     float64 `yaml:"font_size"`
	Threshold    uint8   `yaml:"threshold"` // Pixels brighter than this become candidates
	Scale        float64 `yaml:"scale"`     // World units per pixel
	Depth        float64 `yaml:"depth"`     // Full width of the z jitter band
}

// ShapeConfig describes one entry of the shape catalog.
type ShapeConfig struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	Text      string `yaml:"text,omitempty"`
	MorphText string `yaml:"morph_text,omitempty"`
}

// GestureConfig holds gesture adapter calibration.
type GestureConfig struct {
	FistDistance float64       `yaml:"fist_distance"` // Mean wrist-to-tip distance of a closed hand
	OpenDistance float64       `yaml:"open_distance"` // Mean wrist-to-tip distance of a spread hand
	StaleAfter   time.Duration `yaml:"stale_after"`   // Readings older than this fall back to idle (0 = never)
	SweepPeriod  float64       `yaml:"sweep_period"`  // Seconds per synthetic open/close cycle
}

// BackdropConfig holds star backdrop parameters.
type BackdropConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Count        int     `yaml:"count"`
	Radius       float64 `yaml:"radius"` // Inner radius of the star shell
	Depth        float64 `yaml:"depth"`  // Shell thickness
	TwinkleSpeed float64 `yaml:"twinkle_speed"`
	Seed         int64   `yaml:"seed"`
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Distance float64 `yaml:"distance"`
	FOV      float64 `yaml:"fov"`       // Vertical field of view in degrees
	MinPolar float64 `yaml:"min_polar"` // Radians from the +Y axis
	MaxPolar float64 `yaml:"max_polar"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	SettleEpsilon       float64 `yaml:"settle_epsilon"` // Mean target distance considered settled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT float64 // Seconds per tick at TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the field cannot run with.
func (c *Config) validate() error {
	var errs []error
	if c.Field.ParticleCount < 1 {
		errs = append(errs, fmt.Errorf("field.particle_count must be positive, got %d", c.Field.ParticleCount))
	}
	if c.Motion.LerpFactor <= 0 || c.Motion.LerpFactor >= 1 {
		errs = append(errs, fmt.Errorf("motion.lerp_factor must be in (0, 1), got %v", c.Motion.LerpFactor))
	}
	if c.Text.CanvasWidth <= 0 || c.Text.CanvasHeight <= 0 {
		errs = append(errs, fmt.Errorf("text canvas must be non-empty, got %dx%d", c.Text.CanvasWidth, c.Text.CanvasHeight))
	}
	if c.Gesture.OpenDistance <= c.Gesture.FistDistance {
		errs = append(errs, errors.New("gesture.open_distance must exceed gesture.fist_distance"))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
