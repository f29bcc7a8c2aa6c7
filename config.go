package renderer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by LoadConfig.
const EnvPrefix = "CANVAS_RENDERER_"

type WindowConfig struct {
	Width  int    `yaml:"width"  env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
	Title  string `yaml:"title"  env:"TITLE"`
	TPS    int    `yaml:"tps"    env:"TPS"`
}

type LogConfig struct {
	Level    string `yaml:"level"    env:"LEVEL"`
	Encoding string `yaml:"encoding" env:"ENCODING"`
}

// Config holds everything the viewer needs at start up. Angles are in
// degrees; speeds are per frame.
type Config struct {
	FieldOfView   float64 `yaml:"field_of_view"  env:"FIELD_OF_VIEW"`
	Scale         float64 `yaml:"scale"          env:"SCALE"`
	MovementSpeed float64 `yaml:"movement_speed" env:"MOVEMENT_SPEED"`
	RotationSpeed float64 `yaml:"rotation_speed" env:"ROTATION_SPEED"`
	Projection    string  `yaml:"projection"     env:"PROJECTION"`
	Model         string  `yaml:"model"          env:"MODEL"`

	Position  Vector3 `yaml:"position"`
	Direction Vector3 `yaml:"direction"`
	Up        Vector3 `yaml:"up"`
	GlobalUp  Vector3 `yaml:"global_up"`
	// LookAt, when set, overrides Direction and Up.
	LookAt []float64 `yaml:"look_at,flow"`

	Window WindowConfig `yaml:"window" envPrefix:"WINDOW_"`
	Log    LogConfig    `yaml:"log"    envPrefix:"LOG_"`
}

func DefaultConfig() Config {
	pose := DefaultPose()
	return Config{
		FieldOfView:   110,
		Scale:         0.16,
		MovementSpeed: DefaultMovementSpeed,
		RotationSpeed: 1,
		Projection:    Linear.String(),
		Position:      pose.Position,
		Direction:     pose.Direction,
		Up:            pose.Up,
		GlobalUp:      pose.GlobalUp,
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "canvas-renderer",
			TPS:    60,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file at path when
// path is not empty, then environment overrides, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config %s: %w", path, err)
		}
		defer file.Close()
		if err := decodeConfig(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode YAML: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if !(c.FieldOfView > 0 && c.FieldOfView < 180) {
		return fmt.Errorf("field_of_view %v degrees: %w", c.FieldOfView, ErrInvalidFieldOfView)
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 1) {
		return fmt.Errorf("scale %v: %w", c.Scale, ErrInvalidScale)
	}
	if c.MovementSpeed < 0 || c.RotationSpeed < 0 {
		return fmt.Errorf("speeds must not be negative (movement %v, rotation %v)", c.MovementSpeed, c.RotationSpeed)
	}
	if _, err := ParseProjectionMode(c.Projection); err != nil {
		return err
	}
	if c.LookAt != nil && len(c.LookAt) != 3 {
		return fmt.Errorf("look_at needs 3 components, got %d", len(c.LookAt))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window tps %d must be positive", c.Window.TPS)
	}
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// NewCamera builds the configured camera with its projection mode set.
func (c Config) NewCamera() (*Camera, error) {
	fov := degreesToRadians(c.FieldOfView)

	var cam *Camera
	var err error
	if len(c.LookAt) == 3 {
		target := NewVector3(c.LookAt[0], c.LookAt[1], c.LookAt[2])
		cam, err = NewCameraLookingAt(c.Position, target, c.GlobalUp, fov, c.Scale)
	} else {
		cam, err = NewCamera(Pose{
			Position:  c.Position,
			Direction: c.Direction,
			Up:        c.Up,
			GlobalUp:  c.GlobalUp,
		}, fov, c.Scale)
	}
	if err != nil {
		return nil, fmt.Errorf("build camera: %w", err)
	}

	mode, err := ParseProjectionMode(c.Projection)
	if err != nil {
		return nil, err
	}
	cam.SetProjectionMode(mode)
	return cam, nil
}
