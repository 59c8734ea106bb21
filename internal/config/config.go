package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
)

const (
	DefaultInitialTheta    = 0.1
	DefaultMaxFrameStep    = 30 * time.Millisecond
	DefaultDragIdleTimeout = 50 * time.Millisecond
	DefaultMouseHitScale   = 2.0
	DefaultTouchHitScale   = 3.0
	DefaultFrameInterval   = 16 * time.Millisecond
	DefaultDuration        = 10 * time.Second
	DefaultWidth           = 800.0
	DefaultHeight          = 600.0
	DefaultNotDragging     = "Not dragging"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Params       physics.Params   `yaml:"params"`
	InitialTheta float64          `yaml:"initial_theta"`
	Controller   ControllerConfig `yaml:"controller"`
	Run          RunConfig        `yaml:"run"`
	Log          LogConfig        `yaml:"log"`
}

type ControllerConfig struct {
	MaxFrameStep       time.Duration `yaml:"max_frame_step"`
	DragIdleTimeout    time.Duration `yaml:"drag_idle_timeout"`
	MouseHitScale      float64       `yaml:"mouse_hit_scale"`
	TouchHitScale      float64       `yaml:"touch_hit_scale"`
	MaxDragSpeed       float64       `yaml:"max_drag_speed"`
	NotDraggingMessage string        `yaml:"not_dragging_message"`
}

// RunConfig shapes headless runs: virtual frame spacing, how long to run
// and the viewport the pivot is placed in.
type RunConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	Duration      time.Duration `yaml:"duration"`
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:       physics.DefaultParams(),
		InitialTheta: DefaultInitialTheta,
		Controller: ControllerConfig{
			MaxFrameStep:       DefaultMaxFrameStep,
			DragIdleTimeout:    DefaultDragIdleTimeout,
			MouseHitScale:      DefaultMouseHitScale,
			TouchHitScale:      DefaultTouchHitScale,
			MaxDragSpeed:       physics.DefaultMaxDragSpeed,
			NotDraggingMessage: DefaultNotDragging,
		},
		Run: RunConfig{
			FrameInterval: DefaultFrameInterval,
			Duration:      DefaultDuration,
			Width:         DefaultWidth,
			Height:        DefaultHeight,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks the controller and run constants. Physical parameters
// are deliberately left unchecked.
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{c.Controller.MaxFrameStep > 0, "controller.max_frame_step"},
		{c.Controller.DragIdleTimeout > 0, "controller.drag_idle_timeout"},
		{c.Controller.MouseHitScale > 0, "controller.mouse_hit_scale"},
		{c.Controller.TouchHitScale > 0, "controller.touch_hit_scale"},
		{c.Controller.MaxDragSpeed > 0, "controller.max_drag_speed"},
		{c.Run.FrameInterval > 0, "run.frame_interval"},
		{c.Run.Duration >= 0, "run.duration"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, chk.name)
		}
	}
	return nil
}

// Options converts the controller section for sim.NewSession.
func (c *Config) Options() sim.Options {
	return sim.Options{
		MaxFrameStep:       c.Controller.MaxFrameStep,
		DragIdleTimeout:    c.Controller.DragIdleTimeout,
		MouseHitScale:      c.Controller.MouseHitScale,
		TouchHitScale:      c.Controller.TouchHitScale,
		MaxDragSpeed:       c.Controller.MaxDragSpeed,
		InitialTheta:       c.InitialTheta,
		NotDraggingMessage: c.Controller.NotDraggingMessage,
	}
}
