package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("unknown preset")

func preset(edit func(c *Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"undamped": preset(func(c *Config) {
		c.Params.Ldc = 0
	}),
	"stiff": preset(func(c *Config) {
		c.Params.K = 20
		c.InitialTheta = 0.6
	}),
	"soft": preset(func(c *Config) {
		c.Params.K = 2
		c.Params.L0 = 0.5
		c.Params.PxPerM = 60
	}),
	"syrup": preset(func(c *Config) {
		c.Params.Ldc = 1.5
		c.InitialTheta = 1.2
	}),
	// A braille cell is 2x4 sub-pixels, so a terminal viewport is only a
	// few hundred sub-pixels tall.
	"terminal": preset(func(c *Config) {
		c.Params.PxPerM = 12
		c.Params.RBob = 0.35
		c.Params.RPivot = 0.2
		c.Run.Width = 160
		c.Run.Height = 96
	}),
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	c := *p
	return &c, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
