package config

import "sort"

var Presets = map[string]*Config{
	"default":  DefaultConfig(),
	"fast":     with(func(c *Config) { c.Speed = 20 }),
	"overview": with(func(c *Config) { c.Mode = "overview" }),
	"frozen":   with(func(c *Config) { c.Paused = true }),
	"deep-time": with(func(c *Config) {
		c.Speed = 200
		c.Mode = "overview"
	}),
}

func with(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
