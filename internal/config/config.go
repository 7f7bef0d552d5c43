package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/kinematics"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/view"
)

const (
	DefaultSpeed        = 1.0
	DefaultFPS          = 60
	DefaultWidth        = 1280
	DefaultHeight       = 720
	DefaultInfoDuration = 10.0
	DefaultWorkers      = 2
	DefaultStreamRate   = 20.0
	EnvPrefix           = "ORRERY"
)

type Config struct {
	Speed  float64 `yaml:"speed"`
	Paused bool    `yaml:"paused"`
	Mode   string  `yaml:"mode"`
	// Seed fixes initial phases and belt layouts. Zero picks a random seed.
	Seed int64 `yaml:"seed"`

	FPS    int `yaml:"fps"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	TexturesDir  string  `yaml:"textures_dir"`
	CatalogFile  string  `yaml:"catalog_file"`
	Workers      int     `yaml:"workers"`
	InfoDuration float64 `yaml:"info_duration"`
	LogVerbosity int     `yaml:"log_verbosity"`

	Tuning kinematics.Tuning `yaml:"tuning"`

	// MetricsAddr serves Prometheus metrics on its own listener when set.
	MetricsAddr string  `yaml:"metrics_addr"`
	StreamAddr  string  `yaml:"stream_addr"`
	StreamRate  float64 `yaml:"stream_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Speed:        DefaultSpeed,
		Mode:         view.Follow.String(),
		FPS:          DefaultFPS,
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		TexturesDir:  "textures",
		Workers:      DefaultWorkers,
		InfoDuration: DefaultInfoDuration,
		Tuning:       kinematics.DefaultTuning(),
		StreamAddr:   ":8080",
		StreamRate:   DefaultStreamRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithEnv layers defaults, the optional YAML file at path and ORRERY_*
// environment variables, in that order. Nested keys use underscores, e.g.
// ORRERY_TUNING_K_ORBIT.
func LoadWithEnv(path string) (*Config, error) {
	return LoadOver(DefaultConfig(), path)
}

// LoadOver is LoadWithEnv starting from base instead of the defaults.
func LoadOver(base *Config, path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	seed, err := yaml.Marshal(base)
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(bytes.NewReader(seed)); err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
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

func (c *Config) Validate() error {
	var errs []error
	if c.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed must be >= 0, got %v", c.Speed))
	}
	if _, err := view.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.InfoDuration <= 0 {
		errs = append(errs, fmt.Errorf("info_duration must be positive, got %v", c.InfoDuration))
	}
	if c.StreamRate <= 0 {
		errs = append(errs, fmt.Errorf("stream_rate must be positive, got %v", c.StreamRate))
	}
	t := c.Tuning
	if t.SpeedScale <= 0 || t.KOrbit <= 0 || t.KSpin <= 0 || t.KCloud <= 0 {
		errs = append(errs, fmt.Errorf("tuning constants must be positive, got %+v", t))
	}
	return errors.Join(errs...)
}

// State returns the initial simulation state described by the config.
func (c *Config) State() (sim.State, error) {
	mode, err := view.ParseMode(c.Mode)
	if err != nil {
		return sim.State{}, err
	}
	s := sim.State{Paused: c.Paused, Speed: c.Speed, Mode: mode}
	return s, s.Validate()
}

func (c *Config) InfoTimeout() time.Duration {
	return time.Duration(c.InfoDuration * float64(time.Second))
}

// SeedOrNow returns Seed, or a time-derived seed when Seed is zero.
func (c *Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
