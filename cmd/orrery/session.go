package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/assets"
	"github.com/san-kum/orrery/internal/catalog"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/scene"
	"github.com/san-kum/orrery/internal/sim"
)

// session is everything a front end needs: the resolved config, a built
// scene inside a driver, and the optional texture loader and metrics.
type session struct {
	cfg     *config.Config
	log     logr.Logger
	seed    int64
	catalog *catalog.Catalog
	loader  *assets.Loader
	driver  *sim.Driver
	state   *sim.State
	metrics *metrics.Collector
}

// resolveConfig applies preset, then config file and environment, then
// flags the user actually set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	base := config.DefaultConfig()
	if preset != "" {
		base = config.GetPreset(preset)
		if base == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	cfg, err := config.LoadOver(base, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("paused") {
		cfg.Paused = paused
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("textures") {
		cfg.TexturesDir = texturesDir
	}
	if flags.Changed("catalog") {
		cfg.CatalogFile = catalogFile
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("info") {
		cfg.InfoDuration = infoSecs
	}
	if flags.Changed("verbose") {
		cfg.LogVerbosity = verbosity
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.StreamAddr = streamAddr
	}
	if flags.Lookup("rate") != nil && flags.Changed("rate") {
		cfg.StreamRate = streamRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogFile)
}

// newSession builds the scene and driver. Textures are only decoded for
// front ends that draw them.
func newSession(cmd *cobra.Command, withTextures bool) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, cfg.LogVerbosity)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		log:     log,
		seed:    cfg.SeedOrNow(),
		catalog: cat,
		metrics: metrics.New(),
	}

	opts := scene.Options{Rand: rand.New(rand.NewSource(s.seed)), Logger: log}
	var textures sim.Textures
	if withTextures {
		if _, err := os.Stat(cfg.TexturesDir); err != nil {
			log.Info("texture directory unavailable, using fallback colors", "dir", cfg.TexturesDir)
		} else {
			s.loader = assets.NewLoader(cfg.TexturesDir, assets.Options{
				Workers:  cfg.Workers,
				Logger:   log,
				OnResult: s.metrics.TextureResult,
			})
			opts.Loader = s.loader
			textures = s.loader
		}
	}

	sc, err := scene.Build(cat, opts)
	if err != nil {
		s.Close()
		return nil, err
	}

	state, err := cfg.State()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.state = &state

	s.driver = sim.NewDriver(sc, sim.Options{
		Width:        cfg.Width,
		Height:       cfg.Height,
		Tuning:       cfg.Tuning,
		InfoDuration: cfg.InfoTimeout(),
		Textures:     textures,
		Logger:       log,
	})
	s.driver.AddObserver(s.metrics)

	log.V(1).Info("session ready", "seed", s.seed, "bodies", len(sc.Bodies), "speed", state.Speed, "mode", state.Mode.String())
	return s, nil
}

// serveMetrics exposes /metrics until ctx is done when an address is
// configured.
func (s *session) serveMetrics(ctx context.Context) {
	if s.cfg.MetricsAddr == "" {
		return
	}
	srv := &http.Server{Addr: s.cfg.MetricsAddr, Handler: s.metrics.Mux()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(err, "metrics server stopped", "addr", s.cfg.MetricsAddr)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	s.log.Info("serving metrics", "addr", s.cfg.MetricsAddr)
}

func (s *session) Close() {
	if s.loader != nil {
		s.loader.Close()
	}
}
