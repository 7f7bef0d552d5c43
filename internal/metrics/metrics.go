// Package metrics exports frame and interaction counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/orrery/internal/sim"
)

// Collector observes driver frames. Each Collector owns its registry so
// several drivers can run in one process.
type Collector struct {
	registry *prometheus.Registry

	framesTotal   prometheus.Counter
	frameDuration prometheus.Histogram
	commandsTotal prometheus.Counter
	picksTotal    *prometheus.CounterVec
	texturesTotal *prometheus.CounterVec
	speed         prometheus.Gauge
	paused        prometheus.Gauge
	overlay       prometheus.Gauge
	simTime       prometheus.Gauge
}

func New() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_frames_total",
			Help: "Total number of frames ticked",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orrery_frame_duration_seconds",
			Help:    "Time spent updating one frame",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		commandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orrery_commands_total",
			Help: "Total input commands applied",
		}),
		picksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_picks_total",
				Help: "Successful picks by object name",
			},
			[]string{"body"},
		),
		texturesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_texture_loads_total",
				Help: "Texture load completions by result",
			},
			[]string{"result"},
		),
		speed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_speed",
			Help: "Current speed multiplier",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_paused",
			Help: "1 while the simulation is paused",
		}),
		overlay: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_overlay_visible",
			Help: "1 while the info overlay is shown",
		}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orrery_sim_time_seconds",
			Help: "Accumulated scaled simulation time",
		}),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.frameDuration,
		m.commandsTotal,
		m.picksTotal,
		m.texturesTotal,
		m.speed,
		m.paused,
		m.overlay,
		m.simTime,
	)
	return m
}

// OnFrame implements sim.Observer.
func (m *Collector) OnFrame(f sim.Frame) {
	m.framesTotal.Inc()
	m.frameDuration.Observe(f.Duration.Seconds())
	m.commandsTotal.Add(float64(f.Commands))
	for _, name := range f.Picks {
		m.picksTotal.WithLabelValues(name).Inc()
	}
	m.speed.Set(f.State.Speed)
	m.paused.Set(boolGauge(f.State.Paused))
	m.overlay.Set(boolGauge(f.Overlay))
	m.simTime.Set(f.SimTime)
}

// TextureResult matches assets.Options.OnResult.
func (m *Collector) TextureResult(_ string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.texturesTotal.WithLabelValues(result).Inc()
}

func (m *Collector) Registry() *prometheus.Registry { return m.registry }

func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Mux serves the collector under /metrics.
func (m *Collector) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
