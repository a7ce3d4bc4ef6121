// Package metrics exports world streaming counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// World implements world.Observer on a set of Prometheus collectors.
type World struct {
	loads       prometheus.Counter
	unloads     prometheus.Counter
	rebuilds    prometheus.Counter
	loadTime    prometheus.Histogram
	meshTime    prometheus.Histogram
	meshFaces   prometheus.Histogram
	resident    prometheus.Gauge
	dirty       prometheus.Gauge
	frameDeltas prometheus.Counter
}

// NewWorld creates the collectors under namespace and registers them with reg.
func NewWorld(namespace string, reg prometheus.Registerer) *World {
	m := &World{
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_loads_total",
			Help:      "Chunks generated and loaded.",
		}),
		unloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_unloads_total",
			Help:      "Chunks unloaded.",
		}),
		rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_rebuilds_total",
			Help:      "Chunk meshes rebuilt.",
		}),
		loadTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_load_seconds",
			Help:      "Time to generate a chunk and run its load hooks.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		meshTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_build_seconds",
			Help:      "Time to build one chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		meshFaces: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_faces",
			Help:      "Visible faces per built mesh.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
		}),
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_resident",
			Help:      "Chunks currently loaded.",
		}),
		dirty: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_dirty",
			Help:      "Loaded chunks waiting for a mesh rebuild.",
		}),
		frameDeltas: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_delta_clamped_total",
			Help:      "Frames whose delta time was clamped.",
		}),
	}
	reg.MustRegister(m.loads, m.unloads, m.rebuilds, m.loadTime, m.meshTime,
		m.meshFaces, m.resident, m.dirty, m.frameDeltas)
	return m
}

func (m *World) ChunkLoaded(took time.Duration) {
	m.loads.Inc()
	m.loadTime.Observe(took.Seconds())
}

func (m *World) ChunkUnloaded() {
	m.unloads.Inc()
}

func (m *World) MeshBuilt(faces int, took time.Duration) {
	m.rebuilds.Inc()
	m.meshFaces.Observe(float64(faces))
	m.meshTime.Observe(took.Seconds())
}

func (m *World) Resident(chunks, dirty int) {
	m.resident.Set(float64(chunks))
	m.dirty.Set(float64(dirty))
}

// FrameClamped counts a frame whose delta exceeded the limit.
func (m *World) FrameClamped() {
	m.frameDeltas.Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
