package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/localnerve/fleetboard/internal/registry"
)

const namespace = "fleetboard"

var (
	// HierarchyCycles counts parent/child edges that closed a cycle during traversal.
	HierarchyCycles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hierarchy",
		Name:      "cycles_total",
		Help:      "Number of distinct system edges found to close a cycle.",
	})

	// SnapshotReloads counts snapshot loads by outcome.
	SnapshotReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "reloads_total",
		Help:      "Snapshot load attempts partitioned by result.",
	}, []string{"result"})

	// SnapshotEntities reports the size of the active snapshot.
	SnapshotEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "entities",
		Help:      "Entities held by the active snapshot.",
	}, []string{"kind"})

	// SnapshotGeneration is the generation of the active snapshot.
	SnapshotGeneration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "snapshot",
		Name:      "generation",
		Help:      "Generation number of the active snapshot.",
	})
)

// ObserveSnapshot publishes the contents of a freshly activated snapshot.
func ObserveSnapshot(reg *registry.Registry) {
	st := reg.Stats()
	SnapshotEntities.WithLabelValues("environments").Set(float64(st.Environments))
	SnapshotEntities.WithLabelValues("systems").Set(float64(st.Systems))
	SnapshotEntities.WithLabelValues("assets").Set(float64(st.Assets))
	SnapshotEntities.WithLabelValues("series").Set(float64(st.Series))
	SnapshotEntities.WithLabelValues("samples").Set(float64(st.Samples))
	SnapshotGeneration.Set(float64(reg.Generation()))
}
