package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MaterialSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saulstari_material_saves_total",
		Help: "Successful material save batches, by role.",
	}, []string{"role"})

	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saulstari_login_failures_total",
		Help: "Rejected login attempts.",
	})
)
