package database

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPoolMetrics exposes pgx pool statistics as Prometheus gauges.
func RegisterPoolMetrics(pool *pgxpool.Pool, serviceName string) {
	labels := prometheus.Labels{"service": serviceName}

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "db_pool_total_conns",
			Help:        "Total connections in the pool",
			ConstLabels: labels,
		},
		func() float64 { return float64(pool.Stat().TotalConns()) },
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "db_pool_idle_conns",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		},
		func() float64 { return float64(pool.Stat().IdleConns()) },
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name:        "db_pool_acquired_conns",
			Help:        "Connections currently acquired from the pool",
			ConstLabels: labels,
		},
		func() float64 { return float64(pool.Stat().AcquiredConns()) },
	))
}
