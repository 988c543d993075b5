package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics exposes pgx connection pool statistics as Prometheus gauges.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	gauge := func(name, help string, value func(pgxpool.Stat) float64) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "partners",
			Subsystem: "pgxpool",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return value(*pool.Stat())
		})
	}

	prometheus.MustRegister(
		gauge("acquired_conns", "Number of currently acquired connections in the pool", func(s pgxpool.Stat) float64 {
			return float64(s.AcquiredConns())
		}),
		gauge("max_conns", "Maximum number of connections in the pool", func(s pgxpool.Stat) float64 {
			return float64(s.MaxConns())
		}),
		gauge("total_conns", "Total number of connections in the pool", func(s pgxpool.Stat) float64 {
			return float64(s.TotalConns())
		}),
		gauge("idle_conns", "Number of idle connections in the pool", func(s pgxpool.Stat) float64 {
			return float64(s.IdleConns())
		}),
	)
}
