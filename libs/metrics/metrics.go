// Package metrics provides prometheus collectors for runtime instrumentation
// of database connection pools.
package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsGetter - an interface for extraction of sql.DBStats
type StatsGetter interface {
	Stats() sql.DBStats
}

// StatsCollector implements the prometheus.Collector interface for one or
// more named database connection pools
type StatsCollector struct {
	mu      sync.RWMutex
	getters map[string]StatsGetter

	maxOpenDesc           *prometheus.Desc
	openDesc              *prometheus.Desc
	inUseDesc             *prometheus.Desc
	idleDesc              *prometheus.Desc
	waitedForDesc         *prometheus.Desc
	blockedSecondsDesc    *prometheus.Desc
	closedMaxIdleDesc     *prometheus.Desc
	closedMaxLifetimeDesc *prometheus.Desc
}

// NewStatsCollector creates a new StatsCollector
func NewStatsCollector(dbName string, sg StatsGetter) *StatsCollector {
	labels := []string{"db_name"}
	return &StatsCollector{
		getters: map[string]StatsGetter{
			dbName: sg,
		},
		maxOpenDesc: prometheus.NewDesc(
			"sql_stats_connections_max_open",
			"Maximum number of open connections to the database.",
			labels, nil,
		),
		openDesc: prometheus.NewDesc(
			"sql_stats_connections_open",
			"The number of established connections both in use and idle.",
			labels, nil,
		),
		inUseDesc: prometheus.NewDesc(
			"sql_stats_connections_in_use",
			"The number of connections currently in use.",
			labels, nil,
		),
		idleDesc: prometheus.NewDesc(
			"sql_stats_connections_idle",
			"The number of idle connections.",
			labels, nil,
		),
		waitedForDesc: prometheus.NewDesc(
			"sql_stats_connections_waited_for",
			"The total number of connections waited for.",
			labels, nil,
		),
		blockedSecondsDesc: prometheus.NewDesc(
			"sql_stats_connections_blocked_seconds",
			"The total time blocked waiting for a new connection.",
			labels, nil,
		),
		closedMaxIdleDesc: prometheus.NewDesc(
			"sql_stats_connections_closed_max_idle",
			"The total number of connections closed due to SetMaxIdleConns.",
			labels, nil,
		),
		closedMaxLifetimeDesc: prometheus.NewDesc(
			"sql_stats_connections_closed_max_lifetime",
			"The total number of connections closed due to SetConnMaxLifetime.",
			labels, nil,
		),
	}
}

// AddStatsGetter - add a new stats getter to this collector
func (c *StatsCollector) AddStatsGetter(dbName string, sg StatsGetter) {
	c.mu.Lock()
	c.getters[dbName] = sg
	c.mu.Unlock()
}

// Describe implements the prometheus.Collector interface
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.maxOpenDesc
	ch <- c.openDesc
	ch <- c.inUseDesc
	ch <- c.idleDesc
	ch <- c.waitedForDesc
	ch <- c.blockedSecondsDesc
	ch <- c.closedMaxIdleDesc
	ch <- c.closedMaxLifetimeDesc
}

// Collect implements the prometheus.Collector interface
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for dbName, sg := range c.getters {
		stats := sg.Stats()

		ch <- prometheus.MustNewConstMetric(
			c.maxOpenDesc,
			prometheus.GaugeValue,
			float64(stats.MaxOpenConnections),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.openDesc,
			prometheus.GaugeValue,
			float64(stats.OpenConnections),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.inUseDesc,
			prometheus.GaugeValue,
			float64(stats.InUse),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.idleDesc,
			prometheus.GaugeValue,
			float64(stats.Idle),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.waitedForDesc,
			prometheus.CounterValue,
			float64(stats.WaitCount),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.blockedSecondsDesc,
			prometheus.CounterValue,
			stats.WaitDuration.Seconds(),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.closedMaxIdleDesc,
			prometheus.CounterValue,
			float64(stats.MaxIdleClosed),
			dbName,
		)
		ch <- prometheus.MustNewConstMetric(
			c.closedMaxLifetimeDesc,
			prometheus.CounterValue,
			float64(stats.MaxLifetimeClosed),
			dbName,
		)
	}
}
