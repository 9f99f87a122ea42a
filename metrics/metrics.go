// Package metrics 封装了基于 Prometheus 的指标采集，用于观测压缩可达性
// 引擎的构建规模与查询代价，便于在大图上调参和容量规划。
package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics 封装了独立的 Prometheus 注册表及引擎预定义的标准指标.
type Metrics struct {
	registry *prometheus.Registry

	BuildDuration    prometheus.Histogram // run() 的端到端耗时
	ComponentCount   prometheus.Gauge     // 最近一次构建得到的强连通分量数
	RangeCount       prometheus.Gauge     // 区间池的区间总数
	MergeRatio       prometheus.Gauge     // 合并次数 / 并集操作次数
	ReachQueries     prometheus.Counter   // reaches() 调用总数
	MaterializedCell prometheus.Counter   // 稠密矩阵物化时写入的单元格总数
}

// NewMetrics 初始化并返回引擎的指标采集器.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.BuildDuration = m.newHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "closure_build_duration_seconds",
		Help:      "Time spent computing the compact transitive closure.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
	})
	m.ComponentCount = m.newGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scc_component_count",
		Help:      "Number of strongly connected components found in the last run.",
	})
	m.RangeCount = m.newGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "closure_range_pool_size",
		Help:      "Total number of IRange entries in the flat range pool.",
	})
	m.MergeRatio = m.newGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "closure_merge_ratio",
		Help:      "Ratio of interval merges to interval unions during closure construction.",
	})
	m.ReachQueries = m.newCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reach_queries_total",
		Help:      "Total number of reaches() queries served.",
	})
	m.MaterializedCell = m.newCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matrix_materialized_cells_total",
		Help:      "Total number of (u,v) pairs written while materializing a dense closure matrix.",
	})

	slog.Debug("graph engine metrics registry initialized", "namespace", namespace)
	return m
}

func (m *Metrics) newHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	m.registry.MustRegister(h)
	return h
}

func (m *Metrics) newGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	m.registry.MustRegister(g)
	return g
}

func (m *Metrics) newCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	m.registry.MustRegister(c)
	return c
}

// Registry exposes the underlying Prometheus registry, e.g. to mount a
// promhttp.Handler in a host application.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Noop 返回一个未注册指标的空壳，供未显式配置指标时安全使用。
// 它的方法是真实的 Prometheus 对象，只是不挂在任何注册表上，因此
// 写入开销近似为零且不会产生重复注册冲突。
func Noop() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.BuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{Name: "noop_build_duration"})
	m.ComponentCount = prometheus.NewGauge(prometheus.GaugeOpts{Name: "noop_component_count"})
	m.RangeCount = prometheus.NewGauge(prometheus.GaugeOpts{Name: "noop_range_count"})
	m.MergeRatio = prometheus.NewGauge(prometheus.GaugeOpts{Name: "noop_merge_ratio"})
	m.ReachQueries = prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_reach_queries"})
	m.MaterializedCell = prometheus.NewCounter(prometheus.CounterOpts{Name: "noop_materialized_cells"})
	return m
}
