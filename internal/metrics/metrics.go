package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry：进程内独立注册表，不混入默认的 Go 运行时指标
var Registry = prometheus.NewRegistry()

var (
	RecordsIngested = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "craternest_records_ingested",
		Help: "Crater records handed to the forest builder",
	})
	ForestRoots = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "craternest_forest_roots",
		Help: "Root craters not nested in any other crater",
	})
	NestedRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "craternest_nested_records",
		Help: "Craters placed under some container",
	})
	Containers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "craternest_containers",
		Help: "Craters that contain at least one other crater",
	})
	MaxDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "craternest_max_depth",
		Help: "Deepest nesting level in the forest",
	})
	BuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "craternest_build_duration_ms",
		Help:    "Forest build duration in milliseconds",
		Buckets: []float64{1, 10, 100, 1000, 10000, 60000, 600000},
	})
	ErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "craternest_errors_total",
		Help: "Run failures by kind",
	}, []string{"kind"})
)

func init() {
	Registry.MustRegister(RecordsIngested)
	Registry.MustRegister(ForestRoots)
	Registry.MustRegister(NestedRecords)
	Registry.MustRegister(Containers)
	Registry.MustRegister(MaxDepth)
	Registry.MustRegister(BuildDurationMs)
	Registry.MustRegister(ErrorsTotal)
}

// ObserveBuild：记录一次构建的规模与耗时
func ObserveBuild(records, roots, nested, containers, depth int, d time.Duration) {
	RecordsIngested.Set(float64(records))
	ForestRoots.Set(float64(roots))
	NestedRecords.Set(float64(nested))
	Containers.Set(float64(containers))
	MaxDepth.Set(float64(depth))
	BuildDurationMs.Observe(float64(d.Milliseconds()))
}

// 文档注释：将注册表写为 textfile collector 可读取的文本格式
// 约束：先写临时文件再重命名，读取方不会看到半截内容
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
