/*
 * @module service/gap_analysis/metrics
 * @description 缺口分析 Prometheus 指标采集
 * @architecture 工具层 - 可观测性
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 每次分析完成后记录耗时、就绪结果与缺口数
 * @rules 指标通过 promauto 注册到默认注册表，经 /metrics 暴露
 * @dependencies github.com/prometheus/client_golang
 * @refs analyzer.go, main.go
 */

package gap_analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assessment_gap_analysis_total",
		Help: "缺口分析执行总数",
	}, []string{"asset_type", "ready"})

	gapsFoundTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assessment_gaps_found_total",
		Help: "发现的缺口总数",
	}, []string{"priority"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "assessment_gap_analysis_duration_seconds",
		Help:    "单资产缺口分析耗时",
		Buckets: prometheus.DefBuckets,
	})
)

// observeAnalysis 记录一次分析的指标
func observeAnalysis(report *AggregatedGapReport, elapsed time.Duration) {
	ready := "false"
	if report.IsReady {
		ready = "true"
	}
	analysisTotal.WithLabelValues(report.AssetType, ready).Inc()
	for priority, gaps := range report.GapsByPriority {
		if len(gaps) > 0 {
			gapsFoundTotal.WithLabelValues(string(priority)).Add(float64(len(gaps)))
		}
	}
	analysisDuration.Observe(elapsed.Seconds())
}
